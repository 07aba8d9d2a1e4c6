// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conllu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// IndexOffsets scans a stream once and returns the byte offset of the
// first line of each non-empty sentence block. No field or metadata
// parsing happens here. Surplus blank lines (incl. a trailing one)
// produce no offsets, so len(result) always equals the number of
// sentences a full parse of the same stream would yield.
func IndexOffsets(r io.Reader) ([]int64, error) {
	var (
		offsets []int64
		pos     int64
		inBlock bool
	)
	rd := bufio.NewReader(r)
	for {
		line, err := rd.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to index sentence offsets: %w", err)
		}
		if line != "" {
			if strings.TrimSpace(line) == "" {
				inBlock = false

			} else if !inBlock {
				offsets = append(offsets, pos)
				inBlock = true
			}
			pos += int64(len(line))
		}
		if err == io.EOF {
			return offsets, nil
		}
	}
}
