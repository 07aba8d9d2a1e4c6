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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexOffsetsBasic(t *testing.T) {
	data := "1\tHello\n\n1\tWorld\n\n"
	offsets, err := IndexOffsets(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []int64{0, 9}, offsets)
}

func TestIndexOffsetsNoTrailingBlankLine(t *testing.T) {
	data := "1\tHello\n\n1\tWorld\n"
	offsets, err := IndexOffsets(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []int64{0, 9}, offsets)
}

func TestIndexOffsetsTrailingBlankDoesNotChangeCount(t *testing.T) {
	with := "1\ta\n\n1\tb\n\n"
	without := "1\ta\n\n1\tb\n"
	o1, err := IndexOffsets(strings.NewReader(with))
	assert.NoError(t, err)
	o2, err := IndexOffsets(strings.NewReader(without))
	assert.NoError(t, err)
	assert.Equal(t, o1, o2)
}

func TestIndexOffsetsSurplusBlankLines(t *testing.T) {
	data := "\n\n1\ta\n\n\n\n1\tb\n\n\n"
	offsets, err := IndexOffsets(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(offsets))
	assert.Equal(t, int64(2), offsets[0])
}

func TestIndexOffsetsCommentStartsBlock(t *testing.T) {
	data := "# sentence_id = a\n1\tHello\n\n"
	offsets, err := IndexOffsets(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []int64{0}, offsets)
}

func TestIndexOffsetsEmptyInput(t *testing.T) {
	offsets, err := IndexOffsets(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(offsets))
}
