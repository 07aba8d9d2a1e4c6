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

// Record is the raw parsed form of one sentence block: an ordered
// sequence of per-token field maps plus the block's metadata.
// Records are ephemeral, they exist only between the record parser
// and the sentence assembler.
type Record struct {
	Tokens   []map[string]any
	Metadata map[string]any
}

// IsEmpty tests whether the record carries neither tokens nor metadata.
// Such records come from surplus blank lines and must not be turned
// into sentences.
func (rec *Record) IsEmpty() bool {
	return len(rec.Tokens) == 0 && len(rec.Metadata) == 0
}

// RecordReader consumes sentence blocks from a stream using
// a resolved schema and parser tables.
type RecordReader struct {
	schema          Schema
	fieldParsers    map[string]FieldParser
	metadataParsers map[string]MetadataParser
	rd              *bufio.Reader
	eof             bool
}

// NewRecordReader creates a reader consuming blocks from rd.
// The parser maps must contain an entry for every column resp.
// specialized metadata key (see DefaultFieldParsers).
func NewRecordReader(
	rd io.Reader,
	schema Schema,
	fieldParsers map[string]FieldParser,
	metadataParsers map[string]MetadataParser,
) *RecordReader {
	return &RecordReader{
		schema:          schema,
		fieldParsers:    fieldParsers,
		metadataParsers: metadataParsers,
		rd:              bufio.NewReader(rd),
	}
}

// Next reads one sentence block, i.e. all the lines up to the next
// blank line or the end of the stream. It returns io.EOF once the
// stream is exhausted. A block consisting of surplus blank lines
// yields an empty Record (see Record.IsEmpty).
func (rr *RecordReader) Next() (*Record, error) {
	if rr.eof {
		return nil, io.EOF
	}
	rec := &Record{Metadata: make(map[string]any)}
	var anyLine bool
	for {
		line, err := rr.rd.ReadString('\n')
		if err == io.EOF {
			rr.eof = true
			if line == "" && !anyLine {
				return nil, io.EOF
			}

		} else if err != nil {
			return nil, fmt.Errorf("failed to read sentence block: %w", err)
		}
		anyLine = true
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			if rr.eof && rec.IsEmpty() {
				return nil, io.EOF
			}
			return rec, nil
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			if err := rr.parseComment(line, rec); err != nil {
				return nil, err
			}

		} else {
			if err := rr.parseTokenLine(line, rec); err != nil {
				return nil, err
			}
		}
		if rr.eof {
			return rec, nil
		}
	}
}

func (rr *RecordReader) parseComment(line string, rec *Record) error {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
	key, value, found := strings.Cut(body, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if !found {
		// a valueless pragma like `# newdoc`
		rec.Metadata[key] = nil
		return nil
	}
	value = strings.TrimSpace(value)
	if parser, ok := rr.metadataParsers[key]; ok {
		newKey, parsed, err := parser(key, value)
		if err != nil {
			return err
		}
		rec.Metadata[newKey] = parsed

	} else {
		rec.Metadata[key] = value
	}
	return nil
}

func (rr *RecordReader) parseTokenLine(line string, rec *Record) error {
	cells := strings.Split(line, "\t")
	if len(cells) == 1 {
		// some sources use space-separated columns
		cells = strings.Fields(line)
	}
	if len(cells) > len(rr.schema) {
		return &ParseError{
			Value: line,
			Msg: fmt.Sprintf(
				"token line has %d columns, schema defines %d", len(cells), len(rr.schema)),
		}
	}
	token := make(map[string]any, len(rr.schema))
	for i, col := range rr.schema {
		if i >= len(cells) {
			// missing trailing cells are tolerated as nulls
			token[col] = nil
			continue
		}
		parser, ok := rr.fieldParsers[col]
		if !ok {
			parser = ParseNullableValue
		}
		value, err := parser(cells[i])
		if err != nil {
			return err
		}
		token[col] = value
	}
	rec.Tokens = append(rec.Tokens, token)
	return nil
}
