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
	"fmt"
	"strconv"
	"strings"
)

const (
	relationListSep  = "|"
	relationValueSep = ";"
	pairListSep      = "|"
	pairValueSep     = "="
	nullValue        = "_"
)

// ParseError describes a malformed piece of input data. It carries
// the offending raw value so a user can locate it in the source file.
type ParseError struct {
	File  string
	Value string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s in %s (value: %q)", e.Msg, e.File, e.Value)
	}
	return fmt.Sprintf("%s (value: %q)", e.Msg, e.Value)
}

// FieldParser converts the raw text of a single token-line cell
// into a typed value.
type FieldParser func(raw string) (any, error)

// MetadataParser converts the raw value of a comment-line metadata
// entry into a (possibly renamed) key and a typed value.
type MetadataParser func(key, value string) (string, any, error)

// RelationTuple encodes a labeled relation between two token spans.
// All four indices are 1-based and inclusive.
type RelationTuple struct {
	HeadStart int    `json:"headStart"`
	HeadEnd   int    `json:"headEnd"`
	TailStart int    `json:"tailStart"`
	TailEnd   int    `json:"tailEnd"`
	Label     string `json:"label"`
}

// ParseNullableValue maps the CoNLL-U null marker to nil and keeps
// any other value as a plain string.
func ParseNullableValue(raw string) (any, error) {
	if raw == "" || raw == nullValue {
		return nil, nil
	}
	return raw, nil
}

// parseIDValue handles the `id` and `head` columns. Plain integers
// become int, multiword ranges (1-2) and empty nodes (1.1) are kept
// as raw strings, the null marker becomes nil.
func parseIDValue(raw string) (any, error) {
	if raw == "" || raw == nullValue {
		return nil, nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	return raw, nil
}

// parsePairsValue handles the `feats` and `misc` columns which hold
// `|`-separated Key=Value entries.
func parsePairsValue(raw string) (any, error) {
	if raw == "" || raw == nullValue {
		return nil, nil
	}
	pairs := make(map[string]string)
	for _, item := range strings.Split(raw, pairListSep) {
		key, value, _ := strings.Cut(item, pairValueSep)
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return pairs, nil
}

// ParseRelationTuples decodes the value of a `relations` metadata
// entry. The encoding is `h1;h2;t1;t2;LABEL` tuples joined by `|`.
func ParseRelationTuples(value string) ([]RelationTuple, error) {
	var tuples []RelationTuple
	for _, item := range strings.Split(value, relationListSep) {
		parts := strings.Split(item, relationValueSep)
		if len(parts) != 5 {
			return nil, &ParseError{
				Value: item,
				Msg:   fmt.Sprintf("relation tuple must have 5 fields, found %d", len(parts)),
			}
		}
		indices := make([]int, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil {
				return nil, &ParseError{
					Value: item,
					Msg:   "relation tuple contains a non-integer index",
				}
			}
			indices[i] = v
		}
		tuples = append(tuples, RelationTuple{
			HeadStart: indices[0],
			HeadEnd:   indices[1],
			TailStart: indices[2],
			TailEnd:   indices[3],
			Label:     parts[4],
		})
	}
	return tuples, nil
}

// DefaultFieldParsers builds the standard parser table for the
// provided schema. Well-known columns get type-specific parsers,
// anything else (and every token annotation field) is parsed as
// a nullable string.
func DefaultFieldParsers(schema Schema, tokenAnnotationFields []string) map[string]FieldParser {
	parsers := make(map[string]FieldParser, len(schema))
	for _, col := range schema {
		switch col {
		case "id", "head":
			parsers[col] = parseIDValue
		case "feats", "misc":
			parsers[col] = parsePairsValue
		default:
			parsers[col] = ParseNullableValue
		}
	}
	for _, field := range tokenAnnotationFields {
		parsers[field] = ParseNullableValue
	}
	return parsers
}

// DefaultMetadataParsers builds the standard metadata parser table.
// It contains a single specialized entry decoding the `relations`
// key; any other metadata key is kept as a raw string.
func DefaultMetadataParsers() map[string]MetadataParser {
	return map[string]MetadataParser{
		"relations": func(key, value string) (string, any, error) {
			tuples, err := ParseRelationTuples(value)
			if err != nil {
				return "", nil, err
			}
			return key, tuples, nil
		},
	}
}
