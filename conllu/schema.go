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
	"os"
	"strings"
)

// plusHeaderKey marks a CoNLL-U Plus file. A file starting with
// a comment of the form `# global.columns = ID FORM ...` declares
// its own column schema.
const plusHeaderKey = "global.columns"

// Schema is an ordered list of column names applied to token lines.
type Schema []string

// DefaultSchema describes the ten standard CoNLL-U columns.
var DefaultSchema = Schema{
	"id", "form", "lemma", "upos", "xpos", "feats", "head", "deprel", "deps", "misc",
}

// DefaultTokenAnnotationFields lists the columns which are attached
// to tokens as annotation labels unless a caller says otherwise.
var DefaultTokenAnnotationFields = []string{"lemma", "upos", "xpos"}

// Validate tests that the schema is non-empty and does not contain
// duplicate column names.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("schema must not be empty")
	}
	seen := make(map[string]bool, len(s))
	for _, name := range s {
		if seen[name] {
			return fmt.Errorf("schema contains duplicate column %s", name)
		}
		seen[name] = true
	}
	return nil
}

// Contains tests the membership of a column name.
func (s Schema) Contains(name string) bool {
	for _, v := range s {
		if v == name {
			return true
		}
	}
	return false
}

// parsePlusHeader extracts a schema from a CoNLL-U Plus header line.
// The second returned value is false if the line is not a header.
func parsePlusHeader(line string) (Schema, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#") {
		return nil, false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
	key, value, found := strings.Cut(line, "=")
	if !found || strings.TrimSpace(key) != plusHeaderKey {
		return nil, false
	}
	var schema Schema
	for _, col := range strings.Fields(value) {
		schema = append(schema, strings.ToLower(col))
	}
	return schema, true
}

// ResolveSchema determines the active column schema of a file.
// An in-file CoNLL-U Plus declaration takes precedence, then
// a caller-supplied explicit schema, then DefaultSchema. Only the
// first line of the file is ever read.
func ResolveSchema(path string, explicit Schema) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}
	defer f.Close()

	rd := bufio.NewReader(f)
	line, err := rd.ReadString('\n')
	if err != nil && line == "" {
		// an empty file still gets a valid schema
		line = ""
	}
	var schema Schema
	if hdr, ok := parsePlusHeader(line); ok {
		schema = hdr

	} else if explicit != nil {
		schema = explicit

	} else {
		schema = DefaultSchema
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema in %s: %w", path, err)
	}
	return schema, nil
}

// ValidateTokenAnnotationFields tests that each annotation field
// names an existing schema column.
func ValidateTokenAnnotationFields(schema Schema, fields []string) error {
	for _, field := range fields {
		if !schema.Contains(field) {
			return fmt.Errorf(
				"token annotation field %s is not part of the schema %v", field, []string(schema))
		}
	}
	return nil
}
