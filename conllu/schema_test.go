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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.conllu")
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestResolveSchemaDefault(t *testing.T) {
	path := writeTestFile(t, "1\tHello\n\n")
	schema, err := ResolveSchema(path, nil)
	assert.NoError(t, err)
	assert.Equal(t, DefaultSchema, schema)
}

func TestResolveSchemaExplicit(t *testing.T) {
	path := writeTestFile(t, "1\tHello\tX\n\n")
	schema, err := ResolveSchema(path, Schema{"id", "form", "ner"})
	assert.NoError(t, err)
	assert.Equal(t, Schema{"id", "form", "ner"}, schema)
}

func TestResolveSchemaPlusHeader(t *testing.T) {
	path := writeTestFile(t, "# global.columns = ID FORM UPOS MISC\n1\tHello\tINTJ\t_\n\n")
	schema, err := ResolveSchema(path, nil)
	assert.NoError(t, err)
	assert.Equal(t, Schema{"id", "form", "upos", "misc"}, schema)
}

func TestResolveSchemaPlusHeaderBeatsExplicit(t *testing.T) {
	path := writeTestFile(t, "# global.columns = ID FORM\n1\tHello\n\n")
	schema, err := ResolveSchema(path, Schema{"id", "form", "ner"})
	assert.NoError(t, err)
	assert.Equal(t, Schema{"id", "form"}, schema)
}

func TestResolveSchemaEmptyFile(t *testing.T) {
	path := writeTestFile(t, "")
	schema, err := ResolveSchema(path, nil)
	assert.NoError(t, err)
	assert.Equal(t, DefaultSchema, schema)
}

func TestResolveSchemaMissingFile(t *testing.T) {
	_, err := ResolveSchema(filepath.Join(t.TempDir(), "missing.conllu"), nil)
	assert.Error(t, err)
}

func TestSchemaValidateRejectsDuplicates(t *testing.T) {
	err := Schema{"id", "form", "id"}.Validate()
	assert.Error(t, err)
}

func TestSchemaValidateRejectsEmpty(t *testing.T) {
	err := Schema{}.Validate()
	assert.Error(t, err)
}

func TestValidateTokenAnnotationFields(t *testing.T) {
	schema := Schema{"id", "form", "lemma"}
	assert.NoError(t, ValidateTokenAnnotationFields(schema, []string{"lemma"}))
	assert.Error(t, ValidateTokenAnnotationFields(schema, []string{"lemma", "upos"}))
}

func TestParsePlusHeaderIgnoresRegularComment(t *testing.T) {
	_, ok := parsePlusHeader("# sent_id = 1")
	assert.False(t, ok)
	_, ok = parsePlusHeader("1\tHello")
	assert.False(t, ok)
}
