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

package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bilbo/conllu"

	"github.com/stretchr/testify/assert"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.conllu")
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

const twoSentData = "" +
	"1\tHello\t_\t_\t_\t_\t_\t_\t_\t_\n" +
	"\n" +
	"1\tGood\tgood\tADJ\t_\t_\t_\t_\t_\t_\n" +
	"2\tmorning\tmorning\tNOUN\t_\t_\t_\t_\t_\t_\n"

func TestNewInMemory(t *testing.T) {
	path := writeDataFile(t, twoSentData)
	ds, err := New(path)
	assert.NoError(t, err)
	assert.True(t, ds.InMemory())
	assert.Equal(t, 2, ds.Len())

	s, err := ds.Get(0)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", s.Text())

	s, err = ds.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "Good morning", s.Text())
	lemma, _ := s.Tokens[1].Label("lemma")
	assert.Equal(t, "morning", lemma)
}

func TestNewLazyMatchesInMemory(t *testing.T) {
	path := writeDataFile(t, twoSentData)
	mem, err := New(path)
	assert.NoError(t, err)
	lazy, err := New(path, WithInMemory(false))
	assert.NoError(t, err)
	assert.False(t, lazy.InMemory())
	assert.Equal(t, mem.Len(), lazy.Len())
	for i := 0; i < mem.Len(); i++ {
		s1, err := mem.Get(i)
		assert.NoError(t, err)
		s2, err := lazy.Get(i)
		assert.NoError(t, err)
		assert.Equal(t, s1, s2)
	}
}

func TestLazyCountWithTrailingBlankLine(t *testing.T) {
	path := writeDataFile(t, twoSentData+"\n")
	mem, err := New(path)
	assert.NoError(t, err)
	lazy, err := New(path, WithInMemory(false))
	assert.NoError(t, err)
	assert.Equal(t, 2, mem.Len())
	assert.Equal(t, 2, lazy.Len())
}

func TestNoAnnotationFields(t *testing.T) {
	data := "" +
		"1\tHello\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"\n" +
		"1\tWorld\t_\t_\t_\t_\t_\t_\t_\t_"
	path := writeDataFile(t, data)
	ds, err := New(path, WithTokenAnnotationFields([]string{}))
	assert.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	s, err := ds.Get(0)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", s.Tokens[0].Text)
	assert.Empty(t, s.Tokens[0].Labels)
	assert.Empty(t, s.Labels)
}

func TestGetOutOfRange(t *testing.T) {
	path := writeDataFile(t, twoSentData)
	for _, inMemory := range []bool{true, false} {
		ds, err := New(path, WithInMemory(inMemory))
		assert.NoError(t, err)
		_, err = ds.Get(2)
		assert.Error(t, err)
		_, err = ds.Get(-1)
		assert.Error(t, err)
	}
}

func TestRelationsMetadata(t *testing.T) {
	data := "" +
		"# relations = 1;2;3;4;PART-OF\n" +
		"1\ta\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"2\tb\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"3\tc\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"4\td\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	ds, err := New(path)
	assert.NoError(t, err)
	s, err := ds.Get(0)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(s.Relations))
	rel := s.Relations[0]
	assert.Equal(t, "PART-OF", rel.Value)
	assert.Equal(t, 0, rel.Head.Start)
	assert.Equal(t, 2, rel.Head.End)
	assert.Equal(t, "a b", rel.Head.Text())
	assert.Equal(t, 2, rel.Tail.Start)
	assert.Equal(t, 4, rel.Tail.End)
	assert.Equal(t, "c d", rel.Tail.Text())
}

func TestRelationSpansFromTuple(t *testing.T) {
	data := "" +
		"# relations = 2;3;5;5;CAUSE\n" +
		"1\tThe\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"2\tbig\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"3\tstorm\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"4\tcaused\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"5\tdamage\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"6\t.\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	ds, err := New(path)
	assert.NoError(t, err)
	s, err := ds.Get(0)
	assert.NoError(t, err)
	rel := s.Relations[0]
	assert.Equal(t, "CAUSE", rel.Value)
	assert.Equal(t, 1, rel.Head.Start)
	assert.Equal(t, 3, rel.Head.End)
	assert.Equal(t, "big storm", rel.Head.Text())
	assert.Equal(t, 4, rel.Tail.Start)
	assert.Equal(t, 5, rel.Tail.End)
	assert.Equal(t, "damage", rel.Tail.Text())
}

func TestRelationsOutOfRange(t *testing.T) {
	data := "" +
		"# relations = 1;2;3;9;PART-OF\n" +
		"1\ta\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"2\tb\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"3\tc\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	_, err := New(path)
	assert.Error(t, err)
}

func TestSpaceAfterHandling(t *testing.T) {
	data := "" +
		"1\tHello\t_\t_\t_\t_\t_\t_\t_\tSpaceAfter=No\n" +
		"2\t,\t_\t_\t_\t_\t_\t_\t_\tSpaceAfter=Yes\n" +
		"3\tworld\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	ds, err := New(path)
	assert.NoError(t, err)
	s, err := ds.Get(0)
	assert.NoError(t, err)
	assert.False(t, s.Tokens[0].WhitespaceAfter)
	assert.True(t, s.Tokens[1].WhitespaceAfter)
	assert.True(t, s.Tokens[2].WhitespaceAfter)
	assert.Equal(t, "Hello, world", s.Text())
}

func TestSentenceIDLabel(t *testing.T) {
	data := "" +
		"# sentence_id = train_7\n" +
		"# some_other = value\n" +
		"1\tHello\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	ds, err := New(path)
	assert.NoError(t, err)
	s, err := ds.Get(0)
	assert.NoError(t, err)
	v, ok := s.Label("sentence_id")
	assert.True(t, ok)
	assert.Equal(t, "train_7", v)
	_, ok = s.Label("some_other")
	assert.False(t, ok)
}

func TestPlusHeaderSchema(t *testing.T) {
	data := "" +
		"# global.columns = ID FORM NER\n" +
		"1\tGeorge\tB-PER\n" +
		"2\tWashington\tI-PER\n"
	path := writeDataFile(t, data)
	ds, err := New(path, WithTokenAnnotationFields([]string{"ner"}))
	assert.NoError(t, err)
	assert.Equal(t, conllu.Schema{"id", "form", "ner"}, ds.Schema())
	s, err := ds.Get(0)
	assert.NoError(t, err)
	ner, _ := s.Tokens[0].Label("ner")
	assert.Equal(t, "B-PER", ner)
}

func TestInvalidAnnotationFieldFailsEarly(t *testing.T) {
	// the malformed relations entry would fail parsing, so getting
	// the field-set error proves the check runs before any parsing
	data := "" +
		"# relations = not-a-tuple\n" +
		"1\tHello\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	_, err := New(path, WithTokenAnnotationFields([]string{"nonsense"}))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nonsense")
}

func TestParseFailureScope(t *testing.T) {
	data := "" +
		"1\tHello\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"\n" +
		"# relations = 1;2;3;NOPE\n" +
		"1\tWorld\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)

	// in-memory mode: the whole load fails
	_, err := New(path)
	assert.Error(t, err)

	// lazy mode: only the access to the broken block fails
	lazy, err := New(path, WithInMemory(false))
	assert.NoError(t, err)
	s, err := lazy.Get(0)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", s.Text())
	_, err = lazy.Get(1)
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.conllu"))
	assert.Error(t, err)
}

func TestNullFieldsBecomeEmptyLabels(t *testing.T) {
	data := "1\tHello\t_\t_\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	ds, err := New(path)
	assert.NoError(t, err)
	s, err := ds.Get(0)
	assert.NoError(t, err)
	lemma, ok := s.Tokens[0].Label("lemma")
	assert.True(t, ok)
	assert.Equal(t, "", lemma)
}

func TestExportRoundTrip(t *testing.T) {
	data := "" +
		"# sentence_id = s1\n" +
		"# relations = 2;3;5;5;CAUSE\n" +
		"1\tThe\tthe\tDET\t_\t_\t_\t_\t_\t_\n" +
		"2\tbig\tbig\tADJ\t_\t_\t_\t_\t_\t_\n" +
		"3\tstorm\tstorm\tNOUN\t_\t_\t_\t_\t_\tSpaceAfter=No\n" +
		"4\t,\t,\tPUNCT\t_\t_\t_\t_\t_\t_\n" +
		"5\tdamage\tdamage\tNOUN\t_\t_\t_\t_\t_\t_\n"
	path := writeDataFile(t, data)
	ds, err := New(path)
	assert.NoError(t, err)

	var b strings.Builder
	err = conllu.Export(&b, ds)
	assert.NoError(t, err)

	path2 := writeDataFile(t, b.String())
	ds2, err := New(path2)
	assert.NoError(t, err)
	assert.Equal(t, ds.Len(), ds2.Len())
	s1, err := ds.Get(0)
	assert.NoError(t, err)
	s2, err := ds2.Get(0)
	assert.NoError(t, err)
	assert.Equal(t, s1, s2)
}
