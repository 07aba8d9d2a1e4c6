// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
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

	"bilbo/sentence"

	"github.com/stretchr/testify/assert"
)

func TestWriteSentenceBasic(t *testing.T) {
	s := &sentence.Sentence{}
	tok := sentence.NewToken("Hello")
	tok.AddLabel("lemma", "hello")
	tok.AddLabel("upos", "INTJ")
	s.AddToken(tok)
	s.AddLabel("sentence_id", "s1")

	var b strings.Builder
	err := WriteSentence(&b, s)
	assert.NoError(t, err)
	assert.Equal(
		t,
		"# sentence_id = s1\n1\tHello\thello\tINTJ\t_\t_\t_\t_\t_\t_\n\n",
		b.String(),
	)
}

func TestWriteSentenceSpaceAfter(t *testing.T) {
	s := &sentence.Sentence{}
	glued := sentence.NewToken("Hello")
	glued.WhitespaceAfter = false
	s.AddToken(glued)
	s.AddToken(sentence.NewToken(","))

	var b strings.Builder
	err := WriteSentence(&b, s)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	assert.True(t, strings.HasSuffix(lines[0], "SpaceAfter=No"))
	assert.True(t, strings.HasSuffix(lines[1], "\t_"))
}

func TestWriteSentenceRelations(t *testing.T) {
	s := &sentence.Sentence{}
	for _, w := range []string{"a", "b", "c", "d", "e"} {
		s.AddToken(sentence.NewToken(w))
	}
	head, err := s.Span(1, 3)
	assert.NoError(t, err)
	tail, err := s.Span(4, 5)
	assert.NoError(t, err)
	s.AddRelation(sentence.Relation{Value: "CAUSE", Head: head, Tail: tail})

	var b strings.Builder
	err = WriteSentence(&b, s)
	assert.NoError(t, err)
	assert.Contains(t, b.String(), "# relations = 2;3;5;5;CAUSE\n")
}
