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

package sentence

import (
	"fmt"
	"strings"
)

// Label is a named annotation attached either to a single
// token or to a whole sentence.
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Token represents a single word (or punctuation) of a sentence
// along with its annotation labels.
type Token struct {
	Text string `json:"text"`

	// WhitespaceAfter is false only if the source data explicitly
	// marks the token as being glued to its successor.
	WhitespaceAfter bool `json:"whitespaceAfter"`

	Labels []Label `json:"labels,omitempty"`
}

// NewToken creates a token with the default spacing flag.
func NewToken(text string) *Token {
	return &Token{
		Text:            text,
		WhitespaceAfter: true,
	}
}

func (t *Token) AddLabel(name, value string) {
	t.Labels = append(t.Labels, Label{Name: name, Value: value})
}

// Label returns the value of the first label with the provided
// name. The second returned value is false if there is no such label.
func (t *Token) Label(name string) (string, bool) {
	for _, lb := range t.Labels {
		if lb.Name == name {
			return lb.Value, true
		}
	}
	return "", false
}

// Span is a contiguous range of a sentence's tokens.
// Start is zero-based, End is exclusive.
type Span struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Tokens []*Token `json:"-"`
}

// Text returns the surface string of the span, respecting
// the tokens' WhitespaceAfter flags.
func (sp Span) Text() string {
	var b strings.Builder
	for i, tok := range sp.Tokens {
		b.WriteString(tok.Text)
		if tok.WhitespaceAfter && i < len(sp.Tokens)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// Relation is a labeled link between two token spans of a sentence.
type Relation struct {
	Value string `json:"value"`
	Head  Span   `json:"head"`
	Tail  Span   `json:"tail"`
}

// Sentence is an ordered sequence of tokens plus sentence-level
// labels and relations. A zero-value Sentence is ready to use.
type Sentence struct {
	Tokens    []*Token   `json:"tokens"`
	Labels    []Label    `json:"labels,omitempty"`
	Relations []Relation `json:"relations,omitempty"`
}

func (s *Sentence) AddToken(tok *Token) {
	s.Tokens = append(s.Tokens, tok)
}

func (s *Sentence) AddLabel(name, value string) {
	s.Labels = append(s.Labels, Label{Name: name, Value: value})
}

// Label returns the value of the first sentence-level label with
// the provided name.
func (s *Sentence) Label(name string) (string, bool) {
	for _, lb := range s.Labels {
		if lb.Name == name {
			return lb.Value, true
		}
	}
	return "", false
}

func (s *Sentence) AddRelation(rel Relation) {
	s.Relations = append(s.Relations, rel)
}

func (s *Sentence) Len() int {
	return len(s.Tokens)
}

// Span creates a span over tokens [start, end). The bounds are
// validated against the current token count.
func (s *Sentence) Span(start, end int) (Span, error) {
	if start < 0 || end < start || end > len(s.Tokens) {
		return Span{}, fmt.Errorf(
			"span [%d, %d) out of range for a sentence of %d tokens", start, end, len(s.Tokens))
	}
	return Span{
		Start:  start,
		End:    end,
		Tokens: s.Tokens[start:end],
	}, nil
}

// Text returns the detokenized surface string of the whole sentence.
func (s *Sentence) Text() string {
	sp := Span{Start: 0, End: len(s.Tokens), Tokens: s.Tokens}
	return sp.Text()
}
