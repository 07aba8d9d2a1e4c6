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
	"fmt"
	"io"
	"strconv"
	"strings"

	"bilbo/sentence"
)

func cellOrNull(v string) string {
	if v == "" {
		return nullValue
	}
	return v
}

func encodeRelations(rels []sentence.Relation) string {
	items := make([]string, len(rels))
	for i, rel := range rels {
		items[i] = strings.Join([]string{
			strconv.Itoa(rel.Head.Start + 1),
			strconv.Itoa(rel.Head.End),
			strconv.Itoa(rel.Tail.Start + 1),
			strconv.Itoa(rel.Tail.End),
			rel.Value,
		}, relationValueSep)
	}
	return strings.Join(items, relationListSep)
}

// WriteSentence serializes one sentence into the ten-column CoNLL-U
// format. Token labels matching default schema columns fill the
// respective cells, anything unknown stays null. Sentence-level
// labels and relations go to metadata comments.
func WriteSentence(w io.Writer, s *sentence.Sentence) error {
	for _, lb := range s.Labels {
		if _, err := fmt.Fprintf(w, "# %s = %s\n", lb.Name, lb.Value); err != nil {
			return err
		}
	}
	if len(s.Relations) > 0 {
		if _, err := fmt.Fprintf(w, "# relations = %s\n", encodeRelations(s.Relations)); err != nil {
			return err
		}
	}
	for i, tok := range s.Tokens {
		lemma, _ := tok.Label("lemma")
		upos, _ := tok.Label("upos")
		xpos, _ := tok.Label("xpos")
		deprel, _ := tok.Label("deprel")
		misc := nullValue
		if !tok.WhitespaceAfter {
			misc = "SpaceAfter=No"
		}
		cells := []string{
			strconv.Itoa(i + 1),
			cellOrNull(tok.Text),
			cellOrNull(lemma),
			cellOrNull(upos),
			cellOrNull(xpos),
			nullValue,
			nullValue,
			cellOrNull(deprel),
			nullValue,
			misc,
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

type sentenceSource interface {
	Len() int
	Get(idx int) (*sentence.Sentence, error)
}

// Export writes all the sentences of a source as a CoNLL-U document.
func Export(w io.Writer, src sentenceSource) error {
	for i := 0; i < src.Len(); i++ {
		s, err := src.Get(i)
		if err != nil {
			return fmt.Errorf("failed to export sentence %d: %w", i, err)
		}
		if err := WriteSentence(w, s); err != nil {
			return fmt.Errorf("failed to export sentence %d: %w", i, err)
		}
	}
	return nil
}
