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
	"fmt"

	"bilbo/conllu"
	"bilbo/sentence"
)

// stringifyField renders a parsed field value as a label value.
// Null fields become empty strings.
func stringifyField(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// assemble converts one parsed record into a sentence object:
// token creation, per-token annotation labels, whitespace flags
// and sentence-level labels and relation spans.
func (ds *Dataset) assemble(rec *conllu.Record) (*sentence.Sentence, error) {
	sent := &sentence.Sentence{}
	for _, tokenRec := range rec.Tokens {
		tok := sentence.NewToken(stringifyField(tokenRec["form"]))
		for _, field := range ds.tokenAnnotationFields {
			tok.AddLabel(field, stringifyField(tokenRec[field]))
		}
		// only an explicit SpaceAfter=No clears the flag; any other
		// value (even SpaceAfter=Yes) keeps the default
		if misc, ok := tokenRec["misc"].(map[string]string); ok {
			if misc["SpaceAfter"] == "No" {
				tok.WhitespaceAfter = false
			}
		}
		sent.AddToken(tok)
	}

	if sentID, ok := rec.Metadata["sentence_id"].(string); ok {
		sent.AddLabel("sentence_id", sentID)
	}

	if rels, ok := rec.Metadata["relations"].([]conllu.RelationTuple); ok {
		for _, tuple := range rels {
			// span indices are 1-based with an inclusive end
			head, err := sent.Span(tuple.HeadStart-1, tuple.HeadEnd)
			if err != nil {
				return nil, fmt.Errorf("failed to create relation %s: %w", tuple.Label, err)
			}
			tail, err := sent.Span(tuple.TailStart-1, tuple.TailEnd)
			if err != nil {
				return nil, fmt.Errorf("failed to create relation %s: %w", tuple.Label, err)
			}
			sent.AddRelation(sentence.Relation{
				Value: tuple.Label,
				Head:  head,
				Tail:  tail,
			})
		}
	}
	return sent, nil
}
