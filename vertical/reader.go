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

// Package vertical reads corpora stored in the CNC vertical format
// and exposes them through the same sentence source capability as
// the CoNLL-U datasets. Vertical data is always fully materialized.
package vertical

import (
	"context"
	"fmt"

	"github.com/czcorpus/vert-tagextract/v3/proc"
	"github.com/rs/zerolog/log"
	"github.com/tomachalek/vertigo/v6"

	"bilbo/sentence"
)

const dfltLogProgressEachNth = 1000000

// Conf describes a vertical data source and the way its positional
// attributes map to token annotations.
type Conf struct {
	FilePaths []string `json:"filePaths"`

	// SentenceStruct is the structure marking sentence boundaries (usually "s")
	SentenceStruct string `json:"sentenceStruct"`

	WordColIdx  int `json:"wordColIdx"`
	LemmaColIdx int `json:"lemmaColIdx"`
	TagColIdx   int `json:"tagColIdx"`

	Encoding string `json:"encoding"`
}

// ValidateAndDefaults tests the configuration and fills in
// reasonable defaults.
func (conf *Conf) ValidateAndDefaults() error {
	if len(conf.FilePaths) == 0 {
		return fmt.Errorf("vertical configuration contains no file paths")
	}
	if conf.SentenceStruct == "" {
		conf.SentenceStruct = "s"
		log.Warn().Msgf("sentenceStruct not specified, using default: %s", conf.SentenceStruct)
	}
	if conf.Encoding == "" {
		conf.Encoding = "utf-8"
	}
	return nil
}

// Dataset is an in-memory sequence of sentences imported from
// vertical files.
type Dataset struct {
	sentences []*sentence.Sentence
}

func (ds *Dataset) Len() int {
	return len(ds.sentences)
}

func (ds *Dataset) Get(idx int) (*sentence.Sentence, error) {
	if idx < 0 || idx >= len(ds.sentences) {
		return nil, fmt.Errorf("sentence index %d out of range (dataset size: %d)", idx, len(ds.sentences))
	}
	return ds.sentences[idx], nil
}

func (ds *Dataset) InMemory() bool {
	return true
}

// collector is a vertigo.LineProcessor gathering tokens between
// sentence structure tags.
type collector struct {
	ctx      context.Context
	conf     *Conf
	curr     *sentence.Sentence
	dataset  *Dataset
	numLines int
}

func (c *collector) finishSentence() {
	if c.curr != nil && c.curr.Len() > 0 {
		c.dataset.sentences = append(c.dataset.sentences, c.curr)
	}
	c.curr = nil
}

// ProcStruct is called by the Vertigo parser when a structure
// opening tag is encountered.
func (c *collector) ProcStruct(st *vertigo.Structure, line int, err error) error {
	select {
	case <-c.ctx.Done():
		return fmt.Errorf("received stop signal")
	default:
	}
	if err != nil { // error from the Vertigo parser
		return err
	}
	c.numLines = line
	if st.Name == c.conf.SentenceStruct {
		c.finishSentence()
		c.curr = &sentence.Sentence{}
	}
	return nil
}

// ProcStructClose is called by the Vertigo parser when a structure
// closing tag is encountered.
func (c *collector) ProcStructClose(st *vertigo.StructureClose, line int, err error) error {
	if err != nil {
		return err
	}
	c.numLines = line
	if st.Name == c.conf.SentenceStruct {
		c.finishSentence()
	}
	return nil
}

// ProcToken is a part of vertigo.LineProcessor implementation.
// It is called by Vertigo parser when a token line is encountered.
func (c *collector) ProcToken(tk *vertigo.Token, line int, err error) error {
	if err != nil {
		return err
	}
	c.numLines = line
	if c.curr == nil {
		// tokens outside any sentence structure are skipped
		return nil
	}
	tok := sentence.NewToken(tk.PosAttrByIndex(c.conf.WordColIdx))
	if lemma := tk.PosAttrByIndex(c.conf.LemmaColIdx); lemma != "" && c.conf.LemmaColIdx > 0 {
		tok.AddLabel("lemma", lemma)
	}
	if tag := tk.PosAttrByIndex(c.conf.TagColIdx); tag != "" && c.conf.TagColIdx > 0 {
		tok.AddLabel("tag", tag)
	}
	c.curr.AddToken(tok)
	return nil
}

// Read imports all the sentences from the configured vertical files.
func Read(ctx context.Context, conf *Conf) (*Dataset, error) {
	if err := conf.ValidateAndDefaults(); err != nil {
		return nil, fmt.Errorf("failed to read vertical data: %w", err)
	}
	scanner, err := proc.NewMultiFileScanner(conf.FilePaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertical data: %w", err)
	}
	defer scanner.Close()

	parserConf := &vertigo.ParserConf{
		StructAttrAccumulator: "nil",
		Encoding:              conf.Encoding,
		LogProgressEachNth:    dfltLogProgressEachNth,
	}
	coll := &collector{
		ctx:     ctx,
		conf:    conf,
		dataset: &Dataset{},
	}
	if err := vertigo.ParseVerticalFromScanner(ctx, scanner, parserConf, coll); err != nil {
		return nil, fmt.Errorf("failed to read vertical data: %w", err)
	}
	coll.finishSentence()
	log.Info().
		Int("numSentences", coll.dataset.Len()).
		Int("numLines", coll.numLines).
		Msg("imported vertical data")
	return coll.dataset, nil
}
