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
	"io"
	"os"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/util"
	"github.com/rs/zerolog/log"

	"bilbo/conllu"
	"bilbo/sentence"
)

// Source is a read-only, length-queryable sequence of sentences.
// Both access strategies of Dataset and the vertical file reader
// provide this capability.
type Source interface {
	Len() int
	Get(idx int) (*sentence.Sentence, error)
	InMemory() bool
}

type options struct {
	inMemory              bool
	schema                conllu.Schema
	tokenAnnotationFields []string
	fieldParsers          map[string]conllu.FieldParser
	metadataParsers       map[string]conllu.MetadataParser
}

// Option customizes dataset construction.
type Option func(*options)

// WithInMemory selects between the fully materialized mode (true,
// the default) and the lazy offset-indexed mode (false).
func WithInMemory(v bool) Option {
	return func(o *options) { o.inMemory = v }
}

// WithSchema sets an explicit column schema. An in-file CoNLL-U Plus
// declaration still takes precedence.
func WithSchema(schema conllu.Schema) Option {
	return func(o *options) { o.schema = schema }
}

// WithTokenAnnotationFields sets which columns become per-token labels.
func WithTokenAnnotationFields(fields []string) Option {
	return func(o *options) { o.tokenAnnotationFields = fields }
}

// WithFieldParsers fully replaces the default field parser table.
func WithFieldParsers(parsers map[string]conllu.FieldParser) Option {
	return func(o *options) { o.fieldParsers = parsers }
}

// WithMetadataParsers fully replaces the default metadata parser table.
func WithMetadataParsers(parsers map[string]conllu.MetadataParser) Option {
	return func(o *options) { o.metadataParsers = parsers }
}

// Dataset provides indexed access to the sentences of a single
// CoNLL-U file. Instances are read-only after construction. In the
// lazy mode, each access opens its own file handle so concurrent
// readers do not interfere.
type Dataset struct {
	path                  string
	schema                conllu.Schema
	tokenAnnotationFields []string
	fieldParsers          map[string]conllu.FieldParser
	metadataParsers       map[string]conllu.MetadataParser
	inMemory              bool

	// in-memory mode only
	sentences []*sentence.Sentence

	// lazy mode only
	offsets []int64
}

// New loads a dataset from a CoNLL-U (Plus) file. In the in-memory
// mode the whole file is parsed right away and any parse error fails
// the construction. In the lazy mode only sentence offsets are
// collected and parsing is deferred to Get.
func New(path string, opts ...Option) (*Dataset, error) {
	opt := options{
		inMemory:              true,
		tokenAnnotationFields: conllu.DefaultTokenAnnotationFields,
	}
	for _, o := range opts {
		o(&opt)
	}

	if isFile, _ := fs.IsFile(path); !isFile {
		return nil, fmt.Errorf("failed to open dataset: %s is not a file", path)
	}
	schema, err := conllu.ResolveSchema(path, opt.schema)
	if err != nil {
		return nil, err
	}
	if err := conllu.ValidateTokenAnnotationFields(schema, opt.tokenAnnotationFields); err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}

	fieldParsers := opt.fieldParsers
	if fieldParsers == nil {
		fieldParsers = conllu.DefaultFieldParsers(schema, opt.tokenAnnotationFields)
	}
	metadataParsers := opt.metadataParsers
	if metadataParsers == nil {
		metadataParsers = conllu.DefaultMetadataParsers()
	}

	ds := &Dataset{
		path:                  path,
		schema:                schema,
		tokenAnnotationFields: opt.tokenAnnotationFields,
		fieldParsers:          fieldParsers,
		metadataParsers:       metadataParsers,
		inMemory:              opt.inMemory,
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	if ds.inMemory {
		err = ds.loadAll(f)

	} else {
		ds.offsets, err = conllu.IndexOffsets(f)
	}
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", path).
		Bool("inMemory", ds.inMemory).
		Int("numSentences", ds.Len()).
		Msg("loaded dataset")
	return ds, nil
}

func (ds *Dataset) loadAll(f *os.File) error {
	rr := conllu.NewRecordReader(f, ds.schema, ds.fieldParsers, ds.metadataParsers)
	for {
		rec, err := rr.Next()
		if err == io.EOF {
			return nil

		} else if err != nil {
			return fmt.Errorf("failed to load dataset %s: %w", ds.path, err)
		}
		if rec.IsEmpty() {
			continue
		}
		sent, err := ds.assemble(rec)
		if err != nil {
			return fmt.Errorf("failed to load dataset %s: %w", ds.path, err)
		}
		ds.sentences = append(ds.sentences, sent)
	}
}

// Path returns the source file path of the dataset.
func (ds *Dataset) Path() string {
	return ds.path
}

// Schema returns the resolved column schema.
func (ds *Dataset) Schema() conllu.Schema {
	return ds.schema
}

// InMemory tests whether the dataset keeps parsed sentences in memory.
func (ds *Dataset) InMemory() bool {
	return ds.inMemory
}

// Len returns the number of sentences. Both access strategies
// report the same value for the same file.
func (ds *Dataset) Len() int {
	return util.Ternary(ds.inMemory, len(ds.sentences), len(ds.offsets))
}

// Get returns the idx-th sentence. In the lazy mode this re-opens
// the file, seeks to the sentence's block and parses just that block;
// the handle is closed no matter how the parsing ends.
func (ds *Dataset) Get(idx int) (*sentence.Sentence, error) {
	if idx < 0 || idx >= ds.Len() {
		return nil, fmt.Errorf("sentence index %d out of range (dataset size: %d)", idx, ds.Len())
	}
	if ds.inMemory {
		return ds.sentences[idx], nil
	}
	f, err := os.Open(ds.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sentence %d: %w", idx, err)
	}
	defer f.Close()
	if _, err := f.Seek(ds.offsets[idx], io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to read sentence %d: %w", idx, err)
	}
	rr := conllu.NewRecordReader(f, ds.schema, ds.fieldParsers, ds.metadataParsers)
	rec, err := rr.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to read sentence %d: %w", idx, err)
	}
	return ds.assemble(rec)
}
