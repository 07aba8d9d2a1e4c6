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

package corpus

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"bilbo/dataset"
	"bilbo/sentence"
)

var (
	ErrCorpusNotFound = errors.New("corpus not found")
)

// devSampleRate says that every n-th train sentence goes to the dev
// split when no dev file exists.
const devSampleRate = 10

// Corpus bundles the train/dev/test splits of one annotated corpus.
type Corpus struct {
	Name  string
	Train dataset.Source
	Dev   dataset.Source
	Test  dataset.Source
}

// Size returns the total number of sentences across all the splits.
func (c *Corpus) Size() int {
	ans := c.Train.Len()
	if c.Dev != nil {
		ans += c.Dev.Len()
	}
	if c.Test != nil {
		ans += c.Test.Len()
	}
	return ans
}

// Split returns the split of the provided name ("train", "dev",
// "test").
func (c *Corpus) Split(name string) (dataset.Source, error) {
	var src dataset.Source
	switch name {
	case "train":
		src = c.Train
	case "dev":
		src = c.Dev
	case "test":
		src = c.Test
	default:
		return nil, fmt.Errorf("unknown split %s", name)
	}
	if src == nil {
		return nil, fmt.Errorf("corpus %s has no %s split: %w", c.Name, name, ErrCorpusNotFound)
	}
	return src, nil
}

// subsetSource is a read-only view of selected indices of another
// source. It backs the dev split sampled from train.
type subsetSource struct {
	base    dataset.Source
	indices []int
}

func (ss *subsetSource) Len() int {
	return len(ss.indices)
}

func (ss *subsetSource) Get(idx int) (*sentence.Sentence, error) {
	if idx < 0 || idx >= len(ss.indices) {
		return nil, fmt.Errorf("sentence index %d out of range (split size: %d)", idx, len(ss.indices))
	}
	return ss.base.Get(ss.indices[idx])
}

func (ss *subsetSource) InMemory() bool {
	return ss.base.InMemory()
}

// sampleDevFromTrain splits a train source into a reduced train view
// and a sampled dev view. Every devSampleRate-th sentence goes to dev.
func sampleDevFromTrain(train dataset.Source) (dataset.Source, dataset.Source) {
	trainView := &subsetSource{base: train}
	devView := &subsetSource{base: train}
	for i := 0; i < train.Len(); i++ {
		if i%devSampleRate == devSampleRate-1 {
			devView.indices = append(devView.indices, i)

		} else {
			trainView.indices = append(trainView.indices, i)
		}
	}
	return trainView, devView
}

// FromFiles loads a corpus from a data directory. Explicit file names
// win over the naming-convention discovery (see FindTrainDevTestFiles).
// A missing dev split is sampled from train.
func FromFiles(
	name string,
	dataDir string,
	trainFile, devFile, testFile string,
	opts ...dataset.Option,
) (*Corpus, error) {
	trainPath, devPath, testPath, err := FindTrainDevTestFiles(dataDir, trainFile, devFile, testFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus %s: %w", name, err)
	}
	corp := &Corpus{Name: name}

	train, err := dataset.New(trainPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus %s: %w", name, err)
	}
	corp.Train = train

	if devPath != "" {
		dev, err := dataset.New(devPath, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus %s: %w", name, err)
		}
		corp.Dev = dev

	} else {
		log.Info().
			Str("corpus", name).
			Msg("no dev data found, sampling dev split from train")
		corp.Train, corp.Dev = sampleDevFromTrain(train)
	}

	if testPath != "" {
		test, err := dataset.New(testPath, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus %s: %w", name, err)
		}
		corp.Test = test
	}
	return corp, nil
}
