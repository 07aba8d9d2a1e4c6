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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// CorpusSetup describes one configured corpus: where its data files
// live and how their columns should be interpreted.
type CorpusSetup struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`

	// DataDir is the directory containing the corpus' CoNLL-U files.
	DataDir string `json:"dataDir"`

	// TrainFile, DevFile, TestFile are optional explicit file names
	// within DataDir. Empty values trigger naming-convention discovery.
	TrainFile string `json:"trainFile"`
	DevFile   string `json:"devFile"`
	TestFile  string `json:"testFile"`

	// InMemory selects the access strategy for the corpus' datasets.
	InMemory bool `json:"inMemory"`

	// Schema optionally overrides the default CoNLL-U columns.
	Schema []string `json:"schema"`

	// TokenAnnotationFields optionally overrides which columns
	// become per-token labels.
	TokenAnnotationFields []string `json:"tokenAnnotationFields"`
}

// CorporaSetup defines the application configuration related
// to corpora.
type CorporaSetup struct {
	CorporaConfDir string `json:"corporaConfDir"`
	corpora        []CorpusSetup
}

// Load reads all the corpus configuration files from CorporaConfDir.
// Invalid files are skipped with a warning.
func (cs *CorporaSetup) Load() error {
	files, err := os.ReadDir(cs.CorporaConfDir)
	if err != nil {
		return fmt.Errorf("failed to load corpora configs: %w", err)
	}
	for _, f := range files {
		confPath := filepath.Join(cs.CorporaConfDir, f.Name())
		tmp, err := os.ReadFile(confPath)
		if err != nil {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid corpus configuration file, skipping")
			continue
		}
		var conf CorpusSetup
		err = json.Unmarshal(tmp, &conf)
		if err != nil || conf.ID == "" {
			log.Warn().
				Err(err).
				Str("file", confPath).
				Msg("encountered invalid corpus configuration file, skipping")
			continue
		}
		cs.corpora = append(cs.corpora, conf)
		log.Info().Str("name", conf.ID).Msg("loaded corpus configuration file")
	}
	return nil
}

// Get returns the setup of the corpus with the provided ID.
// For an unknown ID, a zero value is returned.
func (cs *CorporaSetup) Get(name string) CorpusSetup {
	for _, v := range cs.corpora {
		if v.ID == name {
			return v
		}
	}
	return CorpusSetup{}
}

// GetAllCorpora returns the setups of all the configured corpora.
func (cs *CorporaSetup) GetAllCorpora() []CorpusSetup {
	ans := make([]CorpusSetup, len(cs.corpora))
	copy(ans, cs.corpora)
	return ans
}
