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
	"time"

	"bilbo/jobs"
)

// LoadJobResult reports the outcome of a finished corpus load.
type LoadJobResult struct {
	TrainSize int  `json:"trainSize"`
	DevSize   int  `json:"devSize"`
	TestSize  int  `json:"testSize"`
	InMemory  bool `json:"inMemory"`
	OK        bool `json:"ok"`
}

// LoadJobInfo collects information about a corpus parsing
// and indexing job
type LoadJobInfo struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	CorpusID string         `json:"corpusId"`
	Start    jobs.JSONTime  `json:"start"`
	Update   jobs.JSONTime  `json:"update"`
	Finished bool           `json:"finished"`
	Error    error          `json:"error,omitempty"`
	Result   *LoadJobResult `json:"result"`
}

func (j LoadJobInfo) GetID() string {
	return j.ID
}

func (j LoadJobInfo) GetType() string {
	return j.Type
}

func (j LoadJobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j LoadJobInfo) GetCorpus() string {
	return j.CorpusID
}

func (j LoadJobInfo) IsFinished() bool {
	return j.Finished
}

func (j LoadJobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j LoadJobInfo) CompactVersion() jobs.JobInfoCompact {
	item := jobs.JobInfoCompact{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		OK:       true,
	}
	if j.Error != nil || j.Result == nil || !j.Result.OK {
		item.OK = false
	}
	return item
}

func (j LoadJobInfo) FullInfo() any {
	return struct {
		ID       string         `json:"id"`
		Type     string         `json:"type"`
		CorpusID string         `json:"corpusId"`
		Start    jobs.JSONTime  `json:"start"`
		Update   jobs.JSONTime  `json:"update"`
		Finished bool           `json:"finished"`
		Error    string         `json:"error,omitempty"`
		OK       bool           `json:"ok"`
		Result   *LoadJobResult `json:"result"`
	}{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   j.Update,
		Finished: j.Finished,
		Error:    jobs.ErrorToString(j.Error),
		OK:       j.Error == nil,
		Result:   j.Result,
	}
}

func (j LoadJobInfo) GetError() error {
	return j.Error
}

func (j LoadJobInfo) WithError(err error) jobs.GeneralJobInfo {
	return LoadJobInfo{
		ID:       j.ID,
		Type:     j.Type,
		CorpusID: j.CorpusID,
		Start:    j.Start,
		Update:   jobs.JSONTime(time.Now()),
		Finished: true,
		Error:    err,
		Result:   j.Result,
	}
}
