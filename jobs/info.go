// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
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

package jobs

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GeneralJobInfo defines a respective interface for all
// asynchronous jobs the service runs (corpus loading,
// vertical imports etc.)
type GeneralJobInfo interface {
	GetID() string
	GetType() string
	GetStartDT() JSONTime
	GetCorpus() string
	IsFinished() bool
	GetError() error

	// AsFinished returns a copy of the job info in the finished state
	AsFinished() GeneralJobInfo

	// WithError returns a copy of the job info with the attached error
	WithError(err error) GeneralJobInfo

	CompactVersion() JobInfoCompact
	FullInfo() any
}

// JobInfoCompact is cross-type compact job information
// suitable for job listings.
type JobInfoCompact struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	CorpusID string   `json:"corpusId"`
	Start    JSONTime `json:"start"`
	Update   JSONTime `json:"update"`
	Finished bool     `json:"finished"`
	OK       bool     `json:"ok"`
}

func ErrorToString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

func newPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func extractJobDescription(printer *message.Printer, info GeneralJobInfo) string {
	desc := "??"
	switch info.GetType() {
	case JobTypeCorpusLoad:
		desc = printer.Sprintf("Corpus data parsing and indexing")
	case JobTypeVerticalImport:
		desc = printer.Sprintf("Vertical file import")
	case JobTypeDummy:
		desc = printer.Sprintf("Testing and debugging empty job")
	default:
		desc = printer.Sprintf("Unknown job")
	}
	return desc
}

func localizedStatus(printer *message.Printer, info GeneralJobInfo) string {
	if info.GetError() == nil {
		return printer.Sprintf("Job finished without errors")
	}
	return printer.Sprintf("Job finished with error: %s", info.GetError())
}
