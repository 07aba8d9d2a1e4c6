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

package debug

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bilbo/dataset"
	"bilbo/jobs"
)

// Actions contains all the server HTTP REST actions
// for testing and debugging
type Actions struct {
	finishSignals map[string]chan<- bool
	jobActions    *jobs.Actions
}

// SentencePreview parses a single sentence of an arbitrary CoNLL-U
// file and returns its full dump. This is meant for inspecting how
// a file's columns and metadata are interpreted by the server.
func (a *Actions) SentencePreview(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("missing path argument"), http.StatusBadRequest)
		return
	}
	idx := 0
	if rawIdx := ctx.Query("idx"); rawIdx != "" {
		var err error
		if idx, err = strconv.Atoi(rawIdx); err != nil {
			uniresp.WriteJSONErrorResponse(
				ctx.Writer, uniresp.NewActionError("invalid idx argument"), http.StatusBadRequest)
			return
		}
	}
	// lazy mode keeps the probe cheap even for large files
	ds, err := dataset.New(path, dataset.WithInMemory(false))
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to preview sentence: %w", err),
			http.StatusBadRequest)
		return
	}
	sent, err := ds.Get(idx)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to preview sentence: %w", err),
			http.StatusBadRequest)
		return
	}
	ans := struct {
		Path         string `json:"path"`
		Idx          int    `json:"idx"`
		NumSentences int    `json:"numSentences"`
		Schema       any    `json:"schema"`
		Dump         string `json:"dump"`
	}{
		Path:         path,
		Idx:          idx,
		NumSentences: ds.Len(),
		Schema:       ds.Schema(),
		Dump:         spew.Sdump(sent),
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// CreateDummyJob creates an always pending job which can be
// finished via FinishDummyJob.
func (a *Actions) CreateDummyJob(ctx *gin.Context) {
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to create dummy job"),
			http.StatusInternalServerError)
		return
	}
	jobInfo := jobs.DummyJobInfo{
		ID:       jobID.String(),
		Type:     jobs.JobTypeDummy,
		Start:    jobs.CurrentDatetime(),
		CorpusID: "dummy",
	}
	if ctx.Request.URL.Query().Get("error") == "1" {
		jobInfo.Error = fmt.Errorf("dummy error")
	}
	finishSignal := make(chan bool)
	fn := func(upds chan<- jobs.GeneralJobInfo) {
		defer close(upds)
		<-finishSignal
		jobInfo.Result = &jobs.DummyJobResult{Payload: "Job Done!"}
		upds <- jobInfo.AsFinished()
	}
	a.jobActions.EnqueueJob(&fn, jobInfo)
	a.finishSignals[jobID.String()] = finishSignal
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo)
}

func (a *Actions) FinishDummyJob(ctx *gin.Context) {
	finish, ok := a.finishSignals[ctx.Param("jobId")]
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	delete(a.finishSignals, ctx.Param("jobId"))
	defer close(finish)
	finish <- true
	if storedJob, ok := a.jobActions.GetJob(ctx.Param("jobId")); ok {
		uniresp.WriteJSONResponse(ctx.Writer, storedJob.FullInfo())

	} else {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
	}
}

// NewActions is the default factory
func NewActions(jobActions *jobs.Actions) *Actions {
	return &Actions{
		finishSignals: make(map[string]chan<- bool),
		jobActions:    jobActions,
	}
}
