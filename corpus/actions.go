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
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bilbo/common"
	"bilbo/conllu"
	"bilbo/dataset"
	"bilbo/jobs"
	"bilbo/vertical"
)

// Actions contains all the server HTTP REST actions
// related to corpora access.
type Actions struct {
	conf       *CorporaSetup
	ctx        context.Context
	jobActions *jobs.Actions
	loaded     *collections.ConcurrentMap[string, *Corpus]
}

// NewActions is the default factory.
func NewActions(conf *CorporaSetup, jobActions *jobs.Actions, ctx context.Context) *Actions {
	return &Actions{
		conf:       conf,
		ctx:        ctx,
		jobActions: jobActions,
		loaded:     collections.NewConcurrentMap[string, *Corpus](),
	}
}

func (a *Actions) datasetOptions(setup CorpusSetup) []dataset.Option {
	opts := []dataset.Option{dataset.WithInMemory(setup.InMemory)}
	if len(setup.Schema) > 0 {
		opts = append(opts, dataset.WithSchema(conllu.Schema(setup.Schema)))
	}
	if len(setup.TokenAnnotationFields) > 0 {
		opts = append(opts, dataset.WithTokenAnnotationFields(setup.TokenAnnotationFields))
	}
	return opts
}

type corpusListItem struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Loaded   bool   `json:"loaded"`
	Size     int    `json:"size"`
}

// CorporaList provides a list of the configured corpora along with
// their load state.
func (a *Actions) CorporaList(ctx *gin.Context) {
	ans := common.MapSlice(a.conf.GetAllCorpora(), func(setup CorpusSetup, _ int) corpusListItem {
		item := corpusListItem{
			ID:       setup.ID,
			FullName: setup.FullName,
		}
		if corp, ok := a.loaded.GetWithTest(setup.ID); ok {
			item.Loaded = true
			item.Size = corp.Size()
		}
		return item
	})
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// CorpusInfo provides information about a single corpus: its
// configuration and, once loaded, split sizes and resolved schema.
func (a *Actions) CorpusInfo(ctx *gin.Context) {
	setup := a.conf.Get(ctx.Param("corpusId"))
	if setup.ID == "" {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("corpus not found"), http.StatusNotFound)
		return
	}
	ans := struct {
		Setup     CorpusSetup `json:"setup"`
		Loaded    bool        `json:"loaded"`
		TrainSize int         `json:"trainSize"`
		DevSize   int         `json:"devSize"`
		TestSize  int         `json:"testSize"`
	}{
		Setup: setup,
	}
	if corp, ok := a.loaded.GetWithTest(setup.ID); ok {
		ans.Loaded = true
		ans.TrainSize = corp.Train.Len()
		if corp.Dev != nil {
			ans.DevSize = corp.Dev.Len()
		}
		if corp.Test != nil {
			ans.TestSize = corp.Test.Len()
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// GetSentence returns a single sentence of a loaded corpus. The split
// is selected via the `split` URL argument (default "train").
func (a *Actions) GetSentence(ctx *gin.Context) {
	corp, ok := a.loaded.GetWithTest(ctx.Param("corpusId"))
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("corpus not loaded"), http.StatusConflict)
		return
	}
	splitName := ctx.DefaultQuery("split", "train")
	split, err := corp.Split(splitName)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to access split: %w", err), http.StatusNotFound)
		return
	}
	idx, err := strconv.Atoi(ctx.Param("sentIdx"))
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("invalid sentence index"), http.StatusBadRequest)
		return
	}
	sent, err := split.Get(idx)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to access sentence: %w", err), http.StatusNotFound)
		return
	}
	ans := struct {
		Corpus   string `json:"corpus"`
		Split    string `json:"split"`
		Idx      int    `json:"idx"`
		Text     string `json:"text"`
		Sentence any    `json:"sentence"`
	}{
		Corpus:   corp.Name,
		Split:    splitName,
		Idx:      idx,
		Text:     sent.Text(),
		Sentence: sent,
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// LoadCorpus starts an asynchronous parse/index job for a configured
// corpus. A corpus already loaded is replaced once the job finishes.
func (a *Actions) LoadCorpus(ctx *gin.Context) {
	setup := a.conf.Get(ctx.Param("corpusId"))
	if setup.ID == "" {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("corpus not found"), http.StatusNotFound)
		return
	}
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to create corpus load job"),
			http.StatusInternalServerError)
		return
	}
	jobInfo := LoadJobInfo{
		ID:       jobID.String(),
		Type:     jobs.JobTypeCorpusLoad,
		CorpusID: setup.ID,
		Start:    jobs.CurrentDatetime(),
	}
	fn := func(upds chan<- jobs.GeneralJobInfo) {
		defer close(upds)
		corp, err := FromFiles(
			setup.ID, setup.DataDir, setup.TrainFile, setup.DevFile, setup.TestFile,
			a.datasetOptions(setup)...,
		)
		if err != nil {
			upds <- jobInfo.WithError(err)
			return
		}
		a.loaded.Set(setup.ID, corp)
		finished := jobInfo
		finished.Result = &LoadJobResult{
			TrainSize: corp.Train.Len(),
			InMemory:  setup.InMemory,
			OK:        true,
		}
		if corp.Dev != nil {
			finished.Result.DevSize = corp.Dev.Len()
		}
		if corp.Test != nil {
			finished.Result.TestSize = corp.Test.Len()
		}
		upds <- finished.AsFinished()
	}
	a.jobActions.EnqueueJob(&fn, jobInfo)
	log.Info().
		Str("corpusId", setup.ID).
		Str("jobId", jobInfo.ID).
		Msg("started corpus load job")
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo.FullInfo())
}

// ImportVertical starts an asynchronous job importing vertical files
// as a new corpus. The imported data is always in-memory and the dev
// split is sampled from the imported sentences.
func (a *Actions) ImportVertical(ctx *gin.Context) {
	corpusID := ctx.Param("corpusId")
	var vconf vertical.Conf
	if err := ctx.BindJSON(&vconf); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("invalid vertical configuration: %w", err),
			http.StatusBadRequest)
		return
	}
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to create vertical import job"),
			http.StatusInternalServerError)
		return
	}
	jobInfo := LoadJobInfo{
		ID:       jobID.String(),
		Type:     jobs.JobTypeVerticalImport,
		CorpusID: corpusID,
		Start:    jobs.CurrentDatetime(),
	}
	fn := func(upds chan<- jobs.GeneralJobInfo) {
		defer close(upds)
		ds, err := vertical.Read(a.ctx, &vconf)
		if err != nil {
			upds <- jobInfo.WithError(err)
			return
		}
		corp := &Corpus{Name: corpusID}
		corp.Train, corp.Dev = sampleDevFromTrain(ds)
		a.loaded.Set(corpusID, corp)
		finished := jobInfo
		finished.Result = &LoadJobResult{
			TrainSize: corp.Train.Len(),
			DevSize:   corp.Dev.Len(),
			InMemory:  true,
			OK:        true,
		}
		upds <- finished.AsFinished()
	}
	a.jobActions.EnqueueJob(&fn, jobInfo)
	log.Info().
		Str("corpusId", corpusID).
		Str("jobId", jobInfo.ID).
		Msg("started vertical import job")
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo.FullInfo())
}

// GetLoaded returns a loaded corpus by its ID.
func (a *Actions) GetLoaded(corpusID string) (*Corpus, error) {
	corp, ok := a.loaded.GetWithTest(corpusID)
	if !ok {
		return nil, fmt.Errorf("failed to access corpus %s: %w", corpusID, ErrCorpusNotFound)
	}
	return corp, nil
}
