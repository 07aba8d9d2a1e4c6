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

package jobs

import (
	"net/http"
	"sort"
	"sync"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	JobTypeCorpusLoad     = "corpus-load"
	JobTypeVerticalImport = "vertical-import"
	JobTypeDummy          = "dummy-job"
)

// Conf configures the job machinery.
type Conf struct {
	MaxNumConcurrentJobs int `json:"maxNumConcurrentJobs"`
}

// Actions runs enqueued jobs with a bounded number of workers and
// keeps a registry of all the started jobs for status reporting.
type Actions struct {
	conf *Conf

	mu         sync.Mutex
	queue      JobQueue
	jobList    map[string]GeneralJobInfo
	numRunning int
	language   string
}

// NewActions is the default factory.
func NewActions(conf *Conf, language string) *Actions {
	return &Actions{
		conf:     conf,
		jobList:  make(map[string]GeneralJobInfo),
		language: language,
	}
}

// EnqueueJob registers a job and either starts it immediately or,
// if all the worker slots are taken, puts it into the queue.
func (a *Actions) EnqueueJob(fn *QueuedFunc, initialState GeneralJobInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.jobList[initialState.GetID()] = initialState
	if a.numRunning >= a.conf.MaxNumConcurrentJobs {
		a.queue.Enqueue(fn, initialState)
		log.Info().
			Str("jobId", initialState.GetID()).
			Str("type", initialState.GetType()).
			Int("queueSize", a.queue.Size()).
			Msg("job queued, all worker slots taken")
		return
	}
	a.startJob(fn, initialState)
}

// startJob must be called with a.mu held.
func (a *Actions) startJob(fn *QueuedFunc, initialState GeneralJobInfo) {
	a.numRunning++
	updates := make(chan GeneralJobInfo, 10)
	go (*fn)(updates)
	go func() {
		for upd := range updates {
			a.mu.Lock()
			a.jobList[upd.GetID()] = upd
			a.mu.Unlock()
		}
		a.mu.Lock()
		a.numRunning--
		if next, nextState, err := a.queue.Dequeue(); err == nil {
			a.startJob(next, nextState)
		}
		a.mu.Unlock()
		log.Info().
			Str("jobId", initialState.GetID()).
			Str("type", initialState.GetType()).
			Msg("job worker finished")
	}()
}

// GetJob returns the last known state of a job.
func (a *Actions) GetJob(jobID string) (GeneralJobInfo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	job, ok := a.jobList[jobID]
	return job, ok
}

// JobList is an HTTP action listing all the registered jobs
// in a compact form, newest first.
func (a *Actions) JobList(ctx *gin.Context) {
	a.mu.Lock()
	ans := make([]JobInfoCompact, 0, len(a.jobList))
	for _, job := range a.jobList {
		ans = append(ans, job.CompactVersion())
	}
	a.mu.Unlock()
	sort.Slice(ans, func(i, j int) bool {
		return ans[j].Start.Before(ans[i].Start)
	})
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// JobInfo is an HTTP action providing the full state of a single job
// along with a localized description.
func (a *Actions) JobInfo(ctx *gin.Context) {
	job, ok := a.GetJob(ctx.Param("jobId"))
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	printer := newPrinter(a.language)
	ans := struct {
		Description string `json:"description"`
		Status      string `json:"status"`
		Data        any    `json:"data"`
	}{
		Description: extractJobDescription(printer, job),
		Data:        job.FullInfo(),
	}
	if job.IsFinished() {
		ans.Status = localizedStatus(printer, job)
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}
