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
	"errors"
)

var (
	ErrorEmptyQueue = errors.New("empty queue")
)

// QueuedFunc is a job body. It must close the provided channel
// once it sends its last status update.
type QueuedFunc = func(chan<- GeneralJobInfo)

type jobEntry struct {
	next         *jobEntry
	job          *QueuedFunc
	initialState GeneralJobInfo
}

// JobQueue is a FIFO of jobs waiting for a free worker slot.
// The zero value is an empty queue ready to use.
type JobQueue struct {
	firstEntry *jobEntry
	lastEntry  *jobEntry
}

func (jq *JobQueue) Size() int {
	ans := 0
	for curr := jq.firstEntry; curr != nil; curr = curr.next {
		ans++
	}
	return ans
}

func (jq *JobQueue) Enqueue(item *QueuedFunc, initialState GeneralJobInfo) {
	entry := &jobEntry{
		job:          item,
		initialState: initialState,
	}
	if jq.firstEntry == nil {
		jq.firstEntry = entry
	}
	if jq.lastEntry != nil {
		jq.lastEntry.next = entry
	}
	jq.lastEntry = entry
}

func (jq *JobQueue) Dequeue() (*QueuedFunc, GeneralJobInfo, error) {
	ret := jq.firstEntry
	if ret == nil {
		return nil, nil, ErrorEmptyQueue
	}
	jq.firstEntry = ret.next
	if jq.firstEntry == nil {
		jq.lastEntry = nil
	}
	return ret.job, ret.initialState, nil
}

// PeekID returns the ID of the next job to be dequeued.
func (jq *JobQueue) PeekID() (string, error) {
	if jq.firstEntry == nil {
		return "", ErrorEmptyQueue
	}
	return jq.firstEntry.initialState.GetID(), nil
}
