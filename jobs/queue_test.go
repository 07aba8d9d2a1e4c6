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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnqueue(t *testing.T) {
	q := JobQueue{}
	f1 := func(chan<- GeneralJobInfo) {}
	f2 := func(chan<- GeneralJobInfo) {}
	f3 := func(chan<- GeneralJobInfo) {}
	q.Enqueue(&f1, DummyJobInfo{ID: "1"})
	q.Enqueue(&f2, DummyJobInfo{ID: "2"})
	q.Enqueue(&f3, DummyJobInfo{ID: "3"})
	assert.Equal(t, &f1, q.firstEntry.job)
	assert.Equal(t, "1", q.firstEntry.initialState.GetID())
	assert.Equal(t, &f3, q.lastEntry.job)
	assert.Equal(t, "3", q.lastEntry.initialState.GetID())
	assert.Equal(t, 3, q.Size())
}

func TestDequeue(t *testing.T) {
	q := JobQueue{}
	f1 := func(chan<- GeneralJobInfo) {}
	f2 := func(chan<- GeneralJobInfo) {}
	q.Enqueue(&f1, DummyJobInfo{ID: "1"})
	q.Enqueue(&f2, DummyJobInfo{ID: "2"})
	fn, state, err := q.Dequeue()
	assert.NoError(t, err)
	assert.Equal(t, &f1, fn)
	assert.Equal(t, "1", state.GetID())
	assert.Equal(t, 1, q.Size())
	fn, state, err = q.Dequeue()
	assert.NoError(t, err)
	assert.Equal(t, &f2, fn)
	assert.Equal(t, "2", state.GetID())
	assert.Equal(t, 0, q.Size())
}

func TestDequeueEmpty(t *testing.T) {
	q := JobQueue{}
	fn, state, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrorEmptyQueue)
	assert.Nil(t, fn)
	assert.Nil(t, state)
}

func TestDequeueResetsLastEntry(t *testing.T) {
	q := JobQueue{}
	f1 := func(chan<- GeneralJobInfo) {}
	q.Enqueue(&f1, DummyJobInfo{ID: "1"})
	_, _, err := q.Dequeue()
	assert.NoError(t, err)
	q.Enqueue(&f1, DummyJobInfo{ID: "2"})
	id, err := q.PeekID()
	assert.NoError(t, err)
	assert.Equal(t, "2", id)
}

func TestPeekIDEmpty(t *testing.T) {
	q := JobQueue{}
	_, err := q.PeekID()
	assert.ErrorIs(t, err, ErrorEmptyQueue)
}
