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

package common

func MapContains[K int | string, V any](m map[K]V, key K) bool {
	_, ok := m[key]
	return ok
}

func MapSlice[T any, U any](items []T, mapFn func(T, int) U) []U {
	ans := make([]U, len(items))
	for i, v := range items {
		ans[i] = mapFn(v, i)
	}
	return ans
}
