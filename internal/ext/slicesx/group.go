// Copyright 2024-2026 The deadend authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package slicesx contains extensions to Go's package slices.
package slicesx

import "iter"

// GroupBy returns an iterator over the groups of elements of s that share
// the same value for key(e).
//
// Unlike a run-based partition, elements need not be adjacent: the slice
// [a b a c b] with the identity key is yielded as the groups [a a], [b b],
// and [c]. Groups are yielded in order of first occurrence of their key,
// and elements within a group retain their relative order in s.
//
// The grouping is computed eagerly when iteration begins. Will never yield
// an empty group.
func GroupBy[S ~[]E, E any, K comparable](s S, key func(E) K) iter.Seq2[K, S] {
	return func(yield func(K, S) bool) {
		if len(s) == 0 {
			return
		}

		var order []K
		groups := make(map[K]S)
		for _, e := range s {
			k := key(e)
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], e)
		}

		for _, k := range order {
			if !yield(k, groups[k]) {
				return
			}
		}
	}
}
