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

package deadend

import "slices"

// A Frame is one entry of a dead end's context stack: a named parse
// context together with the position at which the parser entered it.
type Frame struct {
	Row   int
	Col   int
	Label string
}

// A DeadEnd records one point at which a parse of some source text could
// not continue.
//
// Row and Col are 1-based; both must be positive, and Col small enough
// to lay a caret under, for [Render] to accept the record. Problem
// describes what the parser was unable to do at that position, in
// whatever vocabulary the parser uses; see [Problem] for the built-in
// one.
//
// Context is the parser's context stack at the time of the failure,
// innermost first: Context[0] is the context entered most recently. It
// may be empty. Dead ends at the same position with different stacks
// render as separate sub-reports under one shared source excerpt.
type DeadEnd[P any] struct {
	Row     int
	Col     int
	Problem P
	Context []Frame
}

// New returns a dead end with an empty context stack, for parsers that do
// not track the contexts they fail in.
func New[P any](row, col int, problem P) DeadEnd[P] {
	return DeadEnd[P]{Row: row, Col: col, Problem: problem}
}

// NewInContext returns a dead end carrying the parser's context stack,
// ordered innermost first. The stack is copied.
func NewInContext[P any](row, col int, problem P, context []Frame) DeadEnd[P] {
	return DeadEnd[P]{Row: row, Col: col, Problem: problem, Context: slices.Clone(context)}
}
