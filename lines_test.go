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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal([]string{""}, splitLines(""))
	assert.Equal([]string{"a"}, splitLines("a"))
	assert.Equal([]string{"a", "b"}, splitLines("a\nb"))
	assert.Equal([]string{"a", ""}, splitLines("a\n"))
	assert.Equal([]string{"a", "b", ""}, splitLines("a\r\nb\r\n"))
	assert.Equal([]string{"", "", ""}, splitLines("\n\n"))
	// A carriage return is only trimmed as part of a CRLF pair's line.
	assert.Equal([]string{"a\rb"}, splitLines("a\rb"))
}

func TestRenderStack(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("", renderStack(nil))
	assert.Equal("list (1:2)", renderStack([]Frame{{Row: 1, Col: 2, Label: "list"}}))
	assert.Equal(
		"definition (1:1) > record (2:3) > pair (2:5)",
		renderStack([]Frame{
			{Row: 2, Col: 5, Label: "pair"},
			{Row: 2, Col: 3, Label: "record"},
			{Row: 1, Col: 1, Label: "definition"},
		}),
	)
}

func TestStackKey(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(stackKey(nil), stackKey([]Frame{}))
	assert.Equal(
		stackKey([]Frame{{Row: 1, Col: 2, Label: "list"}}),
		stackKey([]Frame{{Row: 1, Col: 2, Label: "list"}}),
	)
	assert.NotEqual(
		stackKey([]Frame{{Row: 1, Col: 2, Label: "list"}}),
		stackKey([]Frame{{Row: 1, Col: 3, Label: "list"}}),
	)
	// Quoting keeps frame boundaries unambiguous even for hostile labels.
	assert.NotEqual(
		stackKey([]Frame{{Row: 1, Col: 1, Label: `a";1:1:"b`}}),
		stackKey([]Frame{{Row: 1, Col: 1, Label: "a"}, {Row: 1, Col: 1, Label: "b"}}),
	)
}
