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

package ansifmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-deadend/deadend"
	"github.com/go-deadend/deadend/ansifmt"
)

const (
	caretOn   = "\x1b[31;1m"
	contextOn = "\x1b[36m"
	off       = "\x1b[0m"
)

func deadEnds() []deadend.DeadEnd[deadend.Problem] {
	return []deadend.DeadEnd[deadend.Problem]{
		deadend.NewInContext(1, 3,
			deadend.Problem{Kind: deadend.Expecting, Text: "="},
			[]deadend.Frame{{Row: 1, Col: 1, Label: "definition"}},
		),
	}
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	got, err := ansifmt.Render(ansifmt.Options{}, deadend.Classify, "ab cd", deadEnds())
	require.NoError(t, err)

	want := "1| ab cd\n" +
		"     ^\n" +
		"\n" +
		"- definition (1:1):\n" +
		"  Expecting \"=\"\n"
	assert.Equal(t, want, got)
}

func TestRenderColor(t *testing.T) {
	t.Parallel()

	got, err := ansifmt.Render(ansifmt.Options{Color: true}, deadend.Classify, "ab cd", deadEnds())
	require.NoError(t, err)

	want := "1| ab cd\n" +
		"     " + caretOn + "^" + off + "\n" +
		"\n" +
		"- " + contextOn + "definition (1:1)" + off + ":\n" +
		"  Expecting \"=\"\n"
	assert.Equal(t, want, got)
}

func TestRenderInvalidPosition(t *testing.T) {
	t.Parallel()

	_, err := ansifmt.Render(ansifmt.Options{}, deadend.Classify, "ab", []deadend.DeadEnd[deadend.Problem]{
		deadend.New(0, 1, deadend.Problem{Kind: deadend.ExpectingEnd}),
	})
	require.ErrorIs(t, err, deadend.ErrInvalidPosition)
}
