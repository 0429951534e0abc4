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

package deadend_test

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-deadend/deadend"
)

func expecting(text string) deadend.Problem {
	return deadend.Problem{Kind: deadend.Expecting, Text: text}
}

func custom(text string) deadend.Problem {
	return deadend.Problem{Kind: deadend.Custom, Text: text}
}

func kind(k deadend.ProblemKind) deadend.Problem {
	return deadend.Problem{Kind: k}
}

func plain(extra int) deadend.Config[string] {
	id := func(s string) string { return s }
	return deadend.Config[string]{
		Text:              id,
		FormatCaret:       id,
		FormatContext:     id,
		Newline:           "\n",
		ExtraContextLines: extra,
	}
}

func render(t *testing.T, extra int, source string, deadEnds []deadend.DeadEnd[deadend.Problem]) string {
	t.Helper()
	frags, err := deadend.Render(plain(extra), deadend.Classify, source, deadEnds)
	require.NoError(t, err)
	return strings.Join(frags, "")
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		deadEnds []deadend.DeadEnd[deadend.Problem]
		extra    int
		want     string
	}{
		{
			name:   "single expectation",
			source: "abcde",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 5, expecting("foo")),
			},
			want: "1| abcde\n" +
				"       ^\n" +
				"\n" +
				"  Expecting \"foo\"\n",
		},
		{
			name:   "merge and dedup",
			source: "abcde",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 5, expecting("foo")),
				deadend.New(1, 5, expecting("bar")),
				deadend.New(1, 5, expecting("foo")),
				deadend.New(1, 5, custom("Weird token")),
			},
			want: "1| abcde\n" +
				"       ^\n" +
				"\n" +
				"  Expecting one of \"bar\", \"foo\"\n" +
				"  Weird token\n",
		},
		{
			name:   "other text sorts ahead of the expecting line",
			source: "abcde",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 1, kind(deadend.ExpectingEnd)),
				deadend.New(1, 1, custom("A bad thing happened")),
			},
			want: "1| abcde\n" +
				"   ^\n" +
				"\n" +
				"  A bad thing happened\n" +
				"  Expecting the end\n",
		},
		{
			name:   "positions render in first-appearance order",
			source: "ab\ncd",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 1, expecting("x")),
				deadend.New(2, 1, kind(deadend.ExpectingInt)),
				deadend.New(1, 1, expecting("y")),
			},
			want: "1| ab\n" +
				"   ^\n" +
				"\n" +
				"  Expecting one of \"x\", \"y\"\n" +
				"\n" +
				"2| cd\n" +
				"   ^\n" +
				"\n" +
				"  Expecting an integer\n",
		},
		{
			name:   "context stacks split sub-reports",
			source: "ab",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.NewInContext(1, 2, expecting("]"), []deadend.Frame{{Row: 1, Col: 1, Label: "list"}}),
				deadend.NewInContext(1, 2, kind(deadend.ExpectingVariable), []deadend.Frame{{Row: 1, Col: 1, Label: "record"}}),
				deadend.NewInContext(1, 2, expecting(","), []deadend.Frame{{Row: 1, Col: 1, Label: "list"}}),
			},
			want: "1| ab\n" +
				"    ^\n" +
				"\n" +
				"- list (1:1):\n" +
				"  Expecting one of \",\", \"]\"\n" +
				"- record (1:1):\n" +
				"  Expecting a variable\n",
		},
		{
			name:   "nested context renders outermost first",
			source: "xy\nabc",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.NewInContext(2, 3, expecting("="), []deadend.Frame{
					{Row: 2, Col: 1, Label: "pair"},
					{Row: 1, Col: 1, Label: "record"},
				}),
			},
			want: "2| abc\n" +
				"     ^\n" +
				"\n" +
				"- record (1:1) > pair (2:1):\n" +
				"  Expecting \"=\"\n",
		},
		{
			name:   "row beyond the source",
			source: "ab",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(3, 1, kind(deadend.ExpectingEnd)),
			},
			want: "3| \n" +
				"   ^\n" +
				"\n" +
				"  Expecting the end\n",
		},
		{
			name:   "row beyond the source keeps reachable context lines",
			source: "ab\ncd",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(4, 2, kind(deadend.ExpectingNumber)),
			},
			extra: 2,
			want: "2| cd\n" +
				"4| \n" +
				"    ^\n" +
				"\n" +
				"  Expecting a number\n",
		},
		{
			name:   "gutter grows with the after block",
			source: "a\nb\nc\nd\ne\nf\ng\nh\ni\nj",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(9, 1, kind(deadend.ExpectingVariable)),
			},
			extra: 1,
			want: " 8| h\n" +
				" 9| i\n" +
				"    ^\n" +
				"10| j\n" +
				"\n" +
				"  Expecting a variable\n",
		},
		{
			name:   "context clamps at the edges of the source",
			source: "a\nb",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 1, expecting("let")),
			},
			extra: 3,
			want: "1| a\n" +
				"   ^\n" +
				"2| b\n" +
				"\n" +
				"  Expecting \"let\"\n",
		},
		{
			name:   "negative context width behaves as zero",
			source: "a\nb",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 1, expecting("x")),
			},
			extra: -2,
			want: "1| a\n" +
				"   ^\n" +
				"\n" +
				"  Expecting \"x\"\n",
		},
		{
			name:   "crlf line endings",
			source: "ab\r\ncd\r\n",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(2, 1, kind(deadend.ExpectingInt)),
			},
			want: "2| cd\n" +
				"   ^\n" +
				"\n" +
				"  Expecting an integer\n",
		},
		{
			name:   "trailing newline produces a final empty line",
			source: "ab\n",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(2, 1, kind(deadend.ExpectingEnd)),
			},
			want: "2| \n" +
				"   ^\n" +
				"\n" +
				"  Expecting the end\n",
		},
		{
			name:   "empty source",
			source: "",
			deadEnds: []deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 1, custom("oops")),
			},
			want: "1| \n" +
				"   ^\n" +
				"\n" +
				"  oops\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, render(t, test.extra, test.source, test.deadEnds))
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	frags, err := deadend.Render(plain(2), deadend.Classify, "abc", nil)
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestRenderFragments(t *testing.T) {
	t.Parallel()

	cfg := deadend.Config[string]{
		Text:          func(s string) string { return s },
		FormatCaret:   func(s string) string { return "[caret " + s + "]" },
		FormatContext: func(s string) string { return "[ctx " + s + "]" },
		Newline:       "<nl>",
	}
	frags, err := deadend.Render(cfg, deadend.Classify, "abcde", []deadend.DeadEnd[deadend.Problem]{
		deadend.NewInContext(1, 5, expecting("foo"), []deadend.Frame{{Row: 1, Col: 1, Label: "list"}}),
	})
	require.NoError(t, err)

	want := []string{
		"1| abcde", "<nl>",
		"       ", "[caret ^]", "<nl>",
		"<nl>",
		"- ", "[ctx list (1:1)]", ":", "<nl>",
		"  Expecting \"foo\"", "<nl>",
	}
	if diff := cmp.Diff(want, frags); diff != "" {
		t.Errorf("unexpected fragments (-want +got):\n%s", diff)
	}
}

// A row at the far end of the int range still renders as an empty
// excerpt line. The after block in particular must stay empty at any
// context width rather than wrap around the int range.
func TestRenderExtremeRow(t *testing.T) {
	t.Parallel()

	want := fmt.Sprintf("%d| \n", math.MaxInt) +
		strings.Repeat(" ", len(strconv.Itoa(math.MaxInt))+2) + "^\n" +
		"\n" +
		"  Expecting \"x\"\n"

	for _, extra := range []int{0, 2} {
		got := render(t, extra, "ab", []deadend.DeadEnd[deadend.Problem]{
			deadend.New(math.MaxInt, 1, expecting("x")),
		})
		assert.Equal(t, want, got, "context width %d", extra)
	}
}

func TestRenderInvalidPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deadEnds []deadend.DeadEnd[deadend.Problem]
	}{
		{"zero row", []deadend.DeadEnd[deadend.Problem]{deadend.New(0, 1, expecting("x"))}},
		{"zero col", []deadend.DeadEnd[deadend.Problem]{deadend.New(1, 0, expecting("x"))}},
		{"negative row", []deadend.DeadEnd[deadend.Problem]{deadend.New(-3, 4, expecting("x"))}},
		{"oversized col", []deadend.DeadEnd[deadend.Problem]{deadend.New(1, math.MaxInt, expecting("x"))}},
		{
			"valid then invalid",
			[]deadend.DeadEnd[deadend.Problem]{
				deadend.New(1, 1, expecting("x")),
				deadend.New(2, -1, expecting("y")),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			frags, err := deadend.Render(plain(0), deadend.Classify, "ab", test.deadEnds)
			require.ErrorIs(t, err, deadend.ErrInvalidPosition)
			assert.Nil(t, frags)
		})
	}
}

func TestRenderMisuse(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "deadend: classify must be non-nil", func() {
		_, _ = deadend.Render[string, deadend.Problem](plain(0), nil, "ab", nil)
	})

	cfg := plain(0)
	cfg.FormatCaret = nil
	assert.PanicsWithValue(t, "deadend: Config constructors must be non-nil", func() {
		_, _ = deadend.Render(cfg, deadend.Classify, "ab", nil)
	})
}

func TestString(t *testing.T) {
	t.Parallel()

	got, err := deadend.String("fruits =\n  [ apple\n  , banana\n  ]", []deadend.DeadEnd[deadend.Problem]{
		deadend.NewInContext(3, 5, expecting("]"), []deadend.Frame{{Row: 2, Col: 3, Label: "list"}}),
		deadend.NewInContext(3, 5, kind(deadend.ExpectingVariable), []deadend.Frame{{Row: 2, Col: 3, Label: "list"}}),
	})
	require.NoError(t, err)

	want := "1| fruits =\n" +
		"2|   [ apple\n" +
		"3|   , banana\n" +
		"       ^\n" +
		"4|   ]\n" +
		"\n" +
		"- list (2:3):\n" +
		"  Expecting one of \"]\", a variable\n"
	assert.Equal(t, want, got)
}
