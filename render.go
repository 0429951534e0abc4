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
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/btree"

	"github.com/go-deadend/deadend/internal/ext/slicesx"
)

// ErrInvalidPosition indicates a dead end whose row or column lies
// outside the renderable position domain: values below 1, or a column
// so large that the caret offset cannot be represented. [Render]
// surfaces it immediately rather than rendering a partially correct
// report.
var ErrInvalidPosition = errors.New("row or column out of range")

// maxCol bounds columns so the caret offset, numLength+col+1 with
// numLength at most the digit count of math.MaxInt, stays within int.
const maxCol = math.MaxInt - 20

// A Config supplies the fragment constructors [Render] composes a report
// out of, plus rendering knobs. Text, FormatCaret and FormatContext must
// all be non-nil.
//
// One Config value is usable for any number of concurrent Render calls.
type Config[Out any] struct {
	// Text constructs a fragment holding literal report text.
	Text func(string) Out

	// FormatCaret decorates the caret fragment drawn under a failing
	// column.
	FormatCaret func(Out) Out

	// FormatContext decorates a rendered context stack in a sub-report
	// heading.
	FormatContext func(Out) Out

	// Newline is the fragment terminating each report line. It also
	// appears alone as a blank line after each source excerpt and as the
	// separator between reports for different positions.
	Newline Out

	// ExtraContextLines is how many source lines to show before and
	// after a failing line. Zero or negative shows the failing line
	// alone.
	ExtraContextLines int
}

// Render renders deadEnds against the source text that produced them, as
// a flat sequence of output fragments. Adapters concatenate the
// fragments into their native output; see ansifmt, htmlfmt and mdfmt.
//
// Dead ends sharing an exact (row, col) position are reported together
// under a single source excerpt, in order of the position's first
// appearance in deadEnds; within a position, dead ends sharing a context
// stack form one sub-report, again in first-appearance order. A
// sub-report deduplicates its classified problem texts, merges the
// expected ones into a single "Expecting ..." line, and lists the result
// alphabetically. The output is deterministic: input order breaks no
// ties beyond the grouping just described.
//
// Positions need not exist in source. A row beyond the last line is
// excerpted as an empty line at that number, and the caret lands
// wherever the column asks; only rows or columns below 1, and columns
// so large that the caret offset would overflow, are rejected, with an
// error wrapping [ErrInvalidPosition].
//
// An empty deadEnds renders as an empty fragment sequence.
func Render[Out, P any](cfg Config[Out], classify Classifier[P], source string, deadEnds []DeadEnd[P]) ([]Out, error) {
	if cfg.Text == nil || cfg.FormatCaret == nil || cfg.FormatContext == nil {
		panic("deadend: Config constructors must be non-nil")
	}
	if classify == nil {
		panic("deadend: classify must be non-nil")
	}

	if len(deadEnds) == 0 {
		return nil, nil
	}
	for i, d := range deadEnds {
		if d.Row < 1 || d.Col < 1 || d.Col > maxCol {
			return nil, fmt.Errorf("dead end %d at %d:%d: %w", i, d.Row, d.Col, ErrInvalidPosition)
		}
	}

	r := renderer[Out, P]{
		Config:   cfg,
		classify: classify,
		lines:    splitLines(source),
	}

	var out []Out
	first := true
	byPosition := slicesx.GroupBy(deadEnds, func(d DeadEnd[P]) position {
		return position{d.Row, d.Col}
	})
	for pos, group := range byPosition {
		if !first {
			out = append(out, cfg.Newline)
		}
		first = false

		out = r.excerpt(out, pos)
		out = append(out, cfg.Newline)

		byStack := slicesx.GroupBy(group, func(d DeadEnd[P]) string {
			return stackKey(d.Context)
		})
		for _, sub := range byStack {
			out = r.subReport(out, sub)
		}
	}
	return out, nil
}

// String renders deadEnds as undecorated plain text with the built-in
// [Classify] classifier and two lines of surrounding context.
func String(source string, deadEnds []DeadEnd[Problem]) (string, error) {
	id := func(s string) string { return s }
	frags, err := Render(Config[string]{
		Text:              id,
		FormatCaret:       id,
		FormatContext:     id,
		Newline:           "\n",
		ExtraContextLines: 2,
	}, Classify, source, deadEnds)
	if err != nil {
		return "", err
	}
	return strings.Join(frags, ""), nil
}

type position struct {
	row, col int
}

type renderer[Out, P any] struct {
	Config[Out]
	classify Classifier[P]
	lines    []string
}

// excerpt emits the source excerpt for a position: up to
// ExtraContextLines numbered lines before the failing row, the failing
// row itself, a caret line marking the column, and up to
// ExtraContextLines numbered lines after.
func (r *renderer[Out, P]) excerpt(out []Out, pos position) []Out {
	extra := max(r.ExtraContextLines, 0)

	// Context lines beyond either end of the source are simply absent;
	// only the failing row itself renders when missing. The after bounds
	// exist only for rows inside the source, where their sums cannot
	// overflow; rows at or past the last line have no after block.
	beforeFirst := max(pos.row-extra, 1)
	beforeLast := min(pos.row-1, len(r.lines))
	afterFirst, afterLast := 1, 0
	if pos.row < len(r.lines) {
		afterFirst = pos.row + 1
		afterLast = len(r.lines)
		if extra < afterLast-pos.row {
			afterLast = pos.row + extra
		}
	}

	// The gutter is as wide as the largest line number it will show,
	// which is the last "after" line if there is one. Easier than
	// messing with math.Log10().
	greatest := pos.row
	if afterLast >= afterFirst {
		greatest = afterLast
	}
	numLength := len(strconv.Itoa(greatest))

	for n := beforeFirst; n <= beforeLast; n++ {
		out = r.sourceLine(out, numLength, n)
	}
	out = r.sourceLine(out, numLength, pos.row)
	out = append(out,
		r.Text(strings.Repeat(" ", numLength+pos.col+1)),
		r.FormatCaret(r.Text("^")),
		r.Newline,
	)
	for n := afterFirst; n <= afterLast; n++ {
		out = r.sourceLine(out, numLength, n)
	}
	return out
}

// sourceLine emits one gutter-prefixed source line. The caret offset in
// excerpt assumes the gutter is exactly numLength+2 characters wide.
func (r *renderer[Out, P]) sourceLine(out []Out, numLength, n int) []Out {
	return append(out, r.Text(fmt.Sprintf("%*d| %s", numLength, n, r.line(n))), r.Newline)
}

// line returns the text of 1-based line n, or "" if n lies outside the
// source.
func (r *renderer[Out, P]) line(n int) string {
	if n < 1 || n > len(r.lines) {
		return ""
	}
	return r.lines[n-1]
}

// subReport emits the problem lines for the dead ends of one context
// stack: an optional "- stack:" heading, then one two-space-indented
// line per deduplicated classification, alphabetically, with all
// expected texts merged into a single "Expecting ..." line.
func (r *renderer[Out, P]) subReport(out []Out, sub []DeadEnd[P]) []Out {
	var expected, other btree.Set[string]
	for _, d := range sub {
		c := r.classify(d.Problem)
		if c.Expected {
			expected.Insert(c.Text)
		} else {
			other.Insert(c.Text)
		}
	}

	// The "Expecting" line is synthesized from the sorted expected set
	// first, and only then sorted in among the other texts.
	lines := make([]string, 0, other.Len()+1)
	var texts []string
	expected.Scan(func(text string) bool {
		texts = append(texts, text)
		return true
	})
	switch len(texts) {
	case 0:
	case 1:
		lines = append(lines, "Expecting "+texts[0])
	default:
		lines = append(lines, "Expecting one of "+strings.Join(texts, ", "))
	}
	other.Scan(func(text string) bool {
		lines = append(lines, text)
		return true
	})
	slices.Sort(lines)

	if stack := sub[0].Context; len(stack) > 0 {
		out = append(out,
			r.Text("- "),
			r.FormatContext(r.Text(renderStack(stack))),
			r.Text(":"),
			r.Newline,
		)
	}
	for _, line := range lines {
		out = append(out, r.Text("  "+line), r.Newline)
	}
	return out
}

// splitLines splits source into its lines, without terminators. Both LF
// and CRLF terminate a line. Line n of the source is lines[n-1].
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// renderStack renders a context stack for a sub-report heading,
// outermost context first.
func renderStack(stack []Frame) string {
	var sb strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		if sb.Len() > 0 {
			sb.WriteString(" > ")
		}
		fmt.Fprintf(&sb, "%s (%d:%d)", f.Label, f.Row, f.Col)
	}
	return sb.String()
}

// stackKey derives a comparable grouping key from a context stack.
// Labels are quoted so frame boundaries cannot be forged by label text.
func stackKey(stack []Frame) string {
	var sb strings.Builder
	for _, f := range stack {
		fmt.Fprintf(&sb, "%d:%d:%q;", f.Row, f.Col, f.Label)
	}
	return sb.String()
}
