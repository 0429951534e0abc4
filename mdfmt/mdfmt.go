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

// Package mdfmt renders dead-end reports as Markdown.
//
// A report relies on exact column alignment, which only survives
// Markdown inside a fenced code block, so [Render] emits one fence per
// report. The fence is grown past the longest backtick run appearing in
// the report, keeping source text from terminating the block early.
// Caret and context decorations pass through undecorated; fenced blocks
// cannot carry styling.
package mdfmt

import (
	"strings"

	"github.com/go-deadend/deadend"
)

// Options configures the Markdown adapter.
type Options struct {
	// Lang is the info string placed after the opening fence, e.g.
	// "text". It is emitted verbatim.
	Lang string

	// ExtraContextLines is the number of source lines shown around each
	// failing line.
	ExtraContextLines int
}

// Config binds the fragment constructors to plain strings for use
// inside a fenced block.
func Config(opts Options) deadend.Config[string] {
	id := func(s string) string { return s }
	return deadend.Config[string]{
		Text:              id,
		FormatCaret:       id,
		FormatContext:     id,
		Newline:           "\n",
		ExtraContextLines: opts.ExtraContextLines,
	}
}

// Render renders deadEnds against source as one fenced code block, or
// "" when there is nothing to report.
func Render[P any](opts Options, classify deadend.Classifier[P], source string, deadEnds []deadend.DeadEnd[P]) (string, error) {
	frags, err := deadend.Render(Config(opts), classify, source, deadEnds)
	if err != nil {
		return "", err
	}
	if len(frags) == 0 {
		return "", nil
	}

	body := strings.Join(frags, "")
	fence := strings.Repeat("`", max(3, longestBacktickRun(body)+1))

	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteString(opts.Lang)
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString(fence)
	sb.WriteString("\n")
	return sb.String(), nil
}

func longestBacktickRun(s string) int {
	var run, longest int
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
