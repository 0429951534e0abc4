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

// Package ansifmt renders dead-end reports for terminals.
//
// The caret is drawn bold red and context-stack headings cyan. With
// [Options].Color false the adapter emits plain text with no escape
// sequences at all, which is also the right mode when output is piped
// to a file.
package ansifmt

import (
	"strings"

	"github.com/fatih/color"

	"github.com/go-deadend/deadend"
)

// Options configures the terminal adapter.
type Options struct {
	// Color emits ANSI escape sequences. It overrides the color
	// library's terminal detection in both directions; callers wanting
	// "auto" behavior can seed it with !color.NoColor.
	Color bool

	// ExtraContextLines is the number of source lines shown around each
	// failing line.
	ExtraContextLines int
}

// Config binds the fragment constructors to ANSI terminal strings.
func Config(opts Options) deadend.Config[string] {
	caret := color.New(color.FgRed, color.Bold)
	context := color.New(color.FgCyan)
	if opts.Color {
		caret.EnableColor()
		context.EnableColor()
	} else {
		caret.DisableColor()
		context.DisableColor()
	}

	return deadend.Config[string]{
		Text:              func(s string) string { return s },
		FormatCaret:       func(s string) string { return caret.Sprint(s) },
		FormatContext:     func(s string) string { return context.Sprint(s) },
		Newline:           "\n",
		ExtraContextLines: opts.ExtraContextLines,
	}
}

// Render renders deadEnds against source as a single terminal-ready
// string.
func Render[P any](opts Options, classify deadend.Classifier[P], source string, deadEnds []deadend.DeadEnd[P]) (string, error) {
	frags, err := deadend.Render(Config(opts), classify, source, deadEnds)
	if err != nil {
		return "", err
	}
	return strings.Join(frags, ""), nil
}
