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

// Package htmlfmt renders dead-end reports as HTML.
//
// A report is column-exact line art, so [Render] wraps it in a single
// <pre> block. Source and problem text is escaped; the caret and the
// context-stack headings become spans with the classes "deadend-caret"
// and "deadend-context" for the embedding page to style.
package htmlfmt

import (
	"html"
	"strings"

	"github.com/go-deadend/deadend"
)

// Options configures the HTML adapter.
type Options struct {
	// ExtraContextLines is the number of source lines shown around each
	// failing line.
	ExtraContextLines int
}

// Config binds the fragment constructors to escaped HTML strings. The
// fragments it produces are block-less; use [Render] for a complete
// <pre> element.
func Config(opts Options) deadend.Config[string] {
	return deadend.Config[string]{
		Text:              html.EscapeString,
		FormatCaret:       span("deadend-caret"),
		FormatContext:     span("deadend-context"),
		Newline:           "\n",
		ExtraContextLines: opts.ExtraContextLines,
	}
}

// Render renders deadEnds against source as one <pre> element, or ""
// when there is nothing to report.
func Render[P any](opts Options, classify deadend.Classifier[P], source string, deadEnds []deadend.DeadEnd[P]) (string, error) {
	frags, err := deadend.Render(Config(opts), classify, source, deadEnds)
	if err != nil {
		return "", err
	}
	if len(frags) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("<pre class=\"deadend-report\">\n")
	for _, frag := range frags {
		sb.WriteString(frag)
	}
	sb.WriteString("</pre>\n")
	return sb.String(), nil
}

func span(class string) func(string) string {
	return func(s string) string {
		return "<span class=\"" + class + "\">" + s + "</span>"
	}
}
