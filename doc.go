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

// Package deadend renders parser dead ends as human-readable reports.
//
// A dead end records one way a parse could have continued but did not: a
// 1-based position in the source, a problem value describing what went
// wrong there, and the stack of named contexts the parser was inside at
// the time. Backtracking parsers produce many dead ends for a single
// failure, most of them redundant; [Render] turns the flat list into a
// report grouped by position and context stack, with deduplicated problem
// descriptions, source excerpts, and a caret marking the failing column.
//
// The renderer is output-agnostic. It never builds strings for a specific
// medium; instead it composes a flat sequence of fragments through the
// constructors of a [Config], so the same report logic serves plain text,
// ANSI terminals, HTML, or anything else with a notion of text, newlines
// and two decorations. The simplest instantiation binds Out to string:
//
//	cfg := deadend.Config[string]{
//	    Text:          func(s string) string { return s },
//	    FormatCaret:   func(s string) string { return s },
//	    FormatContext: func(s string) string { return s },
//	    Newline:       "\n",
//	}
//	frags, err := deadend.Render(cfg, deadend.Classify, src, deadEnds)
//
// The ansifmt, htmlfmt and mdfmt packages provide ready-made bindings for
// terminals, HTML and Markdown, and [String] is a one-call plain-text
// convenience.
//
// Problems are opaque to the renderer. A [Classifier] reduces each one to
// a [Classification], either the description of something the parser
// expected ("a variable", "\"then\"") or a freestanding message; expected
// descriptions at one position merge into a single "Expecting one of ..."
// line. [Classify] is the classifier for the built-in [Problem]
// vocabulary; parsers with their own problem types supply their own
// classifier and any problem type at all can flow through [DeadEnd]'s
// type parameter.
package deadend
