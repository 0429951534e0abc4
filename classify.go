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

// A Classification is a problem reduced to the text that should appear in
// a report, tagged by how [Render] merges it.
//
// Use [Expected] and [Other] to construct classifications.
type Classification struct {
	// Expected reports whether Text describes a construct the parser was
	// looking for, rather than a freestanding failure description. All
	// expected texts of one sub-report collapse into a single
	// "Expecting ..." line.
	Expected bool

	// Text is the report text. Expected texts read as noun phrases
	// completing "Expecting ...", e.g. "a variable" or "\"then\"";
	// other texts are reproduced as their own lines.
	Text string
}

// Expected classifies text as the description of a construct the parser
// was looking for.
func Expected(text string) Classification {
	return Classification{Expected: true, Text: text}
}

// Other classifies text as a freestanding description of a failure.
func Other(text string) Classification {
	return Classification{Text: text}
}

// A Classifier reduces a parser's problem values to report
// classifications. It is consulted once per dead end; classifying the
// same problem value must always yield the same result, since texts are
// deduplicated across dead ends.
//
// [Classify] is the classifier for the built-in [Problem] vocabulary.
type Classifier[P any] func(P) Classification
