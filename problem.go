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
	"fmt"
	"strconv"
)

// A ProblemKind identifies one of the built-in parser problems.
type ProblemKind int8

const (
	// Expecting is a failure to find a specific piece of text, named by
	// [Problem.Text].
	Expecting ProblemKind = 1 + iota
	// ExpectingVariable is a failure to find a variable name.
	ExpectingVariable
	// ExpectingEnd is a failure to reach the end of the input.
	ExpectingEnd
	// ExpectingInt, ExpectingHex, ExpectingOctal, ExpectingBinary,
	// ExpectingFloat and ExpectingNumber are failures to find a numeric
	// literal of the corresponding shape.
	ExpectingInt
	ExpectingHex
	ExpectingOctal
	ExpectingBinary
	ExpectingFloat
	ExpectingNumber
	// ExpectingSymbol and ExpectingKeyword are failures to find the
	// symbol or keyword named by [Problem.Text].
	ExpectingSymbol
	ExpectingKeyword
	// UnexpectedChar is a character the parser had no rule for.
	UnexpectedChar
	// Custom is a freeform failure message carried in [Problem.Text].
	Custom
	// BadRepeat is a repetition that made no progress and would have
	// looped forever.
	BadRepeat
)

var problemKindNames = [...]string{
	Expecting:         "expecting",
	ExpectingVariable: "expecting_variable",
	ExpectingEnd:      "expecting_end",
	ExpectingInt:      "expecting_int",
	ExpectingHex:      "expecting_hex",
	ExpectingOctal:    "expecting_octal",
	ExpectingBinary:   "expecting_binary",
	ExpectingFloat:    "expecting_float",
	ExpectingNumber:   "expecting_number",
	ExpectingSymbol:   "expecting_symbol",
	ExpectingKeyword:  "expecting_keyword",
	UnexpectedChar:    "unexpected_char",
	Custom:            "custom",
	BadRepeat:         "bad_repeat",
}

// String implements [fmt.Stringer]. The returned names are stable and
// round-trip through [ParseProblemKind].
func (k ProblemKind) String() string {
	if k < 1 || int(k) >= len(problemKindNames) {
		return fmt.Sprintf("ProblemKind(%d)", int8(k))
	}
	return problemKindNames[k]
}

// ParseProblemKind is the inverse of [ProblemKind.String]. It returns
// false for names it does not know.
func ParseProblemKind(name string) (ProblemKind, bool) {
	for k, n := range problemKindNames {
		if n == name && n != "" {
			return ProblemKind(k), true
		}
	}
	return 0, false
}

// A Problem is a parser problem from the built-in vocabulary.
//
// Only some kinds carry text: [Expecting], [ExpectingSymbol] and
// [ExpectingKeyword] name the text the parser was looking for, and
// [Custom] carries a freeform message. Text is ignored for the remaining
// kinds.
//
// Parsers are not restricted to this vocabulary; any problem type can be
// rendered by pairing it with its own [Classifier].
type Problem struct {
	Kind ProblemKind
	Text string
}

// Classify is the [Classifier] for the built-in [Problem] vocabulary.
//
// Kinds that name expected text ([Expecting], [ExpectingSymbol],
// [ExpectingKeyword]) classify as expected with that text quoted by
// [Quote]; the remaining Expecting kinds classify as expected with a
// fixed description. [UnexpectedChar], [Custom] and [BadRepeat] classify
// as other. Unknown kinds classify as Other("Unknown problem") so that
// classification stays total.
func Classify(p Problem) Classification {
	switch p.Kind {
	case Expecting, ExpectingSymbol, ExpectingKeyword:
		return Expected(Quote(p.Text))
	case ExpectingVariable:
		return Expected("a variable")
	case ExpectingEnd:
		return Expected("the end")
	case ExpectingInt:
		return Expected("an integer")
	case ExpectingHex:
		return Expected("an hexadecimal number")
	case ExpectingOctal:
		return Expected("an octal number")
	case ExpectingBinary:
		return Expected("a binary number")
	case ExpectingFloat:
		return Expected("a floating point number")
	case ExpectingNumber:
		return Expected("a number")
	case UnexpectedChar:
		return Other("Unexpected char")
	case Custom:
		return Other(p.Text)
	case BadRepeat:
		return Other("Bad repetition")
	default:
		return Other("Unknown problem")
	}
}

// Quote renders s as a double-quoted, backslash-escaped literal, the way
// expected text appears in reports.
func Quote(s string) string {
	return strconv.Quote(s)
}
