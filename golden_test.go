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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-deadend/deadend"
	"github.com/go-deadend/deadend/ansifmt"
	"github.com/go-deadend/deadend/htmlfmt"
	"github.com/go-deadend/deadend/internal/dump"
	"github.com/go-deadend/deadend/internal/golden"
	"github.com/go-deadend/deadend/mdfmt"
)

// ansiMarkup rewrites escape sequences into visible markup so the golden
// files stay reviewable.
var ansiMarkup = strings.NewReplacer(
	"\x1b[31;1m", "⟨red⟩",
	"\x1b[36m", "⟨cyan⟩",
	"\x1b[0m", "⟨/⟩",
)

// Set DEADEND_REFRESH to a glob of case names (e.g. "testdata/**") to
// rewrite the golden files from actual output.
func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:      "testdata",
		Refresh:   "DEADEND_REFRESH",
		Extension: "yaml",
		Outputs: []golden.Output{
			{Extension: "txt"},
			{Extension: "color.txt"},
			{Extension: "html"},
			{Extension: "md"},
		},
		Test: func(t *testing.T, _, text string) []string {
			f, err := dump.Decode(strings.NewReader(text))
			require.NoError(t, err)
			deadEnds, err := f.Records()
			require.NoError(t, err)

			const extra = 2
			plain, err := ansifmt.Render(ansifmt.Options{ExtraContextLines: extra}, deadend.Classify, f.Source, deadEnds)
			require.NoError(t, err)
			colored, err := ansifmt.Render(ansifmt.Options{Color: true, ExtraContextLines: extra}, deadend.Classify, f.Source, deadEnds)
			require.NoError(t, err)
			html, err := htmlfmt.Render(htmlfmt.Options{ExtraContextLines: extra}, deadend.Classify, f.Source, deadEnds)
			require.NoError(t, err)
			md, err := mdfmt.Render(mdfmt.Options{ExtraContextLines: extra}, deadend.Classify, f.Source, deadEnds)
			require.NoError(t, err)

			return []string{plain, ansiMarkup.Replace(colored), html, md}
		},
	}
	corpus.Run(t)
}
