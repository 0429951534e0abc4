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

package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/tidwall/btree"

	"github.com/go-deadend/deadend"
	"github.com/go-deadend/deadend/internal/config"
	"github.com/go-deadend/deadend/internal/dump"
	"github.com/go-deadend/deadend/internal/ext/slicesx"
)

func newSummaryCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <dump>...",
		Short: "List failing positions, one line per position",
		Long: `Summary prints one table row per failing position, with how many dead
ends stopped there and which problems they reported. Positions keep
the order they first appear in their dump.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No rendering flags here, but a broken config file still
			// fails loudly.
			if _, err := resolveConfig(cmd, *configPath, config.Default()); err != nil {
				return err
			}
			return runSummary(cmd, args)
		},
	}
	return cmd
}

type summaryRow struct {
	position string
	count    string
	problems string
}

func runSummary(cmd *cobra.Command, patterns []string) error {
	paths, err := expandPatterns(patterns)
	if err != nil {
		return newExitError(ExitCodeRenderFailed, err)
	}

	rows := []summaryRow{{position: "POSITION", count: "DEAD ENDS", problems: "PROBLEMS"}}
	for _, path := range paths {
		file, err := dump.Load(path)
		if err != nil {
			return newExitError(ExitCodeRenderFailed, err)
		}
		records, err := file.Records()
		if err != nil {
			return newExitError(ExitCodeRenderFailed, fmt.Errorf("%s: %w", path, err))
		}
		if len(records) == 0 {
			slog.Debug("dump has no dead ends", "path", path)
			continue
		}
		rows = append(rows, summarize(path, records)...)
	}

	var posWidth, countWidth int
	for _, row := range rows {
		posWidth = max(posWidth, uniseg.StringWidth(row.position))
		countWidth = max(countWidth, uniseg.StringWidth(row.count))
	}

	out := cmd.OutOrStdout()
	for _, row := range rows {
		fmt.Fprintf(out, "%s  %s  %s\n",
			pad(row.position, posWidth), pad(row.count, countWidth), row.problems)
	}
	return nil
}

// summarize folds records into one row per position, in first-appearance
// order. Problem texts are deduplicated and sorted.
func summarize(path string, records []deadend.DeadEnd[deadend.Problem]) []summaryRow {
	type position struct {
		row, col int
	}

	var rows []summaryRow
	for pos, group := range slicesx.GroupBy(records, func(d deadend.DeadEnd[deadend.Problem]) position {
		return position{d.Row, d.Col}
	}) {
		var texts btree.Set[string]
		for _, d := range group {
			texts.Insert(deadend.Classify(d.Problem).Text)
		}
		parts := make([]string, 0, texts.Len())
		texts.Scan(func(text string) bool {
			parts = append(parts, text)
			return true
		})

		rows = append(rows, summaryRow{
			position: fmt.Sprintf("%s:%d:%d", path, pos.row, pos.col),
			count:    strconv.Itoa(len(group)),
			problems: strings.Join(parts, ", "),
		})
	}
	return rows
}

// pad right-pads to the given display width, which uniseg measures in
// terminal cells rather than bytes or runes.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-uniseg.StringWidth(s))
}
