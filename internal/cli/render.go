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
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-deadend/deadend"
	"github.com/go-deadend/deadend/ansifmt"
	"github.com/go-deadend/deadend/htmlfmt"
	"github.com/go-deadend/deadend/internal/config"
	"github.com/go-deadend/deadend/internal/dump"
	"github.com/go-deadend/deadend/mdfmt"
)

func newRenderCmd(configPath *string) *cobra.Command {
	flagCfg := config.Default()
	var outDir string

	cmd := &cobra.Command{
		Use:   "render <dump>...",
		Short: "Render dead-end dumps as reports",
		Long: `Render reads YAML dead-end dumps and prints one report per dump, in
argument order. Arguments are file paths or globs such as
'dumps/**/*.yaml'.

With more than one dump, each stdout report is preceded by a '== path'
line. With --out, reports are written as files into the given directory
instead, named after their dump; dumps whose names would collide there
are an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *configPath, flagCfg)
			if err != nil {
				return err
			}
			return runRender(cmd, cfg, outDir, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&flagCfg.Format, "format", flagCfg.Format,
		"output format: ansi, plain, html or markdown")
	flags.IntVar(&flagCfg.Context, "context", flagCfg.Context,
		"source lines shown around each failing row")
	flags.StringVar(&flagCfg.Color, "color", flagCfg.Color,
		"color ansi output: auto, always or never")
	flags.IntVar(&flagCfg.Jobs, "jobs", flagCfg.Jobs,
		"max dumps rendered concurrently (0 means one per CPU)")
	flags.StringVar(&outDir, "out", "",
		"directory to write reports into instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, cfg config.Config, outDir string, patterns []string) error {
	paths, err := expandPatterns(patterns)
	if err != nil {
		return newExitError(ExitCodeRenderFailed, err)
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Reports land at their input index, so output order is stable no
	// matter which dump finishes first.
	reports := make([]string, len(paths))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range paths {
		group.Go(func() error {
			report, err := renderDump(cfg, path)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return newExitError(ExitCodeRenderFailed, err)
	}

	if outDir != "" {
		return writeReports(outDir, cfg.Format, paths, reports)
	}

	out := cmd.OutOrStdout()
	for i, report := range reports {
		if len(paths) > 1 {
			fmt.Fprintf(out, "== %s\n", paths[i])
		}
		fmt.Fprint(out, report)
		if len(paths) > 1 && i < len(reports)-1 {
			fmt.Fprintln(out)
		}
	}
	return nil
}

func renderDump(cfg config.Config, path string) (string, error) {
	file, err := dump.Load(path)
	if err != nil {
		return "", err
	}
	records, err := file.Records()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	report, err := renderRecords(cfg, file.Source, records)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("rendered dump", "path", path, "dead_ends", len(records))
	return report, nil
}

func renderRecords(cfg config.Config, source string, records []deadend.DeadEnd[deadend.Problem]) (string, error) {
	switch cfg.Format {
	case "ansi":
		opts := ansifmt.Options{Color: colorOn(cfg.Color), ExtraContextLines: cfg.Context}
		return ansifmt.Render(opts, deadend.Classify, source, records)
	case "plain":
		opts := ansifmt.Options{ExtraContextLines: cfg.Context}
		return ansifmt.Render(opts, deadend.Classify, source, records)
	case "html":
		opts := htmlfmt.Options{ExtraContextLines: cfg.Context}
		return htmlfmt.Render(opts, deadend.Classify, source, records)
	case "markdown":
		opts := mdfmt.Options{ExtraContextLines: cfg.Context}
		return mdfmt.Render(opts, deadend.Classify, source, records)
	}
	// Unreachable after Validate, kept for direct callers.
	return "", fmt.Errorf("unknown format %q", cfg.Format)
}

// colorOn resolves the auto mode through fatih/color's terminal
// detection.
func colorOn(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return !color.NoColor
}

// expandPatterns resolves globs in argument order, dropping duplicate
// matches. A pattern with no matches is an error, missing literal
// paths included.
func expandPatterns(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no dumps match %q", pattern)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	return paths, nil
}

// writeReports writes one report file per dump into outDir, named after
// the dump's basename. Dumps from different directories can share a
// basename, so targets are resolved up front and a clash is an error
// before anything is written.
func writeReports(outDir, format string, paths, reports []string) error {
	targets := make([]string, len(paths))
	owner := make(map[string]string, len(paths))
	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		target := filepath.Join(outDir, base+formatExt(format))
		if prev, ok := owner[target]; ok {
			return newExitError(ExitCodeRenderFailed,
				fmt.Errorf("reports for %s and %s would both be written to %s", prev, path, target))
		}
		owner[target] = path
		targets[i] = target
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return newExitError(ExitCodeRenderFailed, err)
	}
	for i, report := range reports {
		if err := os.WriteFile(targets[i], []byte(report), 0o644); err != nil {
			return newExitError(ExitCodeRenderFailed, err)
		}
		slog.Debug("wrote report", "path", targets[i])
	}
	return nil
}

func formatExt(format string) string {
	switch format {
	case "html":
		return ".html"
	case "markdown":
		return ".md"
	}
	return ".txt"
}
