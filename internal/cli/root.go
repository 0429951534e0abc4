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

// Package cli implements the deadend command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/go-deadend/deadend/internal/config"
	"github.com/go-deadend/deadend/internal/logging"
)

// NewRootCmd builds the deadend command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "deadend",
		Short: "Render parser dead ends as human-readable reports",
		Long: `deadend turns recorded parser dead ends into reports that show the
failing source line, a caret under the failing column, and what the
parser was expecting there.

Dumps are YAML files pairing a source text with its dead ends; see the
render command for the report formats.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Configure(verbose)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default "+config.DefaultPath+" if present)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	cmd.AddCommand(
		newRenderCmd(&configPath),
		newSummaryCmd(&configPath),
		newVersionCmd(),
	)

	return cmd
}

// resolveConfig layers flags over the config file over defaults. Only
// flags the user actually set override the file.
func resolveConfig(cmd *cobra.Command, configPath string, flagCfg config.Config) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, newExitError(ExitCodeConfigInvalid, err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = flagCfg.Format
	}
	if flags.Changed("context") {
		cfg.Context = flagCfg.Context
	}
	if flags.Changed("color") {
		cfg.Color = flagCfg.Color
	}
	if flags.Changed("jobs") {
		cfg.Jobs = flagCfg.Jobs
	}

	if err := cfg.Validate(); err != nil {
		return cfg, newExitError(ExitCodeConfigInvalid, err)
	}
	return cfg, nil
}
