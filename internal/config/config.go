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

// Package config holds the CLI configuration, loaded from an optional
// .deadend.toml file and overridden by command-line flags.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file looked up in the working directory when
// --config is not given.
const DefaultPath = ".deadend.toml"

// Formats lists the accepted values for Config.Format.
var Formats = []string{"ansi", "plain", "html", "markdown"}

// ColorModes lists the accepted values for Config.Color.
var ColorModes = []string{"auto", "always", "never"}

// Config is the rendering configuration shared by the CLI commands.
type Config struct {
	// Format selects the report flavor: one of Formats.
	Format string `toml:"format"`
	// Context is the number of source lines shown around a failing row.
	Context int `toml:"context"`
	// Color controls ANSI styling for the ansi format: one of ColorModes.
	Color string `toml:"color"`
	// Jobs caps how many dumps render concurrently. Zero means one per
	// CPU, as reported by runtime.GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

// Default returns the configuration used when neither a file nor flags
// say otherwise.
func Default() Config {
	return Config{
		Format:  "ansi",
		Context: 2,
		Color:   "auto",
		Jobs:    0,
	}
}

// Load reads the config file at path on top of Default. An empty path
// means DefaultPath, and then a missing file is not an error; a path
// given explicitly must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("loading config %s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, nil
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, Formats)
	}
	if c.Context < 0 {
		return fmt.Errorf("invalid context %d: must not be negative", c.Context)
	}
	if !slices.Contains(ColorModes, c.Color) {
		return fmt.Errorf("invalid color mode %q: must be one of %v", c.Color, ColorModes)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d: must not be negative", c.Jobs)
	}
	return nil
}
