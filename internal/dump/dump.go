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

// Package dump reads serialized dead-end dumps.
//
// A dump is a YAML document carrying the source text of a failed parse
// (inline, or by reference to a file next to the dump) and the dead ends
// the parser produced against it, with problems in the built-in
// vocabulary named by their [deadend.ProblemKind] string form:
//
//	source: |
//	  fruits =
//	    [ apple
//	dead_ends:
//	  - row: 2
//	    col: 10
//	    problem: {kind: expecting, text: "]"}
//	    context:
//	      - {row: 2, col: 3, label: list}
//
// JSON dumps decode too, being valid YAML.
package dump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-deadend/deadend"
)

// A File is one decoded dump.
type File struct {
	// Source is the source text the dead ends refer to. Mutually
	// exclusive with SourcePath.
	Source string `yaml:"source,omitempty"`

	// SourcePath locates the source text on disk, relative to the dump
	// file. [Load] resolves it into Source.
	SourcePath string `yaml:"source_path,omitempty"`

	// DeadEnds are the serialized failure records.
	DeadEnds []Entry `yaml:"dead_ends"`
}

// An Entry is one serialized dead end.
type Entry struct {
	Row     int          `yaml:"row"`
	Col     int          `yaml:"col"`
	Problem ProblemEntry `yaml:"problem"`
	Context []FrameEntry `yaml:"context,omitempty"`
}

// A ProblemEntry names a built-in problem by kind, plus its text for the
// kinds that carry one.
type ProblemEntry struct {
	Kind string `yaml:"kind"`
	Text string `yaml:"text,omitempty"`
}

// A FrameEntry is one serialized context-stack frame, innermost first in
// an [Entry].
type FrameEntry struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Label string `yaml:"label"`
}

// Decode reads one dump document from r. Unknown fields are an error, so
// schema typos surface instead of silently dropping dead ends.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding dump: %w", err)
	}
	if f.Source != "" && f.SourcePath != "" {
		return nil, errors.New("decoding dump: source and source_path are mutually exclusive")
	}
	return &f, nil
}

// Load reads the dump at path and resolves SourcePath, if any, relative
// to the dump's directory.
func Load(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.SourcePath != "" {
		text, err := os.ReadFile(filepath.Join(filepath.Dir(path), f.SourcePath))
		if err != nil {
			return nil, fmt.Errorf("%s: resolving source_path: %w", path, err)
		}
		f.Source = string(text)
		f.SourcePath = ""
	}
	return f, nil
}

// Records converts the serialized entries into renderer records.
func (f *File) Records() ([]deadend.DeadEnd[deadend.Problem], error) {
	deadEnds := make([]deadend.DeadEnd[deadend.Problem], len(f.DeadEnds))
	for i, e := range f.DeadEnds {
		kind, ok := deadend.ParseProblemKind(e.Problem.Kind)
		if !ok {
			return nil, fmt.Errorf("dead end %d: unknown problem kind %q", i, e.Problem.Kind)
		}

		var stack []deadend.Frame
		for _, fr := range e.Context {
			stack = append(stack, deadend.Frame{Row: fr.Row, Col: fr.Col, Label: fr.Label})
		}
		deadEnds[i] = deadend.NewInContext(e.Row, e.Col, deadend.Problem{Kind: kind, Text: e.Problem.Text}, stack)
	}
	return deadEnds, nil
}
