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

// Package golden runs file-based test corpora: table-driven tests whose
// table lives in the filesystem, with expected outputs stored in golden
// files next to each test case.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// A Corpus describes a test corpus.
//
// Each file under Root with the corpus Extension is one test case; its
// expected outputs live next to it, named by appending each
// [Output].Extension. A missing output file means that output is
// expected to be empty.
type Corpus struct {
	// Root of the corpus directory, relative to the file calling
	// [Corpus.Run].
	Root string

	// Refresh is an environment variable consulted for a refresh glob.
	// Cases matching the glob have their golden files rewritten from
	// the test's actual outputs instead of compared against them; a
	// refresh run never passes, so refreshed outputs cannot slip
	// through CI unreviewed.
	Refresh string

	// Extension (without a dot) of the files defining test cases.
	Extension string

	// Outputs the test produces for each case.
	Outputs []Output

	// Test runs one case and returns its outputs, corresponding
	// elementwise to Outputs.
	Test func(t *testing.T, path, text string) []string
}

// An Output is one golden output of a test case.
type Output struct {
	// Extension appended to the case's file name to locate the golden
	// file, e.g. "html" makes "case.yaml" look for "case.yaml.html".
	Extension string

	// Compare for this output; nil means [DefaultCompare].
	Compare Compare
}

// Compare compares an actual output with a golden one. It returns "" on
// a match and an error message otherwise.
type Compare func(got, want string) string

// Run discovers and runs the corpus as subtests of t.
func (c Corpus) Run(t *testing.T) {
	callerDir := callerDir()
	root := filepath.Join(callerDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, "."+c.Extension) {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error while walking %q: %v", root, err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing golden files because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range cases {
		name, _ := filepath.Rel(callerDir, path)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading case %q: %v", path, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: test returned %d outputs, corpus declares %d", len(results), len(c.Outputs))
			}

			refreshCase, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if refreshCase {
					c.write(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("golden: error while loading golden file %q: %v", path, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = DefaultCompare
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("golden: mismatch for %q:\n%s", path, msg)
				}
			}
		})
	}
}

// write replaces the golden file at path during a refresh run. Empty
// outputs delete the file instead, matching how comparison treats a
// missing file.
func (c Corpus) write(t *testing.T, path, content string) {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("golden: error while deleting golden file %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(content), 0o660); err != nil {
		t.Errorf("golden: error while writing golden file %q: %v", path, err)
	}
}

// DefaultCompare is byte-for-byte equality, reported as a colorized
// unified diff.
func DefaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
