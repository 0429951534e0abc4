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

// Process exit codes.
const (
	ExitCodeOK            = 0
	ExitCodeRenderFailed  = 2
	ExitCodeConfigInvalid = 3
)

// ExitError carries the process exit code alongside the cause. main
// unwraps it to pick the code passed to os.Exit.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func newExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
