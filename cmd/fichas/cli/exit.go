// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. A command returning ExitError has already written
// its own output; main exits with the code silently.
//
// The tracking binary uses this for "not found": the lookup result is
// the output, the exit code is for scripts.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish a handled non-zero exit from an
// unexpected error.
func (e *ExitError) ExitCode() int {
	return e.Code
}
