/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package exitcode attaches process exit codes to errors.
package exitcode

import (
	"errors"

	"github.com/spf13/cobra"
)

const (
	// OK is returned when reports were written.
	OK = 0
	// Failure is returned when the input is missing or cannot be read.
	Failure = 1
	// UsageError is returned for a wrong argument count or a bad flag.
	UsageError = 2
)

// Error is an error carrying the exit code the process should end with.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Usage marks err as a command line usage error.
func Usage(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: UsageError, Err: err}
}

// NotFound marks err as an input that could not be found or read.
func NotFound(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: Failure, Err: err}
}

// Code returns the exit code for err. Errors without a code map to Failure.
func Code(err error) int {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Failure
}

// Args marks the errors of a cobra positional argument check as usage
// errors.
func Args(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return Usage(check(cmd, args))
	}
}
