/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
)

func TestCode(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, OK},
		{"plain error", base, Failure},
		{"usage", Usage(base), UsageError},
		{"not found", NotFound(base), Failure},
		{"wrapped usage", fmt.Errorf("running: %w", Usage(base)), UsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	err := Usage(base)
	if !errors.Is(err, base) {
		t.Error("expected Usage error to wrap its cause")
	}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
	if Usage(nil) != nil || NotFound(nil) != nil {
		t.Error("expected nil in, nil out")
	}
}

func TestArgs(t *testing.T) {
	check := Args(cobra.ExactArgs(1))
	cmd := &cobra.Command{Use: "x"}

	if err := check(cmd, []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Code(check(cmd, nil)); got != UsageError {
		t.Errorf("Code() = %d, want %d", got, UsageError)
	}
}
