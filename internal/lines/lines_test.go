/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lines

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

func TestEach(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         []string
		wantRepaired int
	}{
		{"empty", "", nil, 0},
		{"single line no newline", "a", []string{"a"}, 0},
		{"trailing newline", "a\nb\n", []string{"a", "b"}, 0},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}, 0},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, 0},
		{"lone carriage return is not a line break", "a\rb\nc", []string{"a\rb", "c"}, 0},
		{"invalid utf8 replaced", "ok\nbad\xff\xfe\n", []string{"ok", "bad\ufffd\ufffd"}, 1},
		{"long line", strings.Repeat("x", 200000), []string{strings.Repeat("x", 200000)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			repaired, err := Each(strings.NewReader(tt.input), func(text string) error {
				got = append(got, text)
				return nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
			if repaired != tt.wantRepaired {
				t.Errorf("repaired = %d, want %d", repaired, tt.wantRepaired)
			}
		})
	}
}

func TestEach_ReadError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := Each(iotest.ErrReader(boom), func(string) error { return nil })
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

func TestEach_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	_, err := Each(strings.NewReader("a\nb\nc\n"), func(string) error {
		calls++
		return stop
	})
	if err != stop {
		t.Errorf("err = %v, want %v", err, stop)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
