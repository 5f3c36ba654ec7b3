/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lines reads newline-delimited text with best-effort UTF-8 repair.
package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Each calls fn for every line of r without its line terminator ("\n" or
// "\r\n"). Lines are not length limited. A line that is not valid UTF-8 has
// each invalid byte replaced with U+FFFD before fn sees it; repaired reports
// how many lines needed this.
//
// An error from fn stops reading and is returned unwrapped.
func Each(r io.Reader, fn func(text string) error) (repaired int, err error) {
	br := bufio.NewReader(r)
	decoder := unicode.UTF8.NewDecoder()

	for {
		text, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return repaired, fmt.Errorf("error reading input: %w", readErr)
		}
		if text == "" && readErr != nil {
			return repaired, nil
		}

		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")

		if !utf8.ValidString(text) {
			fixed, err := decoder.String(text)
			if err != nil {
				fixed = strings.ToValidUTF8(text, string(utf8.RuneError))
			}
			text = fixed
			repaired++
		}

		if err := fn(text); err != nil {
			return repaired, err
		}

		if readErr != nil {
			return repaired, nil
		}
	}
}
