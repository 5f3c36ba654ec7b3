/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package spl

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Kind identifies a regex-bearing SPL command.
type Kind string

const (
	// Rex is the field extraction command.
	Rex Kind = "rex"
	// Regex is the event filtering command.
	Regex Kind = "regex"
)

// Occurrence is one command keyword found in a line.
type Occurrence struct {
	Kind Kind
	// Start and End delimit the keyword itself.
	Start int
	End   int
	// Index is the 1-based position among all command keywords in the line.
	// Extraction numbers rex commands by it; regex commands are numbered
	// among regex keywords only.
	Index int
}

// keywordPattern matches rex or regex as a whole word. regexp2's \w covers
// Unicode letters, digits and connector punctuation.
var keywordPattern = regexp2.MustCompile(`(?<!\w)(?:regex|rex)(?!\w)`, regexp2.IgnoreCase)

// Tokenize returns every whole-word, case-insensitive rex or regex keyword
// in line, left to right.
func Tokenize(line string) []Occurrence {
	m, err := keywordPattern.FindStringMatch(line)
	if err != nil || m == nil {
		return nil
	}

	// regexp2 reports rune indices
	offsets := byteOffsets(line)

	var out []Occurrence
	for ; err == nil && m != nil; m, err = keywordPattern.FindNextMatch(m) {
		start, end := offsets[m.Index], offsets[m.Index+m.Length]
		out = append(out, Occurrence{
			Kind:  Kind(strings.ToLower(line[start:end])),
			Start: start,
			End:   end,
			Index: len(out) + 1,
		})
	}
	return out
}

// byteOffsets maps each rune index of s to its byte offset, plus a final
// entry for len(s). Invalid bytes count as one rune each, as in regexp2.
func byteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// CommandEnd returns the offset of the '|' that ends the command whose
// arguments start at from, or len(line) when there is none. A '|' nested in
// parentheses, such as regex ("a"|"b"), does not end the command; escaped
// parentheses are not counted. When the parentheses are still open at the
// end of the line, as with a quoted [(] or an unclosed group, the first '|'
// after from ends the command instead.
//
// Quotes are not tracked: a '|' inside a quoted pattern such as
// regex _raw="a|b" ends the command early.
func CommandEnd(line string, from int) int {
	depth := 0
	firstPipe := -1
	for i := from; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				return i
			}
			if firstPipe < 0 {
				firstPipe = i
			}
		}
	}
	if depth > 0 && firstPipe >= 0 {
		return firstPipe
	}
	return len(line)
}

// CommandText returns the trimmed text of a command, from its keyword up to
// the command separator.
func CommandText(line string, occ Occurrence) string {
	return strings.TrimSpace(line[occ.Start:CommandEnd(line, occ.End)])
}
