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

// Pattern is a regex literal extracted from a command.
type Pattern struct {
	Kind Kind
	// Command is the 1-based index of the command in the line: among all
	// keywords for rex, among regex keywords for regex.
	Command int
	// Index is the 1-based position of the literal within its command.
	Index int
	// Field is the field the pattern applies to, or empty when unknown.
	// Only regex commands resolve it.
	Field string
	Text  string
}

var (
	// fieldAssignPattern matches field=<name> anywhere in a regex body.
	fieldAssignPattern = regexp2.MustCompile(`\bfield\s*=\s*([^\s=|]+)`, regexp2.IgnoreCase)
	// leadingAssignPattern matches the <name>= form, e.g. regex _raw="...".
	leadingAssignPattern = regexp2.MustCompile(`(?:^|\s)([\w.\-]+)\s*=`, regexp2.None)
)

// Extract returns the patterns of every rex command in line followed by the
// patterns of every regex command.
func Extract(line string) []Pattern {
	occs := Tokenize(line)
	out := extractRex(line, occs)
	return append(out, extractRegex(line, occs)...)
}

// extractRex takes the first quoted literal after each rex keyword. Option
// tokens before it (field=, mode=, max_match=) are skipped without parsing.
func extractRex(line string, occs []Occurrence) []Pattern {
	var out []Pattern
	for _, occ := range occs {
		if occ.Kind != Rex {
			continue
		}
		n := strings.IndexAny(line[occ.End:], `"'|`)
		if n < 0 {
			continue
		}
		i := occ.End + n
		if line[i] == '|' {
			continue
		}
		span, ok := ScanQuoted(line, i)
		if !ok {
			continue
		}
		out = append(out, Pattern{
			Kind:    Rex,
			Command: occ.Index,
			Index:   1,
			Text:    span.Content,
		})
	}
	return out
}

// extractRegex takes every quoted literal in each regex command body.
// Regex commands are numbered among regex keywords only.
func extractRegex(line string, occs []Occurrence) []Pattern {
	var out []Pattern
	command := 0
	for _, occ := range occs {
		if occ.Kind != Regex {
			continue
		}
		command++
		body := line[occ.End:CommandEnd(line, occ.End)]
		field := RegexField(body)
		for i, span := range FindQuoted(body) {
			out = append(out, Pattern{
				Kind:    Regex,
				Command: command,
				Index:   i + 1,
				Field:   field,
				Text:    span.Content,
			})
		}
	}
	return out
}

// RegexField resolves the field a regex command body filters on.
// field=<name> wins over a leading <name>=; the result is empty when neither
// is present.
func RegexField(body string) string {
	if m := firstGroup(fieldAssignPattern, body); m != "" {
		return m
	}
	if m := firstGroup(leadingAssignPattern, body); m != "" && !strings.EqualFold(m, "field") {
		return m
	}
	return ""
}

func firstGroup(re *regexp2.Regexp, s string) string {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}
	return m.GroupByNumber(1).String()
}
