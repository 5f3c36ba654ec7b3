/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package spl

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Sed expression kinds for rex mode=sed.
const (
	SedReplace    = "replace"
	SedSubstitute = "substitute"
)

// RexOptions describes the arguments of a single rex command.
type RexOptions struct {
	// Field is the field= value with quotes removed, or empty for _raw.
	Field string
	// ModeSed is true for mode=sed.
	ModeSed bool
	// SedType is SedReplace for s/// and SedSubstitute for y///.
	SedType string
	// SedFlags holds the trailing flags of an s/// expression, one per char.
	SedFlags []string
	// MaxMatch is the max_match value, or -1 when absent.
	MaxMatch int
	// OffsetField is the offset_field value with quotes removed.
	OffsetField string
	// Literal is the sed expression or extraction pattern.
	Literal string
	// NamedGroups lists (?<name>...) then (?'name'...) capture names of an
	// extraction pattern.
	NamedGroups []string
}

var (
	rexFieldPattern       = regexp2.MustCompile(`\bfield\s*=\s*(\S+)`, regexp2.IgnoreCase)
	rexModeSedPattern     = regexp2.MustCompile(`\bmode\s*=\s*["']?sed\b`, regexp2.IgnoreCase)
	rexMaxMatchPattern    = regexp2.MustCompile(`\bmax_match\s*=\s*(\d+)`, regexp2.IgnoreCase)
	rexOffsetFieldPattern = regexp2.MustCompile(`\boffset_field\s*=\s*(\S+)`, regexp2.IgnoreCase)
	angleGroupPattern     = regexp2.MustCompile(`\(\?<([A-Za-z_]\w*)>`, regexp2.None)
	singleGroupPattern    = regexp2.MustCompile(`\(\?'([A-Za-z_]\w*)'`, regexp2.None)
)

// ParseRexOptions reads the options of a rex command as returned by
// CommandText.
func ParseRexOptions(command string) RexOptions {
	opts := RexOptions{
		Field:       unquote(firstGroup(rexFieldPattern, command)),
		MaxMatch:    -1,
		OffsetField: unquote(firstGroup(rexOffsetFieldPattern, command)),
		Literal:     firstLiteral(command),
	}

	if m, err := rexModeSedPattern.MatchString(command); err == nil && m {
		opts.ModeSed = true
	}

	if v := firstGroup(rexMaxMatchPattern, command); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxMatch = n
		}
	}

	if opts.ModeSed {
		opts.SedType, opts.SedFlags = parseSed(opts.Literal)
	} else if opts.Literal != "" {
		opts.NamedGroups = append(allGroups(angleGroupPattern, opts.Literal),
			allGroups(singleGroupPattern, opts.Literal)...)
	}

	return opts
}

// firstLiteral returns the first quoted literal that is not an option value
// such as field="name".
func firstLiteral(command string) string {
	for _, span := range FindQuoted(command) {
		before := strings.TrimRight(command[:span.Start], " \t")
		if strings.HasSuffix(before, "=") {
			continue
		}
		return span.Content
	}
	return ""
}

func parseSed(expr string) (string, []string) {
	switch {
	case strings.HasPrefix(expr, "s/"):
		var flags []string
		if parts := strings.Split(expr, "/"); len(parts) >= 4 {
			for _, r := range parts[len(parts)-1] {
				flags = append(flags, string(r))
			}
		}
		return SedReplace, flags
	case strings.HasPrefix(expr, "y/"):
		return SedSubstitute, nil
	}
	return "", nil
}

func allGroups(re *regexp2.Regexp, s string) []string {
	var names []string
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		names = append(names, m.GroupByNumber(1).String())
		m, err = re.FindNextMatch(m)
	}
	return names
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
