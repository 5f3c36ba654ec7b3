/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package feature detects engine-specific regex constructs in pattern text.
//
// Detection is a surface scan of the raw pattern, not a parse. A construct
// that only looks like one of the catalog entries, for example "(?=" inside a
// character class, is still reported.
package feature

import (
	"sort"

	"github.com/dlclark/regexp2"
)

// Feature names, reported verbatim.
const (
	Lookahead            = "lookahead"
	Lookbehind           = "lookbehind"
	AtomicGroup          = "atomic_group"
	PossessiveQuantifier = "possessive_quantifier"
	BacktrackingControl  = "backtracking_control"
	BranchReset          = "branch_reset"
	Recursion            = "recursion"
	SubroutineNumber     = "subroutine_number"
	SubroutineName       = "subroutine_name"
	Conditional          = "conditional"
	Callout              = "callout"
	NamedBackrefK        = "named_backref_k"
	NamedCaptureAngle    = "named_capture_angle"
	NamedCaptureSingle   = "named_capture_single"
	BackrefNumber        = "backref_number"
	InlineFlags          = "inline_flags"
	ModeModifier         = "mode_modifier"
)

type detector struct {
	name string
	re   *regexp2.Regexp
}

func rule(name, expr string) detector {
	return detector{name: name, re: regexp2.MustCompile(expr, regexp2.None)}
}

// catalog is evaluated in order; every rule runs independently.
var catalog = []detector{
	rule(Lookahead, `\(\?=|\(\?!`),
	rule(Lookbehind, `\(\?<=|\(\?<!`),
	rule(AtomicGroup, `\(\?>`),
	rule(PossessiveQuantifier, `(?<!\\)(?:\+\+|\*\+|\?\+)`),
	rule(BacktrackingControl, `\(\*(?:PRUNE|SKIP|COMMIT|THEN|ACCEPT|FAIL)\)`),
	rule(BranchReset, `\(\?\|`),
	rule(Recursion, `\(\?R\)|\(\?0\)`),
	rule(SubroutineNumber, `\\g(?:\d+|\{\d+\})`),
	rule(SubroutineName, `\\g(?:['{][A-Za-z_][A-Za-z0-9_]*['}])|\(\?&[A-Za-z_][A-Za-z0-9_]*\)`),
	rule(Conditional, `\(\?\([^)]*\)`),
	rule(Callout, `\(\?C\d*\)`),
	rule(NamedBackrefK, `\\k<[^>]+>`),
	rule(NamedCaptureAngle, `\(\?<[_A-Za-z]\w*>`),
	rule(NamedCaptureSingle, `\(\?'[_A-Za-z]\w*'`),
	rule(BackrefNumber, `(?<!\\)\\[1-9]\d*`),
	rule(InlineFlags, `\(\?[imsUx-]+(?:-[imsUx]+)?\)`),
	rule(ModeModifier, `\(\*(?:UTF8|UTF|UCP|NO_START_OPT|BSR_[A-Z]+)\)`),
}

// Catalog returns every feature name in detection order.
func Catalog() []string {
	names := make([]string, len(catalog))
	for i, d := range catalog {
		names[i] = d.name
	}
	return names
}

// Known reports whether name is a catalog feature.
func Known(name string) bool {
	for _, d := range catalog {
		if d.name == name {
			return true
		}
	}
	return false
}

// Set is the set of features found in one pattern.
type Set map[string]struct{}

// NewSet builds a Set from names. Duplicates collapse.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members in catalog order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, d := range catalog {
		if s.Has(d.name) {
			names = append(names, d.name)
		}
	}
	return names
}

// Sorted returns the members in alphabetical order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Detect returns the features present anywhere in pattern.
func Detect(pattern string) Set {
	set := make(Set)
	for _, d := range catalog {
		if ok, err := d.re.MatchString(pattern); err == nil && ok {
			set[d.name] = struct{}{}
		}
	}
	return set
}
