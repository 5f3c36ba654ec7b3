/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package usage gathers statistics on how rex and regex commands are
// written: which fields they target and which rex options they use.
package usage

import (
	"io"
	"strconv"
	"strings"

	"bennypowers.dev/rexaudit/feature"
	"bennypowers.dev/rexaudit/internal/lines"
	"bennypowers.dev/rexaudit/spl"
)

// RawField is the field a command applies to when none is given.
const RawField = "_raw"

// Pattern complexity buckets.
const (
	Simple   = "simple"
	Moderate = "moderate"
	Complex  = "complex"
)

// FieldUsage counts the fields targeted by one command kind.
type FieldUsage struct {
	Total int `json:"total"`
	// Implicit counts commands without a field, which apply to _raw.
	Implicit int `json:"without_field"`
	// ExplicitRaw counts commands naming _raw themselves.
	ExplicitRaw int `json:"with_field_raw"`
	// Other counts commands naming any other field.
	Other  int            `json:"with_other_field"`
	Fields map[string]int `json:"field_names"`
}

func (f *FieldUsage) add(field string) {
	f.Total++
	switch field {
	case "":
		f.Implicit++
		field = RawField
	case RawField:
		f.ExplicitRaw++
	default:
		f.Other++
	}
	f.Fields[field]++
}

// RexOptionUsage counts rex option usage.
type RexOptionUsage struct {
	Extraction    int            `json:"extraction_patterns"`
	ModeSed       int            `json:"mode_sed"`
	SedReplace    int            `json:"sed_replace"`
	SedSubstitute int            `json:"sed_substitute"`
	SedFlags      map[string]int `json:"sed_flags"`
	MaxMatch      map[string]int `json:"max_match"`
	OffsetField   int            `json:"offset_field"`
	NamedGroups   map[string]int `json:"named_groups"`
	Complexity    map[string]int `json:"pattern_complexity"`
}

// Stats is the result of a usage analysis.
type Stats struct {
	Lines             int            `json:"total_lines"`
	LinesWithCommands int            `json:"lines_with_commands"`
	Rex               FieldUsage     `json:"rex"`
	Regex             FieldUsage     `json:"regex"`
	RexOptions        RexOptionUsage `json:"rex_options"`
}

// Analyzer accumulates Stats over any number of inputs.
type Analyzer struct {
	stats Stats
}

// New returns an empty Analyzer.
func New() *Analyzer {
	return &Analyzer{stats: Stats{
		Rex:   FieldUsage{Fields: make(map[string]int)},
		Regex: FieldUsage{Fields: make(map[string]int)},
		RexOptions: RexOptionUsage{
			SedFlags:    make(map[string]int),
			MaxMatch:    make(map[string]int),
			NamedGroups: make(map[string]int),
			Complexity:  map[string]int{Simple: 0, Moderate: 0, Complex: 0},
		},
	}}
}

// Stats returns the totals so far.
func (a *Analyzer) Stats() *Stats {
	return &a.stats
}

// Run analyzes every line of r and returns how many lines needed UTF-8
// repair.
func (a *Analyzer) Run(r io.Reader) (int, error) {
	return lines.Each(r, func(text string) error {
		a.Line(text)
		return nil
	})
}

// Line analyzes one line. Blank lines are ignored.
func (a *Analyzer) Line(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	a.stats.Lines++

	occs := spl.Tokenize(text)
	if len(occs) > 0 {
		a.stats.LinesWithCommands++
	}

	for _, occ := range occs {
		switch occ.Kind {
		case spl.Rex:
			a.addRex(spl.ParseRexOptions(spl.CommandText(text, occ)))
		case spl.Regex:
			a.stats.Regex.add(spl.RegexField(text[occ.End:spl.CommandEnd(text, occ.End)]))
		}
	}
}

func (a *Analyzer) addRex(opts spl.RexOptions) {
	a.stats.Rex.add(opts.Field)

	o := &a.stats.RexOptions
	if opts.MaxMatch >= 0 {
		o.MaxMatch[strconv.Itoa(opts.MaxMatch)]++
	}
	if opts.OffsetField != "" {
		o.OffsetField++
	}

	if opts.ModeSed {
		o.ModeSed++
		switch opts.SedType {
		case spl.SedReplace:
			o.SedReplace++
		case spl.SedSubstitute:
			o.SedSubstitute++
		}
		for _, f := range opts.SedFlags {
			o.SedFlags[f]++
		}
		return
	}

	o.Extraction++
	for _, g := range opts.NamedGroups {
		o.NamedGroups[g]++
	}
	o.Complexity[Complexity(opts)]++
}

// Complexity buckets an extraction pattern: four or more named groups or any
// lookaround or numbered backreference is complex, two or three named groups
// is moderate, anything else is simple.
func Complexity(opts spl.RexOptions) string {
	if opts.Literal == "" {
		return Simple
	}
	features := feature.Detect(opts.Literal)
	switch {
	case len(opts.NamedGroups) >= 4,
		features.Has(feature.Lookahead),
		features.Has(feature.Lookbehind),
		features.Has(feature.BackrefNumber):
		return Complex
	case len(opts.NamedGroups) >= 2:
		return Moderate
	}
	return Simple
}
