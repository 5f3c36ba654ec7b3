/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package audit runs the extraction, detection, and classification pipeline
// over a stream of query lines.
package audit

import (
	"io"
	"strings"

	"bennypowers.dev/rexaudit/compat"
	"bennypowers.dev/rexaudit/feature"
	"bennypowers.dev/rexaudit/internal/lines"
	"bennypowers.dev/rexaudit/spl"
)

// Row is one classified pattern.
type Row struct {
	spl.Pattern
	// LineNumber is 1-based and counts non-blank lines only.
	LineNumber int
	Features   feature.Set
	// Verdicts holds one verdict per engine, in compat.Engines order.
	Verdicts []compat.Verdict
	// Line is the full query line the pattern came from.
	Line string
}

// Verdict returns the verdict for e, or a compatible verdict when e was not
// classified.
func (r Row) Verdict(e compat.Engine) compat.Verdict {
	for _, v := range r.Verdicts {
		if v.Engine == e {
			return v
		}
	}
	return compat.Verdict{Engine: e}
}

// Auditor classifies lines one at a time and keeps the running totals.
type Auditor struct {
	stats    *Stats
	lineNo   int
	repaired int
}

// New returns an Auditor with zeroed stats.
func New() *Auditor {
	return &Auditor{stats: NewStats()}
}

// Stats returns the totals accumulated so far.
func (a *Auditor) Stats() *Stats {
	return a.stats
}

// Repaired returns how many lines contained invalid UTF-8.
func (a *Auditor) Repaired() int {
	return a.repaired
}

// Line classifies every pattern in text. Blank lines are skipped and do not
// advance the line number.
func (a *Auditor) Line(text string) []Row {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	a.lineNo++

	patterns := spl.Extract(text)
	rows := make([]Row, 0, len(patterns))
	for _, p := range patterns {
		features := feature.Detect(p.Text)
		rows = append(rows, Row{
			Pattern:    p,
			LineNumber: a.lineNo,
			Features:   features,
			Verdicts:   compat.ClassifyAll(features),
			Line:       text,
		})
	}

	a.stats.addLine(rows)
	return rows
}

// Run reads r to the end and calls emit for each row in input order. Lines
// that are not valid UTF-8 have the offending bytes replaced with U+FFFD.
// An error from emit stops the run and is returned as is.
func (a *Auditor) Run(r io.Reader, emit func(Row) error) error {
	repaired, err := lines.Each(r, func(text string) error {
		for _, row := range a.Line(text) {
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
	a.repaired += repaired
	return err
}
