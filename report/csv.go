/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package report renders audit results as CSV rows, JSON totals, and a
// console summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"bennypowers.dev/rexaudit/audit"
	"bennypowers.dev/rexaudit/compat"
)

// CSVHeader is the column order of the per-pattern report.
var CSVHeader = []string{
	"line_number", "command", "cmd_index_on_line", "pattern_index_in_cmd", "field",
	"pattern", "features_detected",
	"java_incompatible", "java_incompat_features",
	"lucene_incompatible", "lucene_incompat_features",
	"line",
}

// CSVWriter streams rows to a CSV document.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header to w and returns a writer for the rows.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	return &CSVWriter{w: cw}, nil
}

// Write appends one row.
func (c *CSVWriter) Write(row audit.Row) error {
	java := row.Verdict(compat.Java)
	lucene := row.Verdict(compat.Lucene)
	return c.w.Write([]string{
		strconv.Itoa(row.LineNumber),
		string(row.Kind),
		strconv.Itoa(row.Command),
		strconv.Itoa(row.Index),
		row.Field,
		row.Text,
		strings.Join(row.Features.Names(), ","),
		formatBool(java.Incompatible),
		strings.Join(java.Features, ","),
		formatBool(lucene.Incompatible),
		strings.Join(lucene.Features, ","),
		row.Line,
	})
}

// Flush writes buffered rows and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// WriteStats writes the totals as indented JSON.
func WriteStats(w io.Writer, stats *audit.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
