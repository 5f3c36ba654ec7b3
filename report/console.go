/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/rexaudit/audit"
	"bennypowers.dev/rexaudit/compat"
	"bennypowers.dev/rexaudit/spl"
)

// Defaults for the console summary.
const (
	DefaultMaxExamples = 8
	DefaultTruncate    = 160
)

var (
	titleColor   = color.New(color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	badColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
)

// Summary collects example rows while a run streams and prints the console
// report at the end.
type Summary struct {
	// Input is the path shown in the header.
	Input string
	// MaxExamples caps the examples listed per engine.
	MaxExamples int
	// Truncate is the display width patterns are cut to.
	Truncate int

	examples map[compat.Engine][]audit.Row
}

// NewSummary returns a Summary for input using the default limits.
func NewSummary(input string) *Summary {
	return &Summary{
		Input:       input,
		MaxExamples: DefaultMaxExamples,
		Truncate:    DefaultTruncate,
		examples:    make(map[compat.Engine][]audit.Row),
	}
}

// Add keeps row as an example for every engine it is incompatible with,
// until that engine has MaxExamples rows.
func (s *Summary) Add(row audit.Row) {
	for _, v := range row.Verdicts {
		if v.Incompatible && len(s.examples[v.Engine]) < s.MaxExamples {
			s.examples[v.Engine] = append(s.examples[v.Engine], row)
		}
	}
}

// Print writes the summary for stats to w.
func (s *Summary) Print(w io.Writer, stats *audit.Stats) {
	titleColor.Fprintln(w, "=== SPL Regex Portability Audit ===")
	fmt.Fprintf(w, "Input file: %s\n", s.Input)
	fmt.Fprintf(w, "Total non-empty lines: %d\n", stats.Lines)
	fmt.Fprintf(w, "rex commands found: %d\n", stats.Commands[spl.Rex])
	fmt.Fprintf(w, "regex commands found: %d\n", stats.Commands[spl.Regex])
	fmt.Fprintf(w, "Total patterns examined: %d\n", stats.Patterns)
	for _, e := range compat.Engines() {
		fmt.Fprintf(w, "%s-incompatible patterns: %d\n", EngineTitle(e), stats.Incompatible[e])
	}

	for _, e := range compat.Engines() {
		fmt.Fprintln(w)
		headingColor.Fprintf(w, "%s incompatibility by feature:\n", EngineTitle(e))
		counts := SortedCounts(stats.FeatureCounts[e])
		if len(counts) == 0 {
			dimColor.Fprintln(w, "  (none)")
			continue
		}
		for _, c := range counts {
			fmt.Fprintf(w, "  - %-22s %d\n", c.Name, c.Count)
		}
	}

	for _, e := range compat.Engines() {
		fmt.Fprintln(w)
		headingColor.Fprintf(w, "Examples: %s-incompatible patterns (up to %d)\n", EngineTitle(e), s.MaxExamples)
		rows := s.examples[e]
		if len(rows) == 0 {
			dimColor.Fprintln(w, "  (none)")
			continue
		}
		for _, row := range rows {
			field := ""
			if row.Field != "" {
				field = " field=" + row.Field
			}
			fmt.Fprintf(w, "  line %d [%s] (cmd #%d, pat #%d)%s -> %s\n",
				row.LineNumber, row.Kind, row.Command, row.Index, field, Truncate(row.Text, s.Truncate))
			fmt.Fprint(w, "    features: ")
			badColor.Fprintln(w, strings.Join(row.Verdict(e).Features, ","))
		}
	}
}

// Count is a feature name with its occurrence count.
type Count struct {
	Name  string
	Count int
}

// SortedCounts orders counts by count descending, then name.
func SortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// EngineTitle returns the display name of e, e.g. "Java".
func EngineTitle(e compat.Engine) string {
	return cases.Title(language.English).String(string(e))
}

// Truncate cuts s to width display cells, ending with an ellipsis when cut.
// A width of zero or less disables truncation.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
