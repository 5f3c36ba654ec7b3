/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package usage provides the usage command for rexaudit.
package usage

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/rexaudit/config"
	"bennypowers.dev/rexaudit/fs"
	"bennypowers.dev/rexaudit/internal/exitcode"
	"bennypowers.dev/rexaudit/internal/logger"
	"bennypowers.dev/rexaudit/report"
	usagelib "bennypowers.dev/rexaudit/usage"
)

// topFields caps the field names listed per command kind.
const topFields = 10

// Cmd is the usage cobra command.
var Cmd = &cobra.Command{
	Use:   "usage [files...]",
	Short: "Report which fields and rex options queries use",
	Long: `Report field usage for rex and regex commands, and rex option usage
(field=, mode=sed, max_match, offset_field, named groups).

With no files, the files globs from .config/rexaudit.{yaml,yml,json} are read.`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, json")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return exitcode.Usage(fmt.Errorf("unknown format: %s", format))
	}

	filesystem := fs.NewOSFileSystem()

	files := args
	if len(files) == 0 {
		cfg := config.LoadOrDefault(filesystem, ".")
		expanded, err := cfg.ExpandFiles(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		files = expanded
	}
	if len(files) == 0 {
		return exitcode.Usage(fmt.Errorf("no files specified and no files found in config"))
	}

	stats, err := Analyze(filesystem, files)
	if err != nil {
		return err
	}

	if format == "json" {
		return outputJSON(cmd.OutOrStdout(), stats)
	}
	outputTable(cmd.OutOrStdout(), stats)
	return nil
}

// Analyze folds every file into one set of statistics. A file that cannot
// be opened stops the analysis.
func Analyze(filesystem fs.FileSystem, files []string) (*usagelib.Stats, error) {
	analyzer := usagelib.New()
	for _, file := range files {
		if err := analyzeFile(filesystem, analyzer, file); err != nil {
			return nil, err
		}
	}
	return analyzer.Stats(), nil
}

func analyzeFile(filesystem fs.FileSystem, analyzer *usagelib.Analyzer, file string) error {
	f, err := filesystem.Open(file)
	if err != nil {
		return exitcode.NotFound(fmt.Errorf("error opening %s: %w", file, err))
	}
	defer f.Close()

	logger.Debug("analyzing %s", file)
	repaired, err := analyzer.Run(f)
	if err != nil {
		return exitcode.NotFound(fmt.Errorf("%s: %w", file, err))
	}
	if repaired > 0 {
		logger.Warn("%s: replaced invalid UTF-8 in %d line(s)", file, repaired)
	}
	return nil
}

func outputTable(w io.Writer, stats *usagelib.Stats) {
	fmt.Fprintf(w, "Total lines analyzed: %d\n", stats.Lines)
	fmt.Fprintf(w, "Lines containing rex/regex commands: %d\n", stats.LinesWithCommands)

	printFields(w, "rex", stats.Rex)
	printFields(w, "regex", stats.Regex)

	o := stats.RexOptions
	total := stats.Rex.Total
	fmt.Fprintln(w, "\nrex options:")
	fmt.Fprintf(w, "  field extraction: %d%s\n", o.Extraction, percent(o.Extraction, total))
	fmt.Fprintf(w, "  mode=sed: %d%s (replace %d, substitute %d)\n",
		o.ModeSed, percent(o.ModeSed, total), o.SedReplace, o.SedSubstitute)
	fmt.Fprintf(w, "  sed flags: %s\n", joinCounts(o.SedFlags))
	fmt.Fprintf(w, "  max_match: %s\n", joinCounts(o.MaxMatch))
	fmt.Fprintf(w, "  offset_field: %d\n", o.OffsetField)
	fmt.Fprintf(w, "  named groups: %d distinct\n", len(o.NamedGroups))
	for _, c := range top(o.NamedGroups) {
		fmt.Fprintf(w, "    %-30s %8d\n", c.Name, c.Count)
	}
	fmt.Fprintf(w, "  complexity: %s %d, %s %d, %s %d\n",
		usagelib.Simple, o.Complexity[usagelib.Simple],
		usagelib.Moderate, o.Complexity[usagelib.Moderate],
		usagelib.Complex, o.Complexity[usagelib.Complex])
}

func printFields(w io.Writer, kind string, f usagelib.FieldUsage) {
	fmt.Fprintf(w, "\n%s commands: %d\n", kind, f.Total)
	fmt.Fprintf(w, "  without field (implicit _raw): %d%s\n", f.Implicit, percent(f.Implicit, f.Total))
	fmt.Fprintf(w, "  with field=_raw (explicit): %d%s\n", f.ExplicitRaw, percent(f.ExplicitRaw, f.Total))
	fmt.Fprintf(w, "  with other fields: %d%s\n", f.Other, percent(f.Other, f.Total))
	if f.Total == 0 {
		return
	}
	fmt.Fprintf(w, "  top field names:\n")
	for _, c := range top(f.Fields) {
		fmt.Fprintf(w, "    %-30s %8d (%5.1f%%)\n", c.Name, c.Count, float64(c.Count)*100/float64(f.Total))
	}
}

func top(m map[string]int) []report.Count {
	counts := report.SortedCounts(m)
	if len(counts) > topFields {
		counts = counts[:topFields]
	}
	return counts
}

func percent(n, total int) string {
	if total == 0 {
		return ""
	}
	return fmt.Sprintf(" (%.1f%%)", float64(n)*100/float64(total))
}

// joinCounts renders counts as key=n pairs in key order.
func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ", ")
}

func outputJSON(w io.Writer, stats *usagelib.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
