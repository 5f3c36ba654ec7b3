/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package audit runs the portability audit behind the root command.
package audit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	auditlib "bennypowers.dev/rexaudit/audit"
	"bennypowers.dev/rexaudit/config"
	"bennypowers.dev/rexaudit/fs"
	"bennypowers.dev/rexaudit/internal/exitcode"
	"bennypowers.dev/rexaudit/internal/logger"
	"bennypowers.dev/rexaudit/report"
)

// Report file suffixes appended to the input's stem.
const (
	CSVSuffix  = ".portability_audit.csv"
	JSONSuffix = ".portability_audit.json"
)

// Options configures one audit run.
type Options struct {
	// Input is the queries file, one search per line.
	Input string
	// OutputDir receives the reports. Empty means the current directory.
	OutputDir string
	// MaxExamples caps the examples listed per engine.
	MaxExamples int
	// Truncate is the display width of example patterns.
	Truncate int
}

// Outputs are the report paths a run wrote.
type Outputs struct {
	CSV  string
	JSON string
}

// Run is the root command's RunE. Options come from viper, so flags,
// REXAUDIT_* variables and the config file all apply.
func Run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()

	cfg := config.LoadOrDefault(filesystem, ".")
	cfg.SetDefaults(viper.GetViper())

	opts := Options{
		Input:       args[0],
		OutputDir:   viper.GetString(config.KeyOutputDir),
		MaxExamples: viper.GetInt(config.KeyMaxExamples),
		Truncate:    viper.GetInt(config.KeyTruncate),
	}
	if opts.MaxExamples < 0 || opts.Truncate < 0 {
		return exitcode.Usage(errors.New("--max-examples and --truncate must not be negative"))
	}

	_, err := Audit(filesystem, cmd.OutOrStdout(), opts)
	return err
}

// Audit reads opts.Input, writes the CSV and JSON reports and prints the
// summary to out. The input is opened before any report is created, and
// the CSV only replaces an earlier report once the whole input was read.
func Audit(filesystem fs.FileSystem, out io.Writer, opts Options) (*Outputs, error) {
	input, err := expandHome(opts.Input)
	if err != nil {
		return nil, exitcode.NotFound(err)
	}

	info, err := filesystem.Stat(input)
	if err != nil {
		return nil, exitcode.NotFound(fmt.Errorf("input file not found: %s", input))
	}
	if info.IsDir() {
		return nil, exitcode.NotFound(fmt.Errorf("input is a directory: %s", input))
	}

	f, err := filesystem.Open(input)
	if err != nil {
		return nil, exitcode.NotFound(fmt.Errorf("error opening input: %w", err))
	}
	defer f.Close()

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	} else if err := filesystem.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	stem := Stem(input)
	outputs := &Outputs{
		CSV:  filepath.Join(outDir, stem+CSVSuffix),
		JSON: filepath.Join(outDir, stem+JSONSuffix),
	}

	summary := report.NewSummary(input)
	summary.MaxExamples = opts.MaxExamples
	summary.Truncate = opts.Truncate

	logger.Debug("auditing %s", input)
	auditor := auditlib.New()
	if err := writeCSV(filesystem, outputs.CSV, func(w *report.CSVWriter) error {
		return auditor.Run(f, func(row auditlib.Row) error {
			summary.Add(row)
			return w.Write(row)
		})
	}); err != nil {
		return nil, err
	}
	logger.Debug("wrote %s", outputs.CSV)

	var buf bytes.Buffer
	if err := report.WriteStats(&buf, auditor.Stats()); err != nil {
		return nil, err
	}
	if err := filesystem.WriteFile(outputs.JSON, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", outputs.JSON, err)
	}
	logger.Debug("wrote %s", outputs.JSON)

	if n := auditor.Repaired(); n > 0 {
		logger.Warn("%s: replaced invalid UTF-8 in %d line(s)", input, n)
	}

	summary.Print(out, auditor.Stats())

	where := outDir
	if opts.OutputDir == "" {
		where = "current working directory"
	}
	fmt.Fprintf(out, "\nReports (written to %s):\n", where)
	fmt.Fprintf(out, "  CSV : %s\n", filepath.Base(outputs.CSV))
	fmt.Fprintf(out, "  JSON: %s\n", filepath.Base(outputs.JSON))

	return outputs, nil
}

// writeCSV streams rows into a temporary file next to dest and renames it
// into place after fill succeeds. On failure the temporary file is removed
// and dest is left untouched.
func writeCSV(filesystem fs.FileSystem, dest string, fill func(*report.CSVWriter) error) (err error) {
	tmp := dest + ".tmp"
	w, err := filesystem.Create(tmp)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", dest, err)
	}
	defer func() {
		if err != nil {
			_ = filesystem.Remove(tmp)
		}
	}()

	csvw, err := report.NewCSVWriter(w)
	if err != nil {
		w.Close()
		return err
	}
	if err := fill(csvw); err != nil {
		w.Close()
		return err
	}
	if err := csvw.Flush(); err != nil {
		w.Close()
		return fmt.Errorf("error writing %s: %w", dest, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", dest, err)
	}
	if err := filesystem.Rename(tmp, dest); err != nil {
		return fmt.Errorf("error writing %s: %w", dest, err)
	}
	return nil
}

// Stem returns the file name of p without its last extension. Dot files
// keep their whole name.
func Stem(p string) string {
	base := filepath.Base(p)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error expanding %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
