/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package features provides the features command for rexaudit.
package features

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/rexaudit/compat"
	"bennypowers.dev/rexaudit/feature"
	"bennypowers.dev/rexaudit/internal/exitcode"
	"bennypowers.dev/rexaudit/report"
)

// Cmd is the features cobra command.
var Cmd = &cobra.Command{
	Use:   "features",
	Short: "List detected regex features and the engines that reject them",
	Args:  exitcode.Args(cobra.NoArgs),
	RunE:  run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, json")
}

// Entry is one catalog feature with the engines that do not support it.
type Entry struct {
	Name          string          `json:"name"`
	UnsupportedBy []compat.Engine `json:"unsupported_by"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	entries, err := List()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return outputJSON(cmd.OutOrStdout(), entries)
	case "table":
		outputTable(cmd.OutOrStdout(), entries)
		return nil
	default:
		return exitcode.Usage(fmt.Errorf("unknown format: %s", format))
	}
}

// List returns the catalog in detection order.
func List() ([]Entry, error) {
	unsupported := make(map[compat.Engine]feature.Set)
	for _, e := range compat.Engines() {
		names, err := compat.Unsupported(e)
		if err != nil {
			return nil, err
		}
		unsupported[e] = feature.NewSet(names...)
	}

	catalog := feature.Catalog()
	entries := make([]Entry, 0, len(catalog))
	for _, name := range catalog {
		entry := Entry{Name: name, UnsupportedBy: []compat.Engine{}}
		for _, e := range compat.Engines() {
			if unsupported[e].Has(name) {
				entry.UnsupportedBy = append(entry.UnsupportedBy, e)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func outputTable(w io.Writer, entries []Entry) {
	engines := compat.Engines()

	header := fmt.Sprintf("%-24s", "FEATURE")
	for _, e := range engines {
		header += fmt.Sprintf(" %-8s", report.EngineTitle(e))
	}
	fmt.Fprintln(w, strings.TrimRight(header, " "))

	for _, entry := range entries {
		row := fmt.Sprintf("%-24s", entry.Name)
		for _, e := range engines {
			mark := "yes"
			if slices.Contains(entry.UnsupportedBy, e) {
				mark = "no"
			}
			row += fmt.Sprintf(" %-8s", mark)
		}
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

func outputJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
