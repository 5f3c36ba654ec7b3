/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for rexaudit.
package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bennypowers.dev/rexaudit/compat"
	"bennypowers.dev/rexaudit/feature"
	"bennypowers.dev/rexaudit/internal/exitcode"
)

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check <pattern>...",
	Short: "Detect features of regex patterns and classify them per engine",
	Long: `Detect the PCRE features used by each pattern and report whether the
Java and Lucene regex engines can run it.`,
	Args: exitcode.Args(cobra.MinimumNArgs(1)),
	RunE: run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, json")
	Cmd.Flags().StringSlice("engine", nil, "Only classify for these engines (java, lucene)")
}

var (
	okColor  = color.New(color.FgGreen)
	badColor = color.New(color.FgRed)
)

// Result is the classification of one pattern.
type Result struct {
	Pattern  string           `json:"pattern"`
	Features []string         `json:"features"`
	Verdicts []compat.Verdict `json:"-"`
}

type verdictJSON struct {
	Incompatible bool     `json:"incompatible"`
	Features     []string `json:"features"`
}

// MarshalJSON keys verdicts by engine name.
func (r Result) MarshalJSON() ([]byte, error) {
	engines := make(map[string]verdictJSON, len(r.Verdicts))
	for _, v := range r.Verdicts {
		features := v.Features
		if features == nil {
			features = []string{}
		}
		engines[string(v.Engine)] = verdictJSON{Incompatible: v.Incompatible, Features: features}
	}
	return json.Marshal(struct {
		Pattern  string                 `json:"pattern"`
		Features []string               `json:"features"`
		Engines  map[string]verdictJSON `json:"engines"`
	}{r.Pattern, r.Features, engines})
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	names, _ := cmd.Flags().GetStringSlice("engine")

	engines, err := parseEngines(names)
	if err != nil {
		return exitcode.Usage(err)
	}

	results, err := Check(args, engines)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return outputJSON(cmd.OutOrStdout(), results)
	case "table":
		outputTable(cmd.OutOrStdout(), results)
		return nil
	default:
		return exitcode.Usage(fmt.Errorf("unknown format: %s", format))
	}
}

// parseEngines defaults to every engine.
func parseEngines(names []string) ([]compat.Engine, error) {
	if len(names) == 0 {
		return compat.Engines(), nil
	}
	engines := make([]compat.Engine, 0, len(names))
	for _, name := range names {
		e, err := compat.ParseEngine(name)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return engines, nil
}

// Check classifies every pattern for the given engines.
func Check(patterns []string, engines []compat.Engine) ([]Result, error) {
	results := make([]Result, 0, len(patterns))
	for _, p := range patterns {
		set := feature.Detect(p)
		r := Result{Pattern: p, Features: set.Names()}
		for _, e := range engines {
			v, err := compat.Classify(set, e)
			if err != nil {
				return nil, err
			}
			r.Verdicts = append(r.Verdicts, v)
		}
		results = append(results, r)
	}
	return results, nil
}

func outputTable(w io.Writer, results []Result) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, r.Pattern)
		features := "(none)"
		if len(r.Features) > 0 {
			features = strings.Join(r.Features, ",")
		}
		fmt.Fprintf(w, "  %-10s %s\n", "features:", features)
		for _, v := range r.Verdicts {
			fmt.Fprintf(w, "  %-10s ", string(v.Engine)+":")
			if v.Incompatible {
				badColor.Fprintf(w, "incompatible (%s)\n", strings.Join(v.Features, ","))
			} else {
				okColor.Fprintln(w, "ok")
			}
		}
	}
}

func outputJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
