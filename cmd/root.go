/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for rexaudit.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/rexaudit/cmd/audit"
	"bennypowers.dev/rexaudit/cmd/check"
	"bennypowers.dev/rexaudit/cmd/features"
	"bennypowers.dev/rexaudit/cmd/usage"
	"bennypowers.dev/rexaudit/cmd/version"
	"bennypowers.dev/rexaudit/config"
	"bennypowers.dev/rexaudit/internal/exitcode"
	"bennypowers.dev/rexaudit/internal/logger"
	"bennypowers.dev/rexaudit/report"
)

var rootCmd = &cobra.Command{
	Use:   "rexaudit <queries-file>",
	Short: "Audit SPL rex and regex patterns for Java and Lucene portability",
	Long: `rexaudit reads a file of Splunk searches, one per line, extracts the
patterns of every rex and regex command and reports which ones use regex
features that the Java or Lucene engines cannot run.

Lines end at \n or \r\n; a lone \r (old Mac line endings) does not split
lines, so convert such files first.

Reports are written as <stem>.portability_audit.csv and
<stem>.portability_audit.json, followed by a summary on stdout.`,
	Args:          exitcode.Args(cobra.ExactArgs(1)),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			logger.SetOutput(io.Discard)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetVerbose(true)
		}
	},
	RunE: audit.Run,
}

// Execute runs the root command. Errors are printed to stderr, followed by
// the usage text for usage errors; the caller maps the error to an exit
// code with exitcode.Code.
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if exitcode.Code(err) == exitcode.UsageError {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Silence warnings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")

	rootCmd.Flags().StringP(config.KeyOutputDir, "o", "", "Directory for the reports (default: current directory)")
	rootCmd.Flags().Int(config.KeyMaxExamples, report.DefaultMaxExamples, "Examples shown per engine in the summary")
	rootCmd.Flags().Int(config.KeyTruncate, report.DefaultTruncate, "Display width of example patterns (0 disables)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcode.Usage(err)
	})

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, key := range []string{config.KeyOutputDir, config.KeyMaxExamples, config.KeyTruncate} {
		_ = viper.BindPFlag(key, rootCmd.Flags().Lookup(key))
	}

	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(features.Cmd)
	rootCmd.AddCommand(usage.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
