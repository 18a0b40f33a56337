// Package cmd implements the onestandard CLI using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onestandard <file>",
	Short: "onestandard — convert OneNote exports into Standard Notes packages",
	Long: `onestandard reads a notebook page exported from OneNote as HTML, extracts
every note, converts its body to Markdown and writes a Standard Notes import
file (package.json) with all notes tagged after the input file name.

Examples:
  onestandard Work.htm
  onestandard Work.htm --output_dir ./out --markdown --pdf

Environment:
  ONESTANDARD_CONFIG       optional YAML config file
  ONESTANDARD_LOG_LEVEL    debug, info, warn or error (default info)
  ONESTANDARD_LOG_FORMAT   text or json (default text)
  ONESTANDARD_NOTE_STYLE   style attribute marking a note container
  ONESTANDARD_OUTPUT_DIR   output directory (default: current directory)
  ONESTANDARD_OUTPUT_FILE  package file name (default package.json)`,
	Args:          cobra.ExactArgs(1),
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
