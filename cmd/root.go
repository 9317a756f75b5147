// Package cmd implements the command-line interface for s4.
// It uses the Cobra library to handle commands, flags, and execution.
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// Version information (passed from main)
var (
	version string
	commit  string
	date    string
)

// Flag variables for command-line options.
// These are package-level variables as required by Cobra's flag binding.
var (
	// Time filtering flags
	afterFlag  string // --after: only print syslines at or after this datetime
	beforeFlag string // --before: only print syslines at or before this datetime
	lastFlag   string // --last: shorthand for --after=(now - duration) --before=now

	// Reader tuning flags
	blockszFlag       uint64 // --blocksz: block size in bytes
	tzFlag            string // --tz: default timezone offset for datetimes without one
	yearHintFlag      int    // --year-hint: year to assume for year-less datetime formats
	noLineCacheFlag   bool   // --no-line-cache: disable the LineReader's find-line cache
	noSyslineCacheFlag bool  // --no-sysline-cache: disable the SyslineReader's pattern warmup
	noHighlightFlag   bool   // --no-highlight: never ANSI-highlight the matched datetime
	namesFlag         bool   // --names: always prefix output with the source file name
	configFlag        string // --config: path to a YAML config file

	debugFlag bool // --debug: enable verbose diagnostic tracing
)

// rootCmd is the main command for the s4 CLI.
var rootCmd = &cobra.Command{
	Use:   "s4 [files or dirs]",
	Short: "Search and merge timestamped log files",
	Long: `s4 reads one or more log files (optionally gzip- or xz-compressed,
or members of a tar archive), finds each line's datetime, and streams
their syslines back out merged in chronological order.

Specify log files, directories, or tar archives as arguments, and use
--after/--before/--last to narrow the time range.`,
	Run: executeRun,
}

// Execute runs the root command.
// This is called by main.go to start the CLI application.
func Execute(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// init initializes all command-line flags.
func init() {
	rootCmd.PersistentFlags().StringVarP(&afterFlag, "after", "a", "",
		"Only print syslines at or after this datetime (format: YYYY-MM-DD HH:MM:SS)")
	rootCmd.PersistentFlags().StringVarP(&beforeFlag, "before", "b", "",
		"Only print syslines at or before this datetime (format: YYYY-MM-DD HH:MM:SS)")
	rootCmd.PersistentFlags().StringVarP(&lastFlag, "last", "L", "",
		"Only print syslines from the last N duration (e.g. 1h, 30m, 24h)")

	rootCmd.PersistentFlags().Uint64Var(&blockszFlag, "blocksz", 0,
		"Block size in bytes used to read each file (default: from config, else 65536)")
	rootCmd.PersistentFlags().StringVar(&tzFlag, "tz", "",
		"Default timezone offset (e.g. +00:00) applied to datetimes that carry none")
	rootCmd.PersistentFlags().IntVar(&yearHintFlag, "year-hint", 0,
		"Year to assume for datetime formats that carry no year (default: current year)")
	rootCmd.PersistentFlags().BoolVar(&noLineCacheFlag, "no-line-cache", false,
		"Disable the line-lookup cache (useful for deterministic benchmarking)")
	rootCmd.PersistentFlags().BoolVar(&noSyslineCacheFlag, "no-sysline-cache", false,
		"Disable sysline pattern-frequency warmup (always try every datetime format)")
	rootCmd.PersistentFlags().BoolVar(&noHighlightFlag, "no-highlight", false,
		"Never ANSI-highlight the matched datetime, even on a terminal")
	rootCmd.PersistentFlags().BoolVarP(&namesFlag, "names", "n", false,
		"Always prefix printed syslines with their source file name")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to a YAML config file supplying defaults for --blocksz, --tz, --year-hint, the cache toggles, and highlighting")

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"Enable verbose diagnostic tracing of the reader stack")
}
