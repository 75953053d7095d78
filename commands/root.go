package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuzuha/screenscribe/internal/analyzer"
	"github.com/yuzuha/screenscribe/internal/core/constants"
	"github.com/yuzuha/screenscribe/internal/util"
)

var (
	// Logging related
	debug bool

	// Data paths
	dbPath       string
	dataDir      string
	focusLogPath string
	outputDir    string

	// Output related
	outputFormat string
	offsetHours  int
	topWindows   int
	minMinutes   int

	// Run mode
	watch      bool
	runCleanup bool

	rootCmd = &cobra.Command{
		Use:   "screenscribe [flags]",
		Short: "Daily activity report generator",
		Long: `screenscribe reconstructs a daily activity timeline from the screen
recorder's observation database and renders a usage report.

It segments continuous sessions from discrete samples, merges self-reported
focus sessions, and aggregates usage by application and by window.

Examples:
  screenscribe                            # Report for the most recent day
  screenscribe --output json              # Also print the full result as JSON
  screenscribe --top 10 --min-minutes 2   # Tighter window ranking
  screenscribe --watch                    # Regenerate as new data arrives
  screenscribe focus start                # Begin a focus session
  screenscribe focus stop                 # End it
  screenscribe focus rate 8               # Score the last session
  screenscribe cleanup                    # Delete expired recording videos`,
		RunE:          runReport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

const (
	defaultLogFile  = "~/.screenscribe/logs/app.log"
	defaultDataDir  = "~/.screenpipe"
	defaultDBPath   = "~/.screenpipe/db.sqlite"
	defaultFocusLog = "~/.screenscribe/focus_log.csv"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath,
		"Screen recorder database path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir,
		"Screen recorder data directory (video cleanup root)")
	rootCmd.PersistentFlags().StringVar(&focusLogPath, "focus-log", defaultFocusLog,
		"Focus session log path")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "O", ".",
		"Directory the markdown report is written to")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Secondary output format (summary, json, markdown)")
	rootCmd.Flags().IntVar(&offsetHours, "offset-hours", constants.DefaultOffsetHours,
		"Fixed offset applied to stored UTC timestamps")
	rootCmd.Flags().IntVar(&topWindows, "top", 20,
		"Window ranking entry limit (0 = unlimited)")
	rootCmd.Flags().IntVar(&minMinutes, "min-minutes", 1,
		"Omit ranked windows below this many minutes")

	// Run mode
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Regenerate the report when the database or focus log changes")
	rootCmd.Flags().BoolVar(&runCleanup, "cleanup", false,
		"Delete expired recording videos after the report")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runReport(cmd *cobra.Command, args []string) error {
	initLogging()

	config := &analyzer.Config{
		DBPath:       expandPath(dbPath),
		FocusLogPath: expandPath(focusLogPath),
		OutputDir:    expandPath(outputDir),
		OutputFormat: outputFormat,
		OffsetHours:  offsetHours,
		TopWindows:   topWindows,
		MinMinutes:   minMinutes,
		Cleanup:      runCleanup,
		DataDir:      expandPath(dataDir),
	}

	a := analyzer.New(config)
	if watch {
		return a.Watch(cmd.Context())
	}
	return a.Run(cmd.Context())
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// Helper functions

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	util.InitLogger(logLevel, expandPath(defaultLogFile), debug)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
