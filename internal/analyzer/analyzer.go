// Package analyzer orchestrates one report run: read the day's
// observations and focus log, aggregate in memory, render, write. Each
// run constructs fresh state; nothing is shared across runs.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuzuha/screenscribe/internal/core/constants"
	"github.com/yuzuha/screenscribe/internal/core/focus"
	"github.com/yuzuha/screenscribe/internal/core/session"
	"github.com/yuzuha/screenscribe/internal/core/timestamp"
	"github.com/yuzuha/screenscribe/internal/data/cleanup"
	"github.com/yuzuha/screenscribe/internal/data/feed"
	"github.com/yuzuha/screenscribe/internal/data/store"
	"github.com/yuzuha/screenscribe/internal/presentation/formatter"
	"github.com/yuzuha/screenscribe/internal/util"
)

// ErrNoObservations means the store had rows but none survived the
// target-day filter. Like store.ErrNoData it produces no report without
// being an exceptional condition.
var ErrNoObservations = errors.New("no observations for the target day")

type Config struct {
	DBPath       string
	FocusLogPath string
	OutputDir    string
	OutputFormat string
	OffsetHours  int
	TopWindows   int
	MinMinutes   int
	Cleanup      bool
	DataDir      string
}

type Analyzer struct {
	config *Config
	norm   *timestamp.Normalizer
}

func New(config *Config) *Analyzer {
	return &Analyzer{
		config: config,
		norm:   timestamp.NewNormalizer(config.OffsetHours),
	}
}

// Run executes one report generation pass and writes the markdown
// document into the configured output directory.
func (a *Analyzer) Run(ctx context.Context) error {
	startTime := time.Now()
	util.LogInfo("Starting activity report generation...")

	// Phase 1: open the source store
	src, err := store.Open(a.config.DBPath)
	if err != nil {
		return err
	}
	defer src.Close()

	// Phase 2: select the target local day
	latest, err := src.LatestTimestamp(ctx)
	if err != nil {
		return err
	}
	selection, err := feed.SelectDay(latest, a.norm)
	if err != nil {
		return fmt.Errorf("most recent timestamp unusable: %w", err)
	}
	util.LogInfof("Generating report for %s (latest available data)", selection.Day)

	// Phase 3: fetch rows for the candidate UTC day keys
	fetchStart := time.Now()
	rows, err := src.RowsForDays(ctx, selection.DayKeys)
	if err != nil {
		return err
	}
	util.LogDebugf("Phase 3 - Fetched %d rows in %v", len(rows), time.Since(fetchStart))

	// Phase 4: load the focus overlay
	overlay := focus.Load(a.config.FocusLogPath, selection.Day)
	util.LogDebugf("Phase 4 - %s", overlay)

	// Phase 5: aggregate the day
	aggStart := time.Now()
	observations := feed.New(rows, selection.Day, a.norm)
	usage := session.NewAggregator(overlay).Aggregate(observations)
	observations.LogSkipped()
	util.LogDebugf("Phase 5 - Aggregation duration: %v", time.Since(aggStart))

	if usage.Observations() == 0 {
		return fmt.Errorf("%w (%s)", ErrNoObservations, selection.Day)
	}

	parseFailures, outsideDay := observations.Skipped()
	avg, hasAvg := overlay.AverageScore()
	report := usage.Report(selection.Day, avg, hasAvg, parseFailures+outsideDay+overlay.Skipped())

	// Phase 6: render and write
	opts := formatter.Options{TopWindows: a.config.TopWindows, MinMinutes: a.config.MinMinutes}
	md := formatter.NewMarkdownFormatter(opts)
	outPath := filepath.Join(a.config.OutputDir, "report_"+selection.Day+".md")
	if err := os.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("report destination not writable: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(md.Render(report)), 0644); err != nil {
		return fmt.Errorf("report destination not writable: %w", err)
	}
	util.LogInfof("Report saved to %s", outPath)

	// Phase 7: secondary output
	var out formatter.Formatter
	switch a.config.OutputFormat {
	case "json":
		out = formatter.NewJSONFormatter()
	case "markdown":
		out = md
	default:
		out = formatter.NewTerminalFormatter(opts)
	}
	if err := out.Format(report); err != nil {
		return err
	}

	// Phase 8: optional retention sweep
	if a.config.Cleanup && a.config.DataDir != "" {
		cleanup.Sweep(a.config.DataDir, constants.VideoRetention)
	}

	util.LogDebugf("Total duration: %v", time.Since(startTime))
	return nil
}

const watchDebounce = 2 * time.Second

// Watch regenerates the report whenever the source store or focus log
// changes, debouncing bursts of writes. Blocks until ctx is done.
func (a *Analyzer) Watch(ctx context.Context) error {
	if err := a.Run(ctx); err != nil && !isNoDataErr(err) {
		return err
	}

	watcher, err := store.NewWatcher([]string{a.config.DBPath, a.config.FocusLogPath})
	if err != nil {
		return fmt.Errorf("watch source files: %w", err)
	}
	defer watcher.Close()

	return watchLoop(ctx, watcher.Events(), watchDebounce, a.rerun)
}

func (a *Analyzer) rerun(ctx context.Context) error {
	if err := a.Run(ctx); err != nil && !isNoDataErr(err) {
		return err
	}
	return nil
}

// watchLoop coalesces event bursts: each event rearms the timer, so run
// fires once per quiet period of the debounce length. Reset follows the
// time.Timer contract: stop first and drain the channel if the timer
// already fired, otherwise a stale tick triggers an early run.
func watchLoop(ctx context.Context, events <-chan string, debounce time.Duration, run func(context.Context) error) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-events:
			if !ok {
				return nil
			}
			util.LogDebugf("Change detected: %s", path)
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-fire:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			if err := run(ctx); err != nil {
				return err
			}
		}
	}
}

// isNoDataErr reports whether the run ended in one of the normal
// empty-store outcomes that should not stop watch mode.
func isNoDataErr(err error) bool {
	return errors.Is(err, store.ErrNoData) || errors.Is(err, ErrNoObservations)
}
