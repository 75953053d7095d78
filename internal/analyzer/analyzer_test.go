package analyzer

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/yuzuha/screenscribe/internal/data/store"
)

func buildDB(t *testing.T, dir string, rows [][3]string) string {
	t.Helper()
	path := filepath.Join(dir, "db.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE frames (timestamp TEXT, app_name TEXT, window_name TEXT)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO frames (timestamp, app_name, window_name) VALUES (?, ?, ?)`, r[0], r[1], r[2])
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
	return path
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dbPath := buildDB(t, dir, [][3]string{
		// 01:00 UTC Jan 3 = 10:00 local Jan 3.
		{"2025-01-03T01:00:00.123456789+00:00", "Google Chrome", "Report - Google Chrome"},
		{"2025-01-03T01:00:05+00:00", "Google Chrome", "Report - Google Chrome"},
		{"2025-01-03T01:02:05+00:00", "Terminal", "~/projects"},
		// A 10 minute gap: absence, contributes nothing.
		{"2025-01-03T01:12:05+00:00", "Terminal", "~/projects"},
		// Same stored day key, unparsable time portion: dropped, counted.
		{"2025-01-03T01:0garbage", "Bad", "Row"},
	})

	focusLog := filepath.Join(dir, "focus_log.csv")
	require.NoError(t, os.WriteFile(focusLog, []byte(
		"start_time,end_time,mode,score\n"+
			"2025-01-03 10:00:00,2025-01-03 10:25:00,Focus,8\n"+
			"2025-01-03 14:00:00,2025-01-03 14:25:00,Focus,6\n"), 0644))

	outDir := filepath.Join(dir, "reports")
	a := New(&Config{
		DBPath:       dbPath,
		FocusLogPath: focusLog,
		OutputDir:    outDir,
		OutputFormat: "markdown",
		OffsetHours:  9,
		TopWindows:   20,
		MinMinutes:   0,
	})

	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(outDir, "report_2025-01-03.md"))
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "# Activity Report: 2025-01-03")
	assert.Contains(t, doc, "Average Focus Score: 7.0 / 10")
	// 5s + 120s of Chrome, all inside the 10:00-10:25 focus interval.
	assert.Contains(t, doc, "- **Google Chrome**: 2 min")
	assert.Contains(t, doc, "- **2 min**: [Google Chrome] Report")
	assert.Contains(t, doc, "### 10:00")
	assert.Contains(t, doc, "- [10:00] Google Chrome: Report")
	assert.Contains(t, doc, "- [10:02] Terminal: ~/projects")
}

func TestRunMissingStore(t *testing.T) {
	dir := t.TempDir()
	a := New(&Config{
		DBPath:      filepath.Join(dir, "missing.sqlite"),
		OutputDir:   dir,
		OffsetHours: 9,
	})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source store not found")
}

func TestRunEmptyStore(t *testing.T) {
	dir := t.TempDir()
	dbPath := buildDB(t, dir, nil)
	a := New(&Config{
		DBPath:      dbPath,
		OutputDir:   dir,
		OffsetHours: 9,
	})
	err := a.Run(context.Background())
	assert.ErrorIs(t, err, store.ErrNoData)
}

func TestRunUnusableLatestTimestamp(t *testing.T) {
	dir := t.TempDir()
	dbPath := buildDB(t, dir, [][3]string{
		{"9999-99-99T99:99:99", "App", "Win"},
	})
	a := New(&Config{
		DBPath:      dbPath,
		OutputDir:   dir,
		OffsetHours: 9,
	})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "most recent timestamp unusable")
}

func TestRunNoRowsSurviveFilter(t *testing.T) {
	dir := t.TempDir()
	// The latest-timestamp query sees every row, but the fetch filter
	// excludes rows without an app, leaving an empty day.
	path := filepath.Join(dir, "db.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE frames (timestamp TEXT, app_name TEXT, window_name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO frames (timestamp, app_name, window_name) VALUES (?, NULL, ?)`,
		"2025-01-03T01:00:00+00:00", "Win")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	a := New(&Config{
		DBPath:      path,
		OutputDir:   dir,
		OffsetHours: 9,
	})
	err = a.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoObservations)
}

// watchRuns counts regeneration passes and signals each one.
type watchRuns struct {
	mu    sync.Mutex
	count int
	done  chan struct{}
}

func newWatchRuns() *watchRuns {
	return &watchRuns{done: make(chan struct{}, 16)}
}

func (r *watchRuns) run(context.Context) error {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *watchRuns) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *watchRuns) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("regeneration pass never fired")
	}
}

func TestWatchLoopCoalescesBursts(t *testing.T) {
	events := make(chan string)
	runs := newWatchRuns()

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- watchLoop(context.Background(), events, 100*time.Millisecond, runs.run)
	}()

	// A burst of changes lands inside one debounce window.
	for i := 0; i < 5; i++ {
		events <- "db.sqlite"
	}
	runs.wait(t)

	// The quiet period after the burst produces no extra pass.
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 1, runs.total())

	// A later change starts a fresh window and fires again.
	events <- "focus_log.csv"
	runs.wait(t)
	assert.Equal(t, 2, runs.total())

	close(events)
	assert.NoError(t, <-loopErr)
}

func TestWatchLoopEventAfterFire(t *testing.T) {
	events := make(chan string)
	runs := newWatchRuns()

	go func() {
		_ = watchLoop(context.Background(), events, 30*time.Millisecond, runs.run)
	}()

	// Space events wider than the debounce so the timer expires between
	// them; each event must rearm cleanly and fire exactly once.
	for i := 0; i < 3; i++ {
		events <- "db.sqlite"
		runs.wait(t)
	}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 3, runs.total())
	close(events)
}

func TestWatchLoopStopsOnRunError(t *testing.T) {
	events := make(chan string)
	wantErr := errors.New("store vanished")

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- watchLoop(context.Background(), events, 10*time.Millisecond, func(context.Context) error {
			return wantErr
		})
	}()

	events <- "db.sqlite"
	select {
	case err := <-loopErr:
		assert.ErrorIs(t, err, wantErr)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not return the run error")
	}
}

func TestWatchLoopHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- watchLoop(ctx, make(chan string), 10*time.Millisecond, func(context.Context) error {
			return nil
		})
	}()

	cancel()
	select {
	case err := <-loopErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not observe cancellation")
	}
}
