package pomodoro

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzuha/screenscribe/internal/core/focus"
)

func newTestTracker(t *testing.T) (*Tracker, *time.Time) {
	t.Helper()
	clock := time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
	tr := NewTracker(filepath.Join(t.TempDir(), "focus_log.csv"))
	tr.now = func() time.Time { return clock }
	return tr, &clock
}

func TestStartStopAppendsSession(t *testing.T) {
	tr, clock := newTestTracker(t)

	require.NoError(t, tr.Start(ModeFocus))
	*clock = clock.Add(25 * time.Minute)

	session, err := tr.Stop()
	require.NoError(t, err)
	assert.Equal(t, ModeFocus, session.Mode)
	assert.Equal(t, 25*time.Minute, session.End.Sub(session.Start))

	// The logged session round-trips through the report's overlay.
	o := focus.Load(tr.logPath, "2025-01-03")
	require.Len(t, o.Intervals(), 1)
	assert.True(t, o.Contains(session.Start.Add(10*time.Minute)))
}

func TestStartWhileActive(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.NoError(t, tr.Start(ModeFocus))
	assert.ErrorIs(t, tr.Start(ModeFocus), ErrAlreadyActive)
}

func TestStopWithoutActive(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.Stop()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestStartRejectsUnknownMode(t *testing.T) {
	tr, _ := newTestTracker(t)
	assert.Error(t, tr.Start("Nap"))
}

func TestActive(t *testing.T) {
	tr, clock := newTestTracker(t)

	_, _, ok := tr.Active()
	assert.False(t, ok)

	require.NoError(t, tr.Start(ModeBreak))
	start, mode, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, ModeBreak, mode)
	assert.True(t, start.Equal(*clock))
}

func TestRateLastSession(t *testing.T) {
	tr, clock := newTestTracker(t)

	require.NoError(t, tr.Start(ModeFocus))
	*clock = clock.Add(25 * time.Minute)
	_, err := tr.Stop()
	require.NoError(t, err)

	require.NoError(t, tr.Rate(8))
	assert.ErrorIs(t, tr.Rate(8), ErrAlreadyRated)

	o := focus.Load(tr.logPath, "2025-01-03")
	avg, ok := o.AverageScore()
	require.True(t, ok)
	assert.InDelta(t, 8.0, avg, 1e-9)
}

func TestRateValidation(t *testing.T) {
	tr, _ := newTestTracker(t)
	assert.Error(t, tr.Rate(0))
	assert.Error(t, tr.Rate(11))
	assert.ErrorIs(t, tr.Rate(5), ErrNothingToRate)
}

func TestRateSkipsBreakRows(t *testing.T) {
	tr, clock := newTestTracker(t)

	require.NoError(t, tr.Start(ModeFocus))
	*clock = clock.Add(25 * time.Minute)
	_, err := tr.Stop()
	require.NoError(t, err)

	require.NoError(t, tr.Start(ModeBreak))
	*clock = clock.Add(5 * time.Minute)
	_, err = tr.Stop()
	require.NoError(t, err)

	// The score lands on the Focus row, not the trailing Break row.
	require.NoError(t, tr.Rate(9))
	assert.ErrorIs(t, tr.Rate(9), ErrAlreadyRated)

	o := focus.Load(tr.logPath, "2025-01-03")
	avg, ok := o.AverageScore()
	require.True(t, ok)
	assert.InDelta(t, 9.0, avg, 1e-9)
}

func TestRateOnlyBreakRows(t *testing.T) {
	tr, clock := newTestTracker(t)

	require.NoError(t, tr.Start(ModeBreak))
	*clock = clock.Add(5 * time.Minute)
	_, err := tr.Stop()
	require.NoError(t, err)

	assert.ErrorIs(t, tr.Rate(7), ErrNothingToRate)
}

func TestMultipleSessionsAverage(t *testing.T) {
	tr, clock := newTestTracker(t)

	require.NoError(t, tr.Start(ModeFocus))
	*clock = clock.Add(25 * time.Minute)
	_, err := tr.Stop()
	require.NoError(t, err)
	require.NoError(t, tr.Rate(8))

	*clock = clock.Add(5 * time.Minute)
	require.NoError(t, tr.Start(ModeFocus))
	*clock = clock.Add(25 * time.Minute)
	_, err = tr.Stop()
	require.NoError(t, err)
	require.NoError(t, tr.Rate(6))

	o := focus.Load(tr.logPath, "2025-01-03")
	require.Len(t, o.Intervals(), 2)
	avg, ok := o.AverageScore()
	require.True(t, ok)
	assert.InDelta(t, 7.0, avg, 1e-9)
}
