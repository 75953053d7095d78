package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzuha/screenscribe/internal/core/model"
	"github.com/yuzuha/screenscribe/internal/core/timestamp"
	"github.com/yuzuha/screenscribe/internal/data/store"
)

func TestSelectDay(t *testing.T) {
	norm := timestamp.NewNormalizer(9)

	// 23:30 UTC on Jan 2 is already Jan 3 locally; candidate keys
	// cover both adjacent UTC days.
	sel, err := SelectDay("2025-01-02T23:30:00+00:00", norm)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-03", sel.Day)
	assert.Equal(t, []string{"2025-01-03", "2025-01-02"}, sel.DayKeys)
}

func TestSelectDayMalformed(t *testing.T) {
	_, err := SelectDay("garbage", timestamp.NewNormalizer(9))
	assert.Error(t, err)
}

func drain(f *Feed) []model.Observation {
	var out []model.Observation
	for {
		o, ok := f.Next()
		if !ok {
			return out
		}
		out = append(out, o)
	}
}

func TestFeedFiltersToTargetDay(t *testing.T) {
	norm := timestamp.NewNormalizer(9)
	rows := []store.Row{
		// 14:00 UTC Jan 2 = 23:00 local Jan 2: outside target day.
		{Timestamp: "2025-01-02T14:00:00+00:00", App: "Old", Window: "W"},
		// 15:00 UTC Jan 2 = 00:00 local Jan 3: first row of the day.
		{Timestamp: "2025-01-02T15:00:00+00:00", App: "AppA", Window: "W1"},
		{Timestamp: "2025-01-02T23:30:00+00:00", App: "AppB", Window: "W2"},
		{Timestamp: "2025-01-03T01:00:00+00:00", App: "AppC", Window: "W3"},
		// 15:00 UTC Jan 3 = 00:00 local Jan 4: next day already.
		{Timestamp: "2025-01-03T15:00:00+00:00", App: "Next", Window: "W"},
	}

	f := New(rows, "2025-01-03", norm)
	obs := drain(f)

	require.Len(t, obs, 3)
	assert.Equal(t, "AppA", obs[0].App)
	assert.Equal(t, "AppB", obs[1].App)
	assert.Equal(t, "AppC", obs[2].App)

	// Ascending order is preserved.
	for i := 1; i < len(obs); i++ {
		assert.False(t, obs[i].Time.Before(obs[i-1].Time))
	}

	parseFailures, outsideDay := f.Skipped()
	assert.Zero(t, parseFailures)
	assert.Equal(t, 2, outsideDay)
}

func TestFeedSkipsMalformedTimestamps(t *testing.T) {
	norm := timestamp.NewNormalizer(9)
	rows := []store.Row{
		{Timestamp: "not-a-timestamp", App: "Bad", Window: "W"},
		{Timestamp: "2025-01-03T01:00:00+00:00", App: "Good", Window: "W"},
	}

	f := New(rows, "2025-01-03", norm)
	obs := drain(f)

	require.Len(t, obs, 1)
	assert.Equal(t, "Good", obs[0].App)

	parseFailures, _ := f.Skipped()
	assert.Equal(t, 1, parseFailures)
}

func TestFeedExhaustedStaysExhausted(t *testing.T) {
	f := New(nil, "2025-01-03", timestamp.NewNormalizer(9))
	_, ok := f.Next()
	assert.False(t, ok)
	_, ok = f.Next()
	assert.False(t, ok)
}
