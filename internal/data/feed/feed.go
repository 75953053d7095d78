// Package feed turns raw store rows into the ordered observation
// sequence for one target local day. Day selection and the day filter
// live here because their semantics are part of correctness: the store
// indexes rows by UTC date while the report follows the local calendar.
package feed

import (
	"github.com/yuzuha/screenscribe/internal/core/constants"
	"github.com/yuzuha/screenscribe/internal/core/model"
	"github.com/yuzuha/screenscribe/internal/core/timestamp"
	"github.com/yuzuha/screenscribe/internal/data/store"
	"github.com/yuzuha/screenscribe/internal/util"
)

// DaySelection names the target local day and the UTC date keys that
// could hold its rows.
type DaySelection struct {
	Day     string
	DayKeys []string
}

// SelectDay derives the target local day from the store's most recent
// raw timestamp. With a positive offset the local day boundary falls
// inside one of two adjacent UTC days, so both date keys are fetched
// and the per-row filter decides.
func SelectDay(latestRaw string, norm *timestamp.Normalizer) (DaySelection, error) {
	latest, err := norm.Parse(latestRaw)
	if err != nil {
		return DaySelection{}, err
	}

	day := latest.Format(constants.DateLayout)
	previous := latest.AddDate(0, 0, -1).Format(constants.DateLayout)
	return DaySelection{Day: day, DayKeys: []string{day, previous}}, nil
}

// Feed yields the target day's observations in ascending local-instant
// order. Single-pass and non-restartable; the aggregator consumes it
// exactly once.
type Feed struct {
	rows []store.Row
	pos  int
	day  string
	norm *timestamp.Normalizer

	skippedParse int
	skippedDay   int
}

// New builds a feed over the fetched rows for the given target day.
// Rows arrive ascending by source timestamp; the offset is constant, so
// the surviving observations stay ascending without re-sorting.
func New(rows []store.Row, day string, norm *timestamp.Normalizer) *Feed {
	return &Feed{rows: rows, day: day, norm: norm}
}

// Next implements session.Source. Rows with malformed timestamps and
// rows outside the target local day are dropped and counted, never
// fatal.
func (f *Feed) Next() (model.Observation, bool) {
	for f.pos < len(f.rows) {
		row := f.rows[f.pos]
		f.pos++

		t, err := f.norm.Parse(row.Timestamp)
		if err != nil {
			f.skippedParse++
			continue
		}
		if t.Format(constants.DateLayout) != f.day {
			f.skippedDay++
			continue
		}
		return model.Observation{Time: t, App: row.App, Window: row.Window}, true
	}
	return model.Observation{}, false
}

// Skipped returns the counts of dropped rows: timestamp parse failures
// and rows falling outside the target day.
func (f *Feed) Skipped() (parseFailures, outsideDay int) {
	return f.skippedParse, f.skippedDay
}

// LogSkipped records drop counts for diagnostics once the pass is done.
func (f *Feed) LogSkipped() {
	if f.skippedParse > 0 {
		util.LogWarnf("Skipped %d rows with malformed timestamps", f.skippedParse)
	}
	if f.skippedDay > 0 {
		util.LogDebugf("Filtered %d rows outside target day %s", f.skippedDay, f.day)
	}
}
