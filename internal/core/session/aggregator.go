// Package session reconstructs a day of activity from the ordered
// observation sequence: gap-based continuity inference, per-app and
// per-window usage accumulation, focus-overlap accumulation, and
// timeline compaction.
package session

import (
	"sort"
	"time"

	"github.com/yuzuha/screenscribe/internal/core/constants"
	"github.com/yuzuha/screenscribe/internal/core/model"
	"github.com/yuzuha/screenscribe/internal/core/window"
	"github.com/yuzuha/screenscribe/internal/util"
)

// Source is a single-pass, finite sequence of observations in ascending
// local-instant order. The aggregator consumes it exactly once.
type Source interface {
	Next() (model.Observation, bool)
}

// FocusChecker answers whether an instant falls inside any logged focus
// interval.
type FocusChecker interface {
	Contains(t time.Time) bool
}

// Aggregator runs the one-pass accumulation over a day's observations.
// A fresh Aggregator (and the Usage it builds) is created per run;
// nothing is shared across runs.
type Aggregator struct {
	gapSeconds float64
	focus      FocusChecker
}

// NewAggregator creates an aggregator with the standard gap threshold.
// focus may be nil when no focus log is available.
func NewAggregator(focus FocusChecker) *Aggregator {
	return &Aggregator{
		gapSeconds: constants.SessionGapSeconds,
		focus:      focus,
	}
}

// Usage is the accumulator built by one aggregation pass. Key order
// slices remember first credit so exact-tie ranking stays stable.
type Usage struct {
	appSeconds map[string]float64
	appOrder   []string

	winSeconds map[model.WindowKey]float64
	winOrder   []model.WindowKey

	focusAppSeconds map[string]float64
	focusAppOrder   []string

	focusWinSeconds map[model.WindowKey]float64
	focusWinOrder   []model.WindowKey

	timeline []model.TimelineEntry

	observations int
}

func newUsage() *Usage {
	return &Usage{
		appSeconds:      make(map[string]float64),
		winSeconds:      make(map[model.WindowKey]float64),
		focusAppSeconds: make(map[string]float64),
		focusWinSeconds: make(map[model.WindowKey]float64),
	}
}

// Aggregate consumes the source and returns the filled accumulator.
//
// Elapsed time between consecutive observations is attributed to the
// previous (app, window) pair: a sample at T reports the state observed
// at T, so the interval since the prior sample was spent in the prior
// state. Intervals of exactly 0 or >= the gap threshold contribute
// nothing; time never runs backwards into a total.
func (a *Aggregator) Aggregate(src Source) *Usage {
	u := newUsage()

	var last model.Observation
	var lastKey model.WindowKey
	have := false

	for {
		o, ok := src.Next()
		if !ok {
			break
		}
		u.observations++

		title := window.Normalize(o.App, o.Window)
		key := model.WindowKey{App: o.App, Title: title}

		if have {
			diff := o.Time.Sub(last.Time).Seconds()
			if diff > 0 && diff < a.gapSeconds {
				u.credit(last.App, lastKey, diff)
				if a.focus != nil && a.focus.Contains(last.Time) {
					u.creditFocus(last.App, lastKey, diff)
				}
			}
		}

		if !have || o.App != last.App || key.Title != lastKey.Title {
			u.timeline = append(u.timeline, model.TimelineEntry{
				Clock:  o.Time.Format(constants.ClockLayout),
				App:    o.App,
				Window: title,
			})
		}

		last = o
		lastKey = key
		have = true
	}

	util.LogDebugf("Aggregated %d observations into %d apps, %d windows, %d timeline entries",
		u.observations, len(u.appSeconds), len(u.winSeconds), len(u.timeline))
	return u
}

func (u *Usage) credit(app string, key model.WindowKey, seconds float64) {
	if _, seen := u.appSeconds[app]; !seen {
		u.appOrder = append(u.appOrder, app)
	}
	u.appSeconds[app] += seconds

	if _, seen := u.winSeconds[key]; !seen {
		u.winOrder = append(u.winOrder, key)
	}
	u.winSeconds[key] += seconds
}

func (u *Usage) creditFocus(app string, key model.WindowKey, seconds float64) {
	if _, seen := u.focusAppSeconds[app]; !seen {
		u.focusAppOrder = append(u.focusAppOrder, app)
	}
	u.focusAppSeconds[app] += seconds

	if _, seen := u.focusWinSeconds[key]; !seen {
		u.focusWinOrder = append(u.focusWinOrder, key)
	}
	u.focusWinSeconds[key] += seconds
}

// AppSeconds returns the accumulated seconds for one app.
func (u *Usage) AppSeconds(app string) float64 {
	return u.appSeconds[app]
}

// WindowSeconds returns the accumulated seconds for one window key.
func (u *Usage) WindowSeconds(key model.WindowKey) float64 {
	return u.winSeconds[key]
}

// FocusAppSeconds returns the focus-scoped seconds for one app.
func (u *Usage) FocusAppSeconds(app string) float64 {
	return u.focusAppSeconds[app]
}

// FocusWindowSeconds returns the focus-scoped seconds for one window key.
func (u *Usage) FocusWindowSeconds(key model.WindowKey) float64 {
	return u.focusWinSeconds[key]
}

// Timeline returns the compacted, insertion-ordered change record.
func (u *Usage) Timeline() []model.TimelineEntry {
	return u.timeline
}

// Observations returns the number of observations consumed.
func (u *Usage) Observations() int {
	return u.observations
}

func rankApps(seconds map[string]float64, order []string) []model.AppUsage {
	ranked := make([]model.AppUsage, 0, len(order))
	for _, app := range order {
		ranked = append(ranked, model.AppUsage{App: app, Seconds: seconds[app]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Seconds > ranked[j].Seconds
	})
	return ranked
}

func rankWindows(seconds map[model.WindowKey]float64, order []model.WindowKey) []model.WindowUsage {
	ranked := make([]model.WindowUsage, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, model.WindowUsage{Key: key, Seconds: seconds[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Seconds > ranked[j].Seconds
	})
	return ranked
}

// Report freezes the accumulator into a DayReport. No truncation or
// minute floor is applied here; those are render-time policies.
func (u *Usage) Report(day string, focusScore float64, hasScore bool, skippedRows int) *model.DayReport {
	return &model.DayReport{
		Day:           day,
		FocusScore:    focusScore,
		HasFocusScore: hasScore,
		Apps:          rankApps(u.appSeconds, u.appOrder),
		Windows:       rankWindows(u.winSeconds, u.winOrder),
		FocusApps:     rankApps(u.focusAppSeconds, u.focusAppOrder),
		FocusWindows:  rankWindows(u.focusWinSeconds, u.focusWinOrder),
		Timeline:      u.timeline,
		SkippedRows:   skippedRows,
	}
}
