package model

import "time"

// Observation is one timestamped (app, window) sample from the source store.
// Time is already expressed in the fixed local offset; App and Window are
// guaranteed non-empty by the feed's filter.
type Observation struct {
	Time   time.Time
	App    string
	Window string
}

// FocusInterval is an externally logged span of self-declared concentrated
// work. The interval is closed on both ends. Intervals from the log are not
// guaranteed disjoint.
type FocusInterval struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Score    int       `json:"score,omitempty"`
	HasScore bool      `json:"-"`
}

// Contains reports whether t falls within the interval, inclusive.
func (fi FocusInterval) Contains(t time.Time) bool {
	return !t.Before(fi.Start) && !t.After(fi.End)
}

// WindowKey identifies a per-window usage total. It is a structured key so
// that app or title values containing brackets cannot collide.
type WindowKey struct {
	App   string `json:"app"`
	Title string `json:"title"`
}

// Display renders the key in the report's bracket form.
func (k WindowKey) Display() string {
	return "[" + k.App + "] " + k.Title
}

// TimelineEntry records one app-or-window change in the reconstructed day.
// Clock is the local "HH:MM" of the first observation of the run.
type TimelineEntry struct {
	Clock  string `json:"time"`
	App    string `json:"app"`
	Window string `json:"window"`
}

// AppUsage is one entry of the ranked per-app usage list.
type AppUsage struct {
	App     string  `json:"app"`
	Seconds float64 `json:"seconds"`
}

// WindowUsage is one entry of the ranked per-window usage list.
type WindowUsage struct {
	Key     WindowKey `json:"key"`
	Seconds float64   `json:"seconds"`
}

// DayReport is the frozen output of one aggregation pass, handed to the
// renderers. Ranked lists are already sorted descending by seconds with
// first-seen-order tie-breaks; render-time truncation is not applied here.
type DayReport struct {
	Day           string          `json:"day"`
	FocusScore    float64         `json:"focusScore,omitempty"`
	HasFocusScore bool            `json:"-"`
	Apps          []AppUsage      `json:"apps"`
	Windows       []WindowUsage   `json:"windows"`
	FocusApps     []AppUsage      `json:"focusApps"`
	FocusWindows  []WindowUsage   `json:"focusWindows"`
	Timeline      []TimelineEntry `json:"timeline"`
	SkippedRows   int             `json:"skippedRows"`
}
