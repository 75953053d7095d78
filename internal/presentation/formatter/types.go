package formatter

import "github.com/yuzuha/screenscribe/internal/core/model"

// Options are the render-time reporting policies. They shape output
// only; aggregation never discards data to honor them.
type Options struct {
	// TopWindows truncates the ranked window sections. 0 = unlimited.
	TopWindows int
	// MinMinutes drops ranked window entries below this many whole
	// minutes.
	MinMinutes int
}

// DefaultOptions matches the report's historical shape.
func DefaultOptions() Options {
	return Options{TopWindows: 20, MinMinutes: 1}
}

// Formatter renders an aggregated day report to its destination.
type Formatter interface {
	Format(report *model.DayReport) error
}
