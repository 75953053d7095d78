package constants

import "time"

const (
	// Inter-observation gap still treated as continuous presence.
	// Anything at or above this is an absence and contributes nothing.
	SessionGapSeconds = 300.0

	// Fixed offset applied to every stored UTC timestamp. The source
	// store writes UTC; the report is a local-calendar artifact.
	DefaultOffsetHours = 9

	// Video retention window for the cleanup sweep.
	VideoRetention = 24 * time.Hour

	// Timestamp layouts.
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	FrameLayout    = "2006-01-02T15:04:05"
	FocusLogLayout = "2006-01-02 15:04:05"
)
