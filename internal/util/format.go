package util

import (
	"fmt"
	"time"
)

// Helper functions

// FormatMinutes renders accumulated seconds as whole minutes, the unit
// every ranked report line uses.
func FormatMinutes(seconds float64) string {
	return fmt.Sprintf("%d min", WholeMinutes(seconds))
}

// WholeMinutes truncates accumulated seconds to whole minutes.
func WholeMinutes(seconds float64) int {
	return int(seconds / 60)
}

// FormatDuration renders a duration as "Xh Ym" or "Ym".
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatScore renders an average focus score with one decimal place.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
