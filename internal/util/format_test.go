package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 min"},
		{59, "0 min"},
		{60, "1 min"},
		{125, "2 min"},
		{3600, "60 min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.seconds))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5m", FormatDuration(5*time.Minute))
	assert.Equal(t, "1h 30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "0m", FormatDuration(30*time.Second))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "7.0", FormatScore(7))
	assert.Equal(t, "6.5", FormatScore(6.5))
}

func TestPadString(t *testing.T) {
	assert.Equal(t, "abc  ", PadString("abc", 5, true))
	assert.Equal(t, "  abc", PadString("abc", 5, false))
	assert.Equal(t, "abcdef", PadString("abcdef", 5, true))

	// Wide characters count as two columns.
	assert.Equal(t, 4, GetDisplayWidth("日本"))
	assert.Equal(t, "日本 ", PadString("日本", 5, true))
}
