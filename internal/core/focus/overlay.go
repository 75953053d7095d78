// Package focus loads the self-reported focus-session log and answers
// point-in-interval membership queries during aggregation.
package focus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yuzuha/screenscribe/internal/core/constants"
	"github.com/yuzuha/screenscribe/internal/core/model"
	"github.com/yuzuha/screenscribe/internal/util"
)

// ModeFocus is the only session mode relevant to the report; Break rows
// are logged by the same tracker but never scored against usage.
const ModeFocus = "Focus"

// Overlay holds the focus intervals retained for one target day.
// Intervals are not assumed disjoint; membership is existential.
type Overlay struct {
	intervals []model.FocusInterval
	avgScore  float64
	hasAvg    bool
	skipped   int
}

// Load reads the focus log at path and retains Focus rows whose start
// day equals targetDay. A missing or unreadable file degrades to an
// empty overlay; individual malformed rows are skipped and counted.
func Load(path, targetDay string) *Overlay {
	o := &Overlay{}

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			util.LogWarnf("Focus log unreadable, continuing without focus data: %v", err)
		}
		return o
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var scoreSum, scoreCount int
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			o.skipped++
			continue
		}
		if first {
			first = false
			if len(record) > 0 && record[0] == "start_time" {
				continue
			}
		}

		interval, ok := parseRow(record, targetDay)
		if !ok {
			o.skipped++
			continue
		}
		if interval == nil {
			// Valid row, but not a Focus session for the target day.
			continue
		}

		o.intervals = append(o.intervals, *interval)
		if interval.HasScore {
			scoreSum += interval.Score
			scoreCount++
		}
	}

	if o.skipped > 0 {
		util.LogWarnf("Skipped %d malformed focus log rows in %s", o.skipped, path)
	}
	if scoreCount > 0 {
		o.avgScore = float64(scoreSum) / float64(scoreCount)
		o.hasAvg = true
	}
	return o
}

// parseRow parses one log record into a typed interval. It returns
// (nil, true) for valid rows filtered out by mode or day.
func parseRow(record []string, targetDay string) (*model.FocusInterval, bool) {
	if len(record) < 3 {
		return nil, false
	}

	start, err := time.Parse(constants.FocusLogLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return nil, false
	}
	end, err := time.Parse(constants.FocusLogLayout, strings.TrimSpace(record[1]))
	if err != nil {
		return nil, false
	}
	if end.Before(start) {
		return nil, false
	}

	mode := strings.TrimSpace(record[2])
	if mode != ModeFocus || start.Format(constants.DateLayout) != targetDay {
		return nil, true
	}

	interval := &model.FocusInterval{Start: start, End: end}
	if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
		score, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || score < 1 || score > 10 {
			return nil, false
		}
		interval.Score = score
		interval.HasScore = true
	}
	return interval, true
}

// Contains reports whether t lies within any retained focus interval.
// Linear scan: interval counts per day are small.
func (o *Overlay) Contains(t time.Time) bool {
	for _, interval := range o.intervals {
		if interval.Contains(t) {
			return true
		}
	}
	return false
}

// AverageScore returns the mean of this day's session scores, absent
// when no retained row carries one.
func (o *Overlay) AverageScore() (float64, bool) {
	return o.avgScore, o.hasAvg
}

// Intervals returns the retained intervals.
func (o *Overlay) Intervals() []model.FocusInterval {
	return o.intervals
}

// Skipped returns the number of malformed rows dropped during loading.
func (o *Overlay) Skipped() int {
	return o.skipped
}

// String describes the overlay for debug logging.
func (o *Overlay) String() string {
	return fmt.Sprintf("focus overlay: %d intervals, %d skipped rows", len(o.intervals), o.skipped)
}
