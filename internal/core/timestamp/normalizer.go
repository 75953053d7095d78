package timestamp

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuzuha/screenscribe/internal/core/constants"
)

// Normalizer converts raw source-store timestamps into local instants.
//
// The store writes ISO-8601-like UTC strings, sometimes with a numeric
// offset suffix or a trailing Z, sometimes with more sub-second digits
// than time.Parse accepts. The suffix is stripped, never applied: the
// local instant is always the naive UTC value plus one fixed offset.
type Normalizer struct {
	offset time.Duration
}

// NewNormalizer creates a Normalizer with the given fixed offset in hours.
func NewNormalizer(offsetHours int) *Normalizer {
	return &Normalizer{offset: time.Duration(offsetHours) * time.Hour}
}

// Offset returns the fixed offset applied to every parsed instant.
func (n *Normalizer) Offset() time.Duration {
	return n.offset
}

// Parse normalizes a raw timestamp string into a local instant.
// Malformed input returns an error; callers skip the row and keep going.
func (n *Normalizer) Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "Z")

	// The store occasionally emits 9+ fractional digits.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		if len(frac) > 6 {
			frac = frac[:6]
		}
		s = s[:i+1] + frac
	}

	t, err := time.Parse(constants.FrameLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", raw, err)
	}
	return t.Add(n.offset), nil
}

// LocalDay returns the calendar date of a raw timestamp in the fixed
// local offset.
func (n *Normalizer) LocalDay(raw string) (string, error) {
	t, err := n.Parse(raw)
	if err != nil {
		return "", err
	}
	return t.Format(constants.DateLayout), nil
}
