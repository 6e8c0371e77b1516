package timespan

import (
	"fmt"
	"time"
)

const clockLayout = "15:04:05"

// ParseClock converts a "HH:MM:SS" time-of-day into the offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	h, m, sec := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second, nil
}

// Between returns end minus start for two same-day times of day. The result
// is negative when end precedes start; callers decide what that means.
func Between(start, end string) (time.Duration, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// FormatHHMM renders a span as zero-padded "HH:MM". Seconds are discarded,
// minutes floored. Spans of 24 hours or more keep their full hour count.
// Negative spans use floored division, so the remainder minutes stay
// non-negative: -90 minutes renders as "-2:30".
func FormatHHMM(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	rem := total % 3600
	if rem < 0 {
		hours--
		rem += 3600
	}
	return fmt.Sprintf("%02d:%02d", hours, rem/60)
}
