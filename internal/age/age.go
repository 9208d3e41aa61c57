// Package age computes the durations shown next to tasks.
package age

import "time"

// Since returns the time elapsed from t to now, clamped at zero. It reports
// false when t is unset.
func Since(t, now time.Time) (time.Duration, bool) {
	if t.IsZero() {
		return 0, false
	}
	return max(now.Sub(t), 0), true
}

// Span returns the time from start to end, or to now while end is nil.
// It reports false when start is unset.
func Span(start time.Time, end *time.Time, now time.Time) (time.Duration, bool) {
	if end == nil {
		return Since(start, now)
	}
	if start.IsZero() || end.IsZero() {
		return 0, false
	}
	return max(end.Sub(start), 0), true
}
