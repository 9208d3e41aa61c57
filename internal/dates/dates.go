// Package dates parses the date arguments accepted by tg.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned for input that no accepted form matches.
var ErrInvalidDate = errors.New("invalid date")

// Layouts accepted for absolute dates, tried in order. Dates without a zone
// are interpreted in the location of the reference time.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// Parse interprets value relative to now. Accepted forms:
//
//	now
//	today, tomorrow          midnight of that day
//	monday ... sunday        midnight of the next such day, never today
//	+3d, 2w, +90m, 5h        offset from now
//	2025-01-02               midnight in now's location
//	2025-01-02 15:04         local wall time
//	2025-01-02T15:04:05Z     RFC 3339
func Parse(value string, now time.Time) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(value))
	if input == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	switch input {
	case "now":
		return now, nil
	case "today":
		return midnight(now), nil
	case "tomorrow":
		return midnight(now).AddDate(0, 0, 1), nil
	}

	if day, ok := weekdays[input]; ok {
		ahead := (int(day) - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return midnight(now).AddDate(0, 0, ahead), nil
	}

	if offset, ok, err := parseOffset(input); ok {
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, value, err)
		}
		return offset(now), nil
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(value), now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// ParseOptional is Parse, except that "none" and "never" clear the date and
// return nil.
func ParseOptional(value string, now time.Time) (*time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "never":
		return nil, nil
	}
	t, err := Parse(value, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseOffset recognises [+]N<unit>. ok is false when input is not shaped
// like an offset at all.
func parseOffset(input string) (func(time.Time) time.Time, bool, error) {
	body := strings.TrimPrefix(input, "+")
	if len(body) < 2 {
		return nil, false, nil
	}
	unit := body[len(body)-1]
	digits := body[:len(body)-1]
	if digits[0] < '0' || digits[0] > '9' {
		return nil, false, nil
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, true, err
	}

	switch unit {
	case 'm':
		return func(t time.Time) time.Time { return t.Add(time.Duration(n) * time.Minute) }, true, nil
	case 'h':
		return func(t time.Time) time.Time { return t.Add(time.Duration(n) * time.Hour) }, true, nil
	case 'd':
		return func(t time.Time) time.Time { return t.AddDate(0, 0, n) }, true, nil
	case 'w':
		return func(t time.Time) time.Time { return t.AddDate(0, 0, 7*n) }, true, nil
	default:
		return nil, false, nil
	}
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
