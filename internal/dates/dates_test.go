package dates

import (
	"errors"
	"testing"
	"time"
)

// Wednesday.
var now = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"now", now},
		{"today", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{" Tomorrow ", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"friday", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"wed", time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"+3d", now.AddDate(0, 0, 3)},
		{"2w", now.AddDate(0, 0, 14)},
		{"+90m", now.Add(90 * time.Minute)},
		{"5h", now.Add(5 * time.Hour)},
		{"2025-02-01", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-02-01 17:45", time.Date(2025, 2, 1, 17, 45, 0, 0, time.UTC)},
		{"2025-02-01T17:45", time.Date(2025, 2, 1, 17, 45, 0, 0, time.UTC)},
		{"2025-02-01T17:45:00-05:00", time.Date(2025, 2, 1, 22, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseUsesReferenceLocation(t *testing.T) {
	zone := time.FixedZone("test", -8*60*60)
	ref := now.In(zone)

	got, err := Parse("2025-02-01", ref)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Location() != zone || got.Hour() != 0 {
		t.Fatalf("expected local midnight, got %s", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "soon", "+d", "3y", "2025-13-01", "+99999999999999999999d"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input, now); !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("expected ErrInvalidDate, got %v", err)
			}
		})
	}
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional("never", now)
	if err != nil || got != nil {
		t.Fatalf("expected nil date, got %v, %v", got, err)
	}

	got, err = ParseOptional("tomorrow", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got == nil || got.Day() != 2 {
		t.Fatalf("expected tomorrow, got %v", got)
	}

	if _, err := ParseOptional("soon", now); err == nil {
		t.Fatalf("expected error")
	}
}
