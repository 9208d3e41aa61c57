package main

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/amonks/taskgraph/internal/dates"
)

// dateValue is a pflag.Value holding a date expression. The expression is
// checked when the flag is parsed and evaluated later against the command's
// clock.
type dateValue struct {
	raw      string
	optional bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	return d.raw
}

func (d *dateValue) Set(value string) error {
	if d.optional {
		if _, err := dates.ParseOptional(value, time.Now()); err != nil {
			return err
		}
	} else if _, err := dates.Parse(value, time.Now()); err != nil {
		return err
	}
	d.raw = value
	return nil
}

func (d *dateValue) Type() string {
	return "date"
}

// Resolve evaluates the expression. It returns nil for "none".
func (d *dateValue) Resolve(now time.Time) (*time.Time, error) {
	if d.optional {
		return dates.ParseOptional(d.raw, now)
	}
	t, err := dates.Parse(d.raw, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func addDateFlag(flags *pflag.FlagSet, target *dateValue, name, usage string) {
	flags.Var(target, name, usage+" (e.g. 2025-01-31, friday, +3d)")
}
