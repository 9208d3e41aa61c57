package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestSetFlagAliases(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var priority int
	flags.IntVar(&priority, "priority", 0, "")
	setFlagAliases(flags, taskFlagAliases)

	if err := flags.Parse([]string{"--prio", "3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if priority != 3 {
		t.Fatalf("expected alias to set priority, got %d", priority)
	}
}

func TestShouldUseEditor(t *testing.T) {
	tests := []struct {
		name        string
		hasFlags    bool
		edit        bool
		noEdit      bool
		interactive bool
		want        bool
	}{
		{"interactive without flags", false, false, false, true, true},
		{"not interactive", false, false, false, false, false},
		{"flags skip editor", true, false, false, true, false},
		{"edit forces editor", true, true, false, false, true},
		{"no-edit wins over interactive", false, false, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldUseEditor(tt.hasFlags, tt.edit, tt.noEdit, tt.interactive); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHasChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("desc", "", "")
	cmd.Flags().Int("priority", 0, "")
	if err := cmd.Flags().Parse([]string{"--priority", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !hasChangedFlags(cmd, "desc", "priority") {
		t.Fatalf("expected priority to count as changed")
	}
	if hasChangedFlags(cmd, "desc") {
		t.Fatalf("expected desc unchanged")
	}
}

func TestDateValue(t *testing.T) {
	var value dateValue
	if err := value.Set("soon"); err == nil {
		t.Fatalf("expected invalid date to be rejected")
	}
	if err := value.Set("none"); err == nil {
		t.Fatalf("expected none to be rejected for a required date")
	}
	if err := value.Set("+2d"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if value.String() != "+2d" || value.Type() != "date" {
		t.Fatalf("unexpected value %q %q", value.String(), value.Type())
	}

	resolved, err := value.Resolve(testNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !resolved.Equal(testNow.Add(48 * time.Hour)) {
		t.Fatalf("expected two days after now, got %s", resolved)
	}
}

func TestOptionalDateValueClears(t *testing.T) {
	value := dateValue{optional: true}
	if err := value.Set("none"); err != nil {
		t.Fatalf("set: %v", err)
	}
	resolved, err := value.Resolve(testNow)
	if err != nil || resolved != nil {
		t.Fatalf("expected nil date, got %v, %v", resolved, err)
	}
}

func TestResolveDescriptionFromStdin(t *testing.T) {
	got, err := resolveDescriptionFromStdin("-", strings.NewReader("from stdin\r\n"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "from stdin" {
		t.Fatalf("expected trimmed stdin, got %q", got)
	}

	got, err = resolveDescriptionFromStdin("literal", strings.NewReader("ignored"))
	if err != nil || got != "literal" {
		t.Fatalf("expected literal passthrough, got %q, %v", got, err)
	}
}

func TestCLIClock(t *testing.T) {
	t.Setenv(envNow, "2025-03-04T05:06:07Z")
	clock, err := cliClock()
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if want := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC); !clock.Now().Equal(want) {
		t.Fatalf("expected %s, got %s", want, clock.Now())
	}

	t.Setenv(envNow, "yesterday")
	if _, err := cliClock(); err == nil {
		t.Fatalf("expected invalid clock override to fail")
	}
}
