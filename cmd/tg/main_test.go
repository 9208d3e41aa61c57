package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "tg" {
		t.Fatalf("expected root command name tg, got %q", rootCmd.Use)
	}
}

func TestEveryCommandHasShortHelp(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Short == "" {
			t.Errorf("command %q has no short help", cmd.Name())
		}
	}
}
