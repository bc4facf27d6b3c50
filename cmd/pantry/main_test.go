package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/five82/pantry/internal/app"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "pantry "+app.Version) {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "prefs", "env-file", "poll"} {
		if cmd.Flags().Lookup(name) == nil && cmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("missing flag --%s", name)
		}
	}
	for _, sub := range []string{"check", "logs", "version"} {
		found, _, err := cmd.Find([]string{sub})
		if err != nil || found.Name() != sub {
			t.Fatalf("%s subcommand: %v", sub, err)
		}
	}
}
