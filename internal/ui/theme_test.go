package ui

import "testing"

func TestThemeLookups(t *testing.T) {
	th := GetTheme("Kanagawa")
	if th.Name != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa).Name = %q", th.Name)
	}
	if got := GetTheme("missing").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(missing) = %q, want Nightfox", got)
	}

	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if len(seen) != len(ThemeNames()) || name != ThemeNames()[0] {
		t.Fatalf("NextTheme did not cycle through every theme: %v", seen)
	}
	if got := NextTheme("missing"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(missing) = %q, want first theme", got)
	}
}

func TestStatusStyleNormalizesInput(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		styles := th.Styles()
		if got, want := styles.StatusStyle("  Healthy "), styles.StatusStyle("healthy"); got.GetBackground() != want.GetBackground() {
			t.Fatalf("%s: StatusStyle did not normalize case and spaces", name)
		}
		if th.StatusColors["unhealthy"] == th.StatusColors["healthy"] {
			t.Fatalf("%s: healthy and unhealthy share a color", name)
		}
	}
}
