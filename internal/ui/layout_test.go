package ui

import (
	"testing"
	"time"
)

func TestStepPreset(t *testing.T) {
	cases := []struct {
		current time.Duration
		dir     int
		want    time.Duration
	}{
		{30 * time.Second, 1, time.Minute},
		{30 * time.Second, -1, 10 * time.Second},
		{5 * time.Second, -1, 5 * time.Second},
		{5 * time.Minute, 1, 5 * time.Minute},
		{45 * time.Second, 1, time.Minute},
		{45 * time.Second, -1, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := stepPreset(tc.current, tc.dir); got != tc.want {
			t.Fatalf("stepPreset(%v, %d) = %v, want %v", tc.current, tc.dir, got, tc.want)
		}
	}
}

func TestNextVagueCycles(t *testing.T) {
	v := nextVague(nil)
	if v == nil || !*v {
		t.Fatalf("first step = %v, want true", v)
	}
	v = nextVague(v)
	if v == nil || *v {
		t.Fatalf("second step = %v, want false", v)
	}
	if v = nextVague(v); v != nil {
		t.Fatalf("third step = %v, want nil", *v)
	}
}

func TestParseYesNo(t *testing.T) {
	for raw, want := range map[string]bool{"": false, "n": false, "No": false, "y": true, " YES ": true} {
		got, err := parseYesNo(raw)
		if err != nil || got != want {
			t.Fatalf("parseYesNo(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := parseYesNo("maybe"); err == nil {
		t.Fatal("parseYesNo(maybe) succeeded, want error")
	}
}
