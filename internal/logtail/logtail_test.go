package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pantry.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead_TailsLastLines(t *testing.T) {
	var all []string
	for i := 1; i <= 10; i++ {
		all = append(all, fmt.Sprintf("12:00:%02d INF line %d", i, i))
	}
	path := writeLog(t, all)

	tests := []struct {
		name     string
		lines    int
		expected []string
	}{
		{"default", 0, all},
		{"partial", 5, all[5:]},
		{"exact", 10, all},
		{"more than exists", 20, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, Options{Lines: tt.lines})
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_FiltersLevelAndComponent(t *testing.T) {
	path := writeLog(t, []string{
		"12:00:01 DBG request endpoint=/health component=api",
		"12:00:02 WRN backend unreachable component=reach",
		"12:00:03 INF write succeeded component=api",
		"    continuation without level",
		"12:00:04 ERR write failed component=api",
	})

	got, err := Read(path, Options{MinLevel: zerolog.WarnLevel})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []string{
		"12:00:02 WRN backend unreachable component=reach",
		"    continuation without level",
		"12:00:04 ERR write failed component=api",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("level filter = %v, want %v", got, want)
	}

	got, err = Read(path, Options{MinLevel: zerolog.InfoLevel, Component: "api", Lines: 1})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"12:00:04 ERR write failed component=api"}) {
		t.Fatalf("component filter = %v", got)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), Options{})
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestLineLevel(t *testing.T) {
	if level, ok := LineLevel("09:15:00 WRN gate closed"); !ok || level != zerolog.WarnLevel {
		t.Fatalf("LineLevel = %v, %v", level, ok)
	}
	if _, ok := LineLevel("plain text"); ok {
		t.Fatal("LineLevel(plain text) reported a level")
	}
}
