package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultLines is used when Options.Lines is not positive.
const DefaultLines = 200

// Options filter a tail read.
type Options struct {
	// Lines is how many matching lines to return, newest last.
	Lines int
	// MinLevel drops lines below it. Lines without a level are kept.
	MinLevel zerolog.Level
	// Component keeps only lines tagged component=<value> when set.
	Component string
}

// Read returns the last matching lines of the log file at path. A missing
// file yields no lines.
func Read(path string, opts Options) ([]string, error) {
	limit := opts.Lines
	if limit <= 0 {
		limit = DefaultLines
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	component := strings.TrimSpace(opts.Component)
	ring := make([]string, limit)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if !matches(line, opts.MinLevel, component) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

func matches(line string, min zerolog.Level, component string) bool {
	if level, ok := LineLevel(line); ok && level < min {
		return false
	}
	if component != "" && !strings.Contains(line, "component="+component) {
		return false
	}
	return true
}

var levelTags = map[string]zerolog.Level{
	"TRC": zerolog.TraceLevel,
	"DBG": zerolog.DebugLevel,
	"INF": zerolog.InfoLevel,
	"WRN": zerolog.WarnLevel,
	"ERR": zerolog.ErrorLevel,
	"FTL": zerolog.FatalLevel,
	"PNC": zerolog.PanicLevel,
}

// LineLevel extracts the level tag from a console formatted line such as
// "15:04:05 WRN gate closed component=reach".
func LineLevel(line string) (zerolog.Level, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return zerolog.NoLevel, false
	}
	level, ok := levelTags[fields[1]]
	return level, ok
}
