package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggingTestSuite struct {
	suite.Suite
	dir string
}

func (s *LoggingTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *LoggingTestSuite) TestFileOutputIsPlainText() {
	path := filepath.Join(s.dir, "nested", "pantry.log")
	logger, closeFn, err := New(Options{Level: "debug", File: path})
	s.Require().NoError(err)

	logger.Debug().Str("endpoint", "/health").Msg("request")
	s.Require().NoError(closeFn())

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	line := string(data)
	s.Contains(line, "request")
	s.Contains(line, "endpoint=/health")
	s.NotContains(line, "\x1b[", "file output must not carry ANSI colour codes")
}

func (s *LoggingTestSuite) TestFileIsAppended() {
	path := filepath.Join(s.dir, "pantry.log")
	for _, msg := range []string{"first", "second"} {
		logger, closeFn, err := New(Options{File: path})
		s.Require().NoError(err)
		logger.Info().Msg(msg)
		s.Require().NoError(closeFn())
	}

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal(2, strings.Count(string(data), "\n"))
}

func (s *LoggingTestSuite) TestLevelFilters() {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "WARN", Stderr: &buf})
	s.Require().NoError(err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), "shown")
}

func (s *LoggingTestSuite) TestInvalidLevel() {
	_, closeFn, err := New(Options{Level: "chatty"})
	s.Error(err)
	s.NoError(closeFn())
}

func TestLoggingTestSuite(t *testing.T) {
	suite.Run(t, new(LoggingTestSuite))
}
