package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileLogger returns a logger writing JSON lines to the given path and
// human-readable output to stdout. The caller owns closing the file.
func FileLogger(level logrus.Level, logPath string) (*os.File, *logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	fileLogger := logrus.New()
	fileLogger.SetLevel(level)
	fileLogger.SetFormatter(&logrus.JSONFormatter{})
	fileLogger.SetOutput(io.MultiWriter(f, os.Stdout))
	return f, fileLogger, nil
}

// ConsoleLogger returns a stdout-only logger, used by CLIs and tests.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}
