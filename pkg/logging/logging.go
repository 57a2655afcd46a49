// Package logging configures the provisioning log. Output is duplicated
// to stderr and an append-only log file, mirroring how user-data scripts
// tee their streams into the boot log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Markers used in step log lines.
const (
	MarkerOK     = "✅"
	MarkerFailed = "❌"
	MarkerWarn   = "⚠️"
)

// Setup creates a logger writing to stderr and the log file at path.
// The returned close function must be called before relaxing the log
// file permissions.
func Setup(path string) (*logrus.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.MultiWriter(os.Stderr, file))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger, file.Close, nil
}

// NewConsole creates a logger writing to stderr only, for subcommands
// that do not own the provisioning log.
func NewConsole() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// Relax makes the log file world-readable once provisioning is done.
func Relax(path string) error {
	if err := os.Chmod(path, 0644); err != nil {
		return fmt.Errorf("failed to relax log permissions: %w", err)
	}
	return nil
}
