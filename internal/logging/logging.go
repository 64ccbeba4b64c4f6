// Package logging builds the zap logger used across spielberg.
//
// The terminal belongs to the chat window while it runs, so logs go to a file
// and never to stdout.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how verbosely to log
type Options struct {
	// File is the log file path; empty means stderr
	File string
	// Verbose forces debug level
	Verbose bool
	// Level is a zap level name ("debug", "info", "warn", "error"), used when Verbose is false
	Level string
}

// ParseLevel converts a level name into a zap level, defaulting to info
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New builds a JSON logger writing to opts.File
func New(opts Options) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level.SetLevel(ParseLevel(opts.Level))
	if opts.Verbose {
		zapConfig.Level.SetLevel(zap.DebugLevel)
	}
	zapConfig.EncoderConfig.TimeKey = "time"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Sampling = nil

	output := "stderr"
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		output = opts.File
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{output}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("spielberg"), nil
}

// Nop returns a logger that discards everything
func Nop() *zap.Logger {
	return zap.NewNop()
}
