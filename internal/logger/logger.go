// Package logger provides verbose logging for the LexiVerse CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the upload and chat flow.
// When a log file is configured, records are also written there as JSON,
// regardless of verbose mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	rotator *lumberjack.Logger
	log     = zap.NewNop().Sugar()
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// EnableFile additionally writes info-and-above records to a rotating
// JSON log file. An empty path disables file logging.
func EnableFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		if err := rotator.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
		rotator = nil
	}
	if path != "" {
		rotator = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}
	}
	rebuild()
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = log.Sync()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	rebuild()
	return err
}

// rebuild recreates the zap logger from the current settings (caller must hold lock).
func rebuild() {
	var cores []zapcore.Core

	if verbose {
		cfg := zapcore.EncoderConfig{
			MessageKey:       "message",
			LevelKey:         "level",
			EncodeLevel:      bracketLevelEncoder,
			ConsoleSeparator: " ",
			LineEnding:       zapcore.DefaultLineEnding,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zapcore.Lock(zapcore.AddSync(output)),
			zap.DebugLevel,
		))
	}

	if rotator != nil {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg),
			zapcore.AddSync(rotator),
			zap.InfoLevel,
		))
	}

	if len(cores) == 0 {
		log = zap.NewNop().Sugar()
		return
	}
	log = zap.New(zapcore.NewTee(cores...)).Sugar()
}

// bracketLevelEncoder renders levels as "[DEBUG]".
func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Infof(format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warnf(format, args...)
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Errorf(format, args...)
}
