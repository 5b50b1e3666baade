// Package logging provides categorized zap logging for the signify client.
// The interactive dashboard writes to a log file under the signify config
// directory so the TUI stays clean; one-shot CLI commands log to stderr.
// Until Initialize is called every category logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem. Each category gets its own named logger so
// log lines can be filtered per concern.
type Category string

const (
	CategoryAPI     Category = "api"     // REST calls to the Signify backend
	CategorySession Category = "session" // session persistence, login/logout
	CategoryUI      Category = "ui"      // dashboard view and tab lifecycle
	CategoryIntake  Category = "intake"  // survey intake flow transitions
	CategoryCLI     Category = "cli"     // non-interactive commands
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the root logger. When file is non-empty, output goes
// there (the directory is created if needed); otherwise stderr. level is
// one of zap's level names; unknown values fall back to info.
func Initialize(level, file string) error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	root = logger
	loggers = make(map[Category]*zap.Logger)
	return nil
}

// L returns the logger for a category. Safe to call before Initialize.
func L(cat Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	l := root.Named(string(cat))
	loggers[cat] = l
	return l
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
