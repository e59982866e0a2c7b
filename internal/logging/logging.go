// Package logging builds the file-backed zap logger. The TUI owns the
// terminal, so nothing may write to stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridcal/gridcal/internal/config"
)

// New opens a JSON-lines logger at the configured path. An unusable log
// file degrades to a no-op logger instead of killing the app.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return zap.NewNop(), fmt.Errorf("logging: mkdir: %w", err)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			level = zapcore.InfoLevel
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.Path}
	zcfg.ErrorOutputPaths = []string{cfg.Path}

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop(), fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}
