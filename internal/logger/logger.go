// Package logger provides structured logging setup and shared field
// helpers for the matching engine.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured log field keys shared across packages so dashboards can rely
// on consistent names.
const (
	FieldProfile     = "profile_id"
	FieldJob         = "job_id"
	FieldProvider    = "provider"
	FieldFingerprint = "fingerprint"
	FieldRun         = "run_id"
)

// New builds a production zap logger at the given level ("debug", "info",
// "warn", "error"). An empty level defaults to info.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// Safe returns the logger unchanged, or a no-op logger when nil, so
// callers never need nil checks before logging.
func Safe(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
