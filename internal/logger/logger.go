// Package logger builds the zap logger used across the recruitment service.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names, so every component logs the same keys.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldEmail     = "email"
	FieldAttempt   = "attempt"
	FieldStatus    = "status"
	FieldCount     = "count"
	FieldAddress   = "address"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldRequestID = "request_id"
	FieldDelay     = "delay"
)

// New returns a logger writing to stdout. format is "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}

	return cfg.Build()
}

// Component returns a child logger tagged with the component name. A nil log
// yields a no-op logger.
func Component(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log.With(zap.String(FieldComponent, name))
}
