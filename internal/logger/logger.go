package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log level and the fields stamped on every entry.
type Options struct {
	Level       string
	Service     string
	Environment string
}

// New builds a structured JSON zap.Logger. Every entry carries the
// service and environment so the fuel shop and the sync worker can be
// told apart in shared log storage.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := opts.Level
	if level == "" {
		level = "info"
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg.InitialFields = map[string]any{}
	if opts.Service != "" {
		cfg.InitialFields["service"] = opts.Service
	}
	if opts.Environment != "" {
		cfg.InitialFields["env"] = opts.Environment
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
