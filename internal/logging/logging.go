// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process logger: a console core on stderr, plus
// an optional rotated JSON file core.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/reag/pkg/types"
)

// New returns a logger configured by cfg that writes console output to w.
// When cfg.File is set, JSON records are also appended to that file with
// size-based rotation.
func New(cfg types.LoggingConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(defaultString(cfg.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var consoleEncoder zapcore.Encoder
	switch strings.ToLower(defaultString(cfg.Format, "console")) {
	case "console":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		consoleEncoder = zapcore.NewJSONEncoder(jsonEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", cfg.Format)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(w)), level),
	}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// Must is New for process start-up: it falls back to a stderr logger at
// info level when cfg is invalid and reports why.
func Must(cfg types.LoggingConfig) *zap.Logger {
	l, err := New(cfg, os.Stderr)
	if err == nil {
		return l
	}
	l, _ = New(types.LoggingConfig{}, os.Stderr)
	l.Warn("invalid logging config, using defaults", zap.Error(err))
	return l
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encCfg
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
