package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Level is a zap level name; empty falls back to LOG_LEVEL, then error.
	Level string
	// Development switches to the console encoder.
	Development bool
}

// NewLogger configures a zap logger writing to stderr so command output on stdout stays clean.
func NewLogger(opts Options) (*zap.Logger, error) {
	levelStr := strings.ToLower(strings.TrimSpace(opts.Level))
	if levelStr == "" {
		levelStr = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	}
	if levelStr == "" {
		levelStr = "error"
	}
	var level zapcore.Level
	if err := level.Set(levelStr); err != nil {
		level = zapcore.ErrorLevel
	}

	encoding := "json"
	if opts.Development {
		encoding = "console"
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: opts.Development,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return cfg.Build()
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     utcTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func utcTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}
