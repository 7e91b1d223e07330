package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var base = newLogger()

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		// fall back to a no-op logger rather than failing startup
		return zap.NewNop()
	}
	return l
}

func output(level zapcore.Level, msg string, fields Fields) {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	if ce := base.Check(level, msg); ce != nil {
		ce.Write(zf...)
	}
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(zapcore.InfoLevel, msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(zapcore.ErrorLevel, msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(zapcore.ErrorLevel, msg, fields)
	_ = base.Sync()
	os.Exit(1)
}

// Engine returns a named zap logger for components that emit high-volume
// structured records (per-action combat traces).
func Engine() *zap.Logger {
	return base.Named("engine")
}
