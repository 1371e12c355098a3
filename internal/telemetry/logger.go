// Package telemetry provides structured logging for an ironloop session.
//
// Grounded in pithecene-io-quarry's quarry/log package: same
// Logger/SugaredLogger split (structured fields for the hot runtime path,
// printf-style for CLI/debug surfaces), adapted from per-run identity
// fields to per-session identity fields.
package telemetry

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SessionMeta carries the identity fields every log entry from a session
// is stamped with.
type SessionMeta struct {
	SessionID string
	ScriptID  string
}

// Logger provides structured logging with session context. Use this on
// the core runtime path where performance and structured fields matter;
// use Sugar() for CLI/debug surfaces.
type Logger struct {
	zap  *zap.Logger
	meta SessionMeta
}

// SugaredLogger wraps zap.SugaredLogger with session context for
// printf-style logging.
type SugaredLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a logger with session context, writing to os.Stderr.
func NewLogger(meta SessionMeta) *Logger {
	return newLoggerWithWriter(meta, os.Stderr)
}

// WithOutput returns a new logger writing to a different destination —
// used by tests to capture log output.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return newLoggerWithWriter(l.meta, w)
}

func newLoggerWithWriter(meta SessionMeta, w io.Writer) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)

	contextFields := []zap.Field{zap.String("session_id", meta.SessionID)}
	if meta.ScriptID != "" {
		contextFields = append(contextFields, zap.String("script_id", meta.ScriptID))
	}

	zapLogger := zap.New(core).With(contextFields...)
	return &Logger{zap: zapLogger, meta: meta}
}

// Debug logs a debug message with structured fields.
func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

// Info logs an info message with structured fields.
func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

// Warn logs a warning message with structured fields.
func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

// Error logs an error message with structured fields.
func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sugar returns a SugaredLogger for printf-style logging.
func (l *Logger) Sugar() *SugaredLogger {
	return &SugaredLogger{sugar: l.zap.Sugar()}
}

func (s *SugaredLogger) Debugf(template string, args ...any) { s.sugar.Debugf(template, args...) }
func (s *SugaredLogger) Infof(template string, args ...any)  { s.sugar.Infof(template, args...) }
func (s *SugaredLogger) Warnf(template string, args ...any)  { s.sugar.Warnf(template, args...) }
func (s *SugaredLogger) Errorf(template string, args ...any) { s.sugar.Errorf(template, args...) }

// With returns a SugaredLogger carrying additional key/value context.
func (s *SugaredLogger) With(args ...any) *SugaredLogger {
	return &SugaredLogger{sugar: s.sugar.With(args...)}
}
