package core

import "github.com/hupe1980/qconnect/logging"

// loggerAdapter binds a fixed set of key/value fields to every line written
// through LogDebug/LogInfo/LogWarn/LogError. A nil logger is replaced by a
// NoOpLogger.
type loggerAdapter struct {
	logger logging.Logger
	fields []any
}

func newLoggerAdapter(l logging.Logger, fields ...any) *loggerAdapter {
	if l == nil {
		l = logging.NoOpLogger{}
	}
	return &loggerAdapter{logger: l, fields: fields}
}

// Logger returns the underlying logger without the bound fields.
func (l *loggerAdapter) Logger() logging.Logger {
	return l.logger
}

func (l *loggerAdapter) with(args []any) []any {
	if len(l.fields) == 0 {
		return args
	}
	out := make([]any, 0, len(l.fields)+len(args))
	out = append(out, l.fields...)
	return append(out, args...)
}

// LogDebug logs a debug message with the bound fields.
func (l *loggerAdapter) LogDebug(msg string, args ...any) { l.logger.Debug(msg, l.with(args)...) }

// LogInfo logs an info message with the bound fields.
func (l *loggerAdapter) LogInfo(msg string, args ...any) { l.logger.Info(msg, l.with(args)...) }

// LogWarn logs a warning with the bound fields.
func (l *loggerAdapter) LogWarn(msg string, args ...any) { l.logger.Warn(msg, l.with(args)...) }

// LogError logs an error with the bound fields.
func (l *loggerAdapter) LogError(msg string, args ...any) { l.logger.Error(msg, l.with(args)...) }
