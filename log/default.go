package log

import "os"

var defaultLogger = NewText(os.Stderr)

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// Trace level message on the default logger.
func Trace(msg string, v ...any) {
	defaultLogger.log(nil, LevelTrace, msg, v...)
}

// Debug level message on the default logger.
func Debug(msg string, v ...any) {
	defaultLogger.log(nil, LevelDebug, msg, v...)
}

// Info level message on the default logger.
func Info(msg string, v ...any) {
	defaultLogger.log(nil, LevelInfo, msg, v...)
}

// Warn level message on the default logger.
func Warn(msg string, v ...any) {
	defaultLogger.log(nil, LevelWarn, msg, v...)
}

// Error level message on the default logger.
func Error(msg string, v ...any) {
	defaultLogger.log(nil, LevelError, msg, v...)
}

// HasTrace reports whether trace logging is enabled, so hot paths can skip
// building attributes.
func HasTrace() bool {
	return defaultLogger.level <= LevelTrace
}
