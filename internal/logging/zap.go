package logging

import (
	"go.uber.org/zap"

	"github.com/arloliu/seatplan/types"
)

// ZapLogger implements types.Logger over a zap SugaredLogger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// Compile-time assertion that ZapLogger implements Logger.
var _ types.Logger = (*ZapLogger)(nil)

// NewZap creates a logger that forwards to l.
//
// Key-value pairs are passed to the sugared "w" methods, so they become
// structured zap fields.
//
// Parameters:
//   - l: zap logger; nil uses zap.NewNop()
//
// Returns:
//   - *ZapLogger: A new logger instance
//
// Example:
//
//	zl, _ := zap.NewProduction()
//	defer zl.Sync()
//	planner, _ := seatplan.NewPlanner(cfg, src, seatplan.WithLogger(logging.NewZap(zl)))
func NewZap(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}

	return &ZapLogger{logger: l.Sugar()}
}

// Debug logs a debug-level message.
func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

// Info logs an info-level message.
func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Infow(msg, keysAndValues...)
}

// Warn logs a warning-level message.
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warnw(msg, keysAndValues...)
}

// Error logs an error-level message.
func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message; zap then exits the process.
func (l *ZapLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Fatalw(msg, keysAndValues...)
}
