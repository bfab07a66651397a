package logging

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/seatplan/types"
)

// TestLogger implements types.Logger using testing.TB for output.
type TestLogger struct {
	t testing.TB
}

// Compile-time assertion that TestLogger implements Logger.
var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a logger that writes through t.Logf.
//
// Example:
//
//	func TestSession(t *testing.T) {
//	    planner, _ := seatplan.NewPlanner(cfg, src, seatplan.WithLogger(logging.NewTest(t)))
//	}
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

// Debug logs a debug-level message.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Logf("DEBUG: %s %s", msg, formatKeyValues(keysAndValues))
}

// Info logs an info-level message.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.t.Logf("INFO: %s %s", msg, formatKeyValues(keysAndValues))
}

// Warn logs a warning-level message.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Logf("WARN: %s %s", msg, formatKeyValues(keysAndValues))
}

// Error logs an error-level message.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.t.Logf("ERROR: %s %s", msg, formatKeyValues(keysAndValues))
}

// Fatal logs a fatal-level message and fails the test.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Fatalf("FATAL: %s %s", msg, formatKeyValues(keysAndValues))
}

// formatKeyValues renders pairs as "k=v" separated by spaces.
func formatKeyValues(keysAndValues []any) string {
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v=<missing>", keysAndValues[i])
		}
	}

	return b.String()
}
