package logging

import "github.com/arloliu/seatplan/types"

// With returns a logger that prepends keysAndValues to every call.
//
// Loggers from this package get a native child logger; any other
// implementation is wrapped.
//
// Parameters:
//   - logger: Parent logger
//   - keysAndValues: Pairs added to every log line
//
// Returns:
//   - types.Logger: Child logger
func With(logger types.Logger, keysAndValues ...any) types.Logger {
	if len(keysAndValues) == 0 {
		return logger
	}

	switch l := logger.(type) {
	case *SlogLogger:
		return &SlogLogger{logger: l.logger.With(keysAndValues...)}
	case *ZapLogger:
		return &ZapLogger{logger: l.logger.With(keysAndValues...)}
	case *NopLogger:
		return l
	default:
		return &prefixed{next: logger, fields: keysAndValues}
	}
}

// prefixed adds fixed key-value pairs to a foreign logger.
type prefixed struct {
	next   types.Logger
	fields []any
}

func (p *prefixed) kv(keysAndValues []any) []any {
	out := make([]any, 0, len(p.fields)+len(keysAndValues))
	out = append(out, p.fields...)

	return append(out, keysAndValues...)
}

func (p *prefixed) Debug(msg string, keysAndValues ...any) { p.next.Debug(msg, p.kv(keysAndValues)...) }
func (p *prefixed) Info(msg string, keysAndValues ...any)  { p.next.Info(msg, p.kv(keysAndValues)...) }
func (p *prefixed) Warn(msg string, keysAndValues ...any)  { p.next.Warn(msg, p.kv(keysAndValues)...) }
func (p *prefixed) Error(msg string, keysAndValues ...any) { p.next.Error(msg, p.kv(keysAndValues)...) }
func (p *prefixed) Fatal(msg string, keysAndValues ...any) { p.next.Fatal(msg, p.kv(keysAndValues)...) }
