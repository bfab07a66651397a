// Package logging provides the types.Logger implementations used by seatplan.
//
// Available loggers:
//   - NewSlog / NewSlogDefault: log/slog backed logger
//   - NewZap: go.uber.org/zap backed logger
//   - NewNop: discards everything (library default)
//   - NewTest: writes through testing.TB
//
// Every logger supports With, which returns a child logger carrying extra
// key-value pairs, so a session can tag all of its lines with the event ID.
package logging
