package testing

import (
	"testing"

	"github.com/arloliu/seatplan/internal/logging"
	"github.com/arloliu/seatplan/types"
)

// NewTestLogger creates a logger that writes to the test log.
//
// Output shows up with go test -v or when the test fails.
func NewTestLogger(t testing.TB) types.Logger {
	return logging.NewTest(t)
}
