// Package natsutil classifies NATS client errors.
package natsutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/seatplan/types"
)

// IsConnectivityError checks if an error is caused by connectivity issues.
//
// This includes NATS timeouts, connection refused, disconnections, etc.
// Kept in internal/natsutil to avoid importing NATS dependencies in types/ package.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error indicates connectivity issue
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	// Check for known connectivity error types
	return errors.Is(err, types.ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// Wrap annotates err with msg, marking connectivity failures with
// types.ErrStoreUnavailable.
//
// Returns:
//   - error: nil if err is nil
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectivityError(err) && !errors.Is(err, types.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w: %w", msg, types.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
