// Package testing provides test utilities for the seatplan library.
//
// Key utilities:
//   - StartEmbeddedNATS: in-process NATS server with JetStream
//   - CreateJetStreamKV: in-memory KV bucket for history store tests
//   - NewTestLogger: logger writing to the test log
//   - Roster: generated participants and tables
//
// Example usage:
//
//	import (
//	    "testing"
//	    seattest "github.com/arloliu/seatplan/testing"
//	)
//
//	func TestCommit(t *testing.T) {
//	    _, nc := seattest.StartEmbeddedNATS(t)
//	    kv := seattest.CreateJetStreamKV(t, nc, "history")
//	    // ...
//	}
package testing
