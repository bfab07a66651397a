package testing

import (
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StartEmbeddedNATS starts an in-process NATS server with JetStream enabled.
//
// JetStream data lives in t.TempDir() and the server listens on a random
// port, so parallel tests never collide. Server and connection are shut
// down through t.Cleanup.
//
// Parameters:
//   - t: Test context for failure reporting and cleanup
//
// Returns:
//   - *server.Server: The embedded server
//   - *nats.Conn: Connected client
//
// Example:
//
//	func TestKVStore(t *testing.T) {
//	    _, nc := seattest.StartEmbeddedNATS(t)
//	    kv := seattest.CreateJetStreamKV(t, nc, "history")
//	    store := history.NewKVStore(kv, "version")
//	}
func StartEmbeddedNATS(t testing.TB) (*server.Server, *nats.Conn) {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1, // random free port
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		t.Fatalf("Failed to create embedded NATS server: %v", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("Embedded NATS server not ready within timeout")
	}

	nc, err := nats.Connect(ns.ClientURL(),
		nats.Timeout(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(3),
	)
	if err != nil {
		ns.Shutdown()
		t.Fatalf("Failed to connect to embedded NATS server: %v", err)
	}

	// runs in reverse registration order
	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	return ns, nc
}

// NewJetStream returns a JetStream context over nc or fails the test.
func NewJetStream(t testing.TB, nc *nats.Conn) jetstream.JetStream {
	t.Helper()

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("Failed to get JetStream context: %v", err)
	}

	return js
}

// CreateJetStreamKV creates an in-memory KV bucket for tests.
//
// Parameters:
//   - t: Test context
//   - nc: Connection from StartEmbeddedNATS
//   - bucketName: Bucket name, unique per test server
//
// Returns:
//   - jetstream.KeyValue: Ready bucket
func CreateJetStreamKV(t testing.TB, nc *nats.Conn, bucketName string) jetstream.KeyValue {
	t.Helper()

	js := NewJetStream(t, nc)
	kv, err := js.CreateKeyValue(t.Context(), jetstream.KeyValueConfig{
		Bucket:      bucketName,
		Description: fmt.Sprintf("Test KV bucket: %s", bucketName),
		Storage:     jetstream.MemoryStorage,
		Replicas:    1,
	})
	if err != nil {
		t.Fatalf("Failed to create KV bucket %s: %v", bucketName, err)
	}

	return kv
}
