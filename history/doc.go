// Package history records committed seatings as append-only versions.
//
// Every commit of a draft produces one types.Version holding the full
// assignment list and its diff against the previous version. Version numbers
// start at 1 and increase by one per event. Stores never mutate or delete a
// version.
//
// Two stores are provided:
//   - MemoryStore: process-local, for tests and single-process tools
//   - KVStore: NATS JetStream KeyValue, one key per version
package history
