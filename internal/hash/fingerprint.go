// Package hash computes stable fingerprints of assignment sets.
package hash

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/seatplan/types"
)

// Fingerprint returns an order-insensitive 64-bit XXH3 hash of an assignment set.
//
// Only the (participant, table) pairs contribute; denormalized fields are
// derived data and do not change the fingerprint. Repeated rows do count,
// so a set with a duplicate row differs from the same set without it.
//
// Parameters:
//   - assignments: Assignment set to hash (not modified)
//
// Returns:
//   - uint64: Fingerprint; 0 for an empty set
//
// Example:
//
//	if hash.Fingerprint(draft) == hash.Fingerprint(confirmed) {
//	    return ErrNothingToCommit
//	}
func Fingerprint(assignments []types.Assignment) uint64 {
	if len(assignments) == 0 {
		return 0
	}

	pairs := make([][2]string, len(assignments))
	for i, a := range assignments {
		pairs[i] = [2]string{a.ParticipantID, a.TableID}
	}
	slices.SortFunc(pairs, func(a, b [2]string) int {
		if c := strings.Compare(a[0], b[0]); c != 0 {
			return c
		}

		return strings.Compare(a[1], b[1])
	})

	// Fold each ID separately, using the previous hash as the seed, so
	// ("ab", "c") and ("a", "bc") hash differently without a separator.
	var lb [8]byte
	binary.LittleEndian.PutUint64(lb[:], uint64(len(pairs))) //nolint:gosec
	h := xxh3.Hash(lb[:])
	for _, p := range pairs {
		h = xxh3.HashStringSeed(p[0], h)
		h = xxh3.HashStringSeed(p[1], h)
	}

	return h
}

// Equal reports whether two assignment sets hold the same (participant, table) pairs.
func Equal(a, b []types.Assignment) bool {
	return len(a) == len(b) && Fingerprint(a) == Fingerprint(b)
}
