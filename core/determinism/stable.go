// Package determinism provides ordering and hashing helpers so that the same
// inputs always produce the same bytes.
package determinism

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// SortedKeys returns the keys of a map in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RangeMapSorted iterates over a map in sorted key order
func RangeMapSorted[K cmp.Ordered, V any](m map[K]V, fn func(K, V) bool) {
	for _, k := range SortedKeys(m) {
		if !fn(k, m[k]) {
			break
		}
	}
}

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Fingerprint hashes the JSON encoding of the given values in order.
// encoding/json writes map keys sorted, so equal values hash equally.
func Fingerprint(values ...any) (ContentHash, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return ContentHash{}, err
		}
	}
	var out ContentHash
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters
func (h ContentHash) Short() string {
	return h.Hex()[:12]
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Short()
}
