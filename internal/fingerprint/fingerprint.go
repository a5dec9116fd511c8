// Package fingerprint computes stable 64-bit fingerprints used as model ids.
package fingerprint

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// key is fixed so fingerprints are stable across runs and processes.
var key = []byte("oasmodels-context-fingerprint-k1")

// Sum64 hashes the given parts. Each part is length-prefixed so that
// ("ab", "c") and ("a", "bc") do not collide.
func Sum64(parts ...string) uint64 {
	h, err := highwayhash.New64(key)
	if err != nil {
		// key is a constant of the required length
		panic(fmt.Sprintf("fingerprint: %v", err))
	}
	for _, p := range parts {
		_, _ = fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return h.Sum64()
}

// String returns Sum64 formatted as 16 lowercase hex digits.
func String(parts ...string) string {
	return fmt.Sprintf("%016x", Sum64(parts...))
}
