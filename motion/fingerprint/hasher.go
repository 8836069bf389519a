package fingerprint

import (
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/kinetic-merge/kinetic-merge/motion/element"
)

// XXHashElement builds an ElementHasher from a content funnel using xxhash,
// the fast non-cryptographic hash ristretto itself uses internally for key
// fingerprinting; it is the natural choice for the hot-path per-element
// hash that feeds the rolling window.
func XXHashElement[E comparable](scheme element.Scheme[E]) ElementHasher[E] {
	return func(e E) uint64 {
		return xxhash.Sum64(scheme.FunnelOf(e))
	}
}

// ContentDigest computes a BLAKE3 digest over a full element sequence,
// grounded in the teacher's modules/plumbing.Hash (all content-addressing
// in antgroup/hugescm is BLAKE3-based). The motion evaluator (C6) uses it to
// group deletions and insertions by content; PotentialMatchKey's
// full-content comparison (SameContent) compares elements directly instead.
func ContentDigest[E comparable](scheme element.Scheme[E], content []E) [32]byte {
	h := blake3.New()
	for _, e := range content {
		b := scheme.FunnelOf(e)
		var length [8]byte
		putUvarint(length[:], uint64(len(b)))
		_, _ = h.Write(length[:])
		_, _ = h.Write(b)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// putUvarint writes a fixed 8-byte little-endian length prefix. A length
// prefix (rather than a separator byte) avoids ambiguity between e.g.
// ["ab","c"] and ["a","bc"] when elements are concatenated for hashing.
func putUvarint(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v)
		v >>= 8
	}
}
