// Package fingerprint implements C2: an incremental rolling hash over a
// sliding window of element hashes (spec.md §4.2), plus the
// PotentialMatchKey ordering used by match discovery (§4.4) to synchronize
// fingerprints across the three sides.
package fingerprint

import (
	"github.com/dgraph-io/ristretto/v2"
)

// Hash is the rolling fingerprint's output; spec.md calls it "bigint-like"
// to allow for collisions, which are expected and broken by content
// comparison rather than by widening the hash.
type Hash uint64

// rollingBase is the polynomial multiplier; arithmetic is carried out in
// wraparound uint64 (an implicit modulus of 2^64), the conventional choice
// for a Rabin-Karp-style rolling hash.
const rollingBase uint64 = 1000003

// ElementHasher reduces one element to a fixed-width value that feeds the
// rolling window ("a sliding window of element hashes", spec.md §4.2).
type ElementHasher[E any] func(e E) uint64

// powMod computes base^n, relying on uint64 wraparound as the modulus.
func powMod(base uint64, n int) uint64 {
	result := uint64(1)
	b := base
	for n > 0 {
		if n&1 == 1 {
			result *= b
		}
		b *= b
		n >>= 1
	}
	return result
}

type rollerParams struct {
	windowSize int
	basePow    uint64 // rollingBase^(windowSize-1), used to remove the outgoing element
}

// Factory produces Rollers for a fixed element-hashing scheme. Per-window-size
// parameters are memoized in a bounded, write-once/read-many cache (spec.md
// §5: "A bounded cache keyed by window size holds rolling-hash factory
// instances... No invalidation"), backed by ristretto as the teacher uses
// for its object caches (modules/zeta/backend/odb.go).
type Factory[E any] struct {
	hash  ElementHasher[E]
	cache *ristretto.Cache[int, *rollerParams]
}

// NewFactory builds a Factory around an element hasher.
func NewFactory[E any](hash ElementHasher[E]) *Factory[E] {
	cache, err := ristretto.NewCache(&ristretto.Config[int, *rollerParams]{
		NumCounters: 1024,
		MaxCost:     1 << 16,
		BufferItems: 64,
	})
	if err != nil {
		// ristretto only fails on invalid configuration; these constants are
		// fixed and known-good, so this would be a programmer error.
		panic("fingerprint: invalid rolling-hash cache configuration: " + err.Error())
	}
	return &Factory[E]{hash: hash, cache: cache}
}

func (f *Factory[E]) paramsFor(windowSize int) *rollerParams {
	if v, ok := f.cache.Get(windowSize); ok {
		return v
	}
	p := &rollerParams{windowSize: windowSize, basePow: powMod(rollingBase, windowSize-1)}
	f.cache.Set(windowSize, p, 1)
	f.cache.Wait()
	return p
}

// NewRoller returns a Roller configured for the given window size, measured
// in elements (spec.md: "windowSize = elementHashBytes x windowSizeInElements";
// this implementation folds elementHashBytes into the fixed uint64 width of
// ElementHasher and works directly in element counts).
func (f *Factory[E]) NewRoller(windowSize int) *Roller[E] {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &Roller[E]{
		hash:   f.hash,
		params: f.paramsFor(windowSize),
		ring:   make([]uint64, windowSize),
	}
}

// Roller computes the rolling fingerprint as elements are pushed one at a
// time. Push returns (fingerprint, true) once the window has filled; before
// that it returns (0, false).
//
// Guarantee (spec.md §4.2): two Rollers of the same window size that are fed
// the same sequence of elements compute identical fingerprints at every
// point past the first full window, regardless of construction order —
// the rolling formula depends only on the current window's contents.
type Roller[E any] struct {
	hash   ElementHasher[E]
	params *rollerParams
	ring   []uint64
	filled int
	pos    int
	acc    uint64
}

// Push incorporates one more element into the sliding window.
func (r *Roller[E]) Push(e E) (Hash, bool) {
	h := r.hash(e)
	if r.filled < len(r.ring) {
		r.acc = r.acc*rollingBase + h
		r.ring[r.pos] = h
		r.pos = (r.pos + 1) % len(r.ring)
		r.filled++
		if r.filled < len(r.ring) {
			return 0, false
		}
		return Hash(r.acc), true
	}
	outgoing := r.ring[r.pos]
	r.acc = (r.acc-outgoing*r.params.basePow)*rollingBase + h
	r.ring[r.pos] = h
	r.pos = (r.pos + 1) % len(r.ring)
	return Hash(r.acc), true
}

// WindowSize reports the configured window size in elements.
func (r *Roller[E]) WindowSize() int { return len(r.ring) }

// Of computes the fingerprint of a single fixed-size window directly,
// without incremental state; used where callers already have the full
// element slice for a candidate section rather than streaming it.
func Of[E any](hash ElementHasher[E], window []E) Hash {
	var acc uint64
	for _, e := range window {
		acc = acc*rollingBase + hash(e)
	}
	return Hash(acc)
}
