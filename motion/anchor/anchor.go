// Package anchor implements C7: anchored-insertion migration (spec.md
// §4.7). A relocation the motion evaluator (C6) confirmed already has its
// content in place at the destination, produced by the ordinary merge
// algebra alignment (C5); anchor's job is to suppress the now-redundant
// deletion move at the source so the rewriter (C8) reports the content as
// moved rather than rewriting it as a plain deletion next to an unrelated
// insertion.
package anchor

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/kinetic-merge/kinetic-merge/motion/evaluator"
	"github.com/kinetic-merge/kinetic-merge/motion/mergealgebra"
	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// runKey identifies one move by the run of content it covers: the path and
// the first contributing side's starting offset are enough to distinguish
// it from every other move on the same path, since moves never overlap.
type runKey struct {
	path  string
	side  section.Side
	start int
}

func keyOf[E comparable](path string, mv mergealgebra.Move[E]) (runKey, bool) {
	switch {
	case len(mv.Base) > 0:
		return runKey{path: path, side: section.Base, start: mv.Base[0].Start()}, true
	case len(mv.Left) > 0:
		return runKey{path: path, side: section.Left, start: mv.Left[0].Start()}, true
	case len(mv.Right) > 0:
		return runKey{path: path, side: section.Right, start: mv.Right[0].Start()}, true
	default:
		return runKey{}, false
	}
}

// Cache memoizes which runs have already been confirmed migrated, keyed by
// one run's path, side and start offset (runKey) and bounded by ristretto,
// as the rolling-hash factory cache is (motion/fingerprint).
type Cache struct {
	cache *ristretto.Cache[runKey, bool]
}

// NewCache builds an empty migration cache.
func NewCache() *Cache {
	c, err := ristretto.NewCache(&ristretto.Config[runKey, bool]{
		NumCounters: 4096,
		MaxCost:     1 << 16,
		BufferItems: 64,
	})
	if err != nil {
		panic("anchor: invalid migration cache configuration: " + err.Error())
	}
	return &Cache{cache: c}
}

func (c *Cache) markMigrated(k runKey) {
	c.cache.Set(k, true, 1)
	c.cache.Wait()
}

// WasMigrated reports whether a run has previously been confirmed migrated
// by an earlier Migrate call sharing this Cache.
func (c *Cache) WasMigrated(path string, side section.Side, start int) bool {
	v, ok := c.cache.Get(runKey{path: path, side: side, start: start})
	return ok && v
}

// Migrate drops each relocation's source deletion move from results,
// recording the suppression in cache so a repeated pass over the same tree
// recognizes the run without re-deriving it from the relocation list.
func Migrate[E comparable](results map[string]mergealgebra.Result[E], relocations []evaluator.Relocation[E], cache *Cache) map[string]mergealgebra.Result[E] {
	suppress := make(map[runKey]bool, len(relocations))
	for _, r := range relocations {
		if k, ok := keyOf(r.FromPath, r.From); ok {
			suppress[k] = true
			cache.markMigrated(k)
		}
	}

	out := make(map[string]mergealgebra.Result[E], len(results))
	for path, res := range results {
		var kept []mergealgebra.Move[E]
		hasConflict := false
		for _, mv := range res.Moves {
			if k, ok := keyOf(path, mv); ok && suppress[k] {
				continue
			}
			kept = append(kept, mv)
			if mv.Kind.IsConflict() {
				hasConflict = true
			}
		}
		out[path] = mergealgebra.Result[E]{Moves: kept, HasConflict: hasConflict}
	}
	return out
}
