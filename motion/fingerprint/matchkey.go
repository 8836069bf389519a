package fingerprint

import "github.com/kinetic-merge/kinetic-merge/motion/element"

// PrefixBound is the bounded content prefix length PotentialMatchKey uses
// before falling back to a full content comparison (spec.md §4.4 names
// "first 10 elements" as an example bound).
const PrefixBound = 10

// PotentialMatchKey is "(fingerprint, impliedContent)" (spec.md §4.4),
// ordered lexicographically by fingerprint then by a bounded content
// prefix; full content is only compared when fingerprint and prefix tie.
type PotentialMatchKey[E comparable] struct {
	Fingerprint Hash
	content     []E
}

// NewPotentialMatchKey builds a key for a candidate window's content.
func NewPotentialMatchKey[E comparable](fp Hash, content []E) PotentialMatchKey[E] {
	return PotentialMatchKey[E]{Fingerprint: fp, content: content}
}

func (k PotentialMatchKey[E]) Content() []E { return k.content }

func (k PotentialMatchKey[E]) prefix() []E {
	n := PrefixBound
	if n > len(k.content) {
		n = len(k.content)
	}
	return k.content[:n]
}

// Compare orders two keys for the 3-way merge walk of §4.4: first by
// fingerprint, then by the bounded prefix under the scheme's total order.
func Compare[E comparable](scheme element.Scheme[E], a, b PotentialMatchKey[E]) int {
	if a.Fingerprint != b.Fingerprint {
		if a.Fingerprint < b.Fingerprint {
			return -1
		}
		return 1
	}
	return comparePrefix(scheme, a.prefix(), b.prefix())
}

func comparePrefix[E comparable](scheme element.Scheme[E], a, b []E) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if scheme.Equal(a[i], b[i]) {
			continue
		}
		if scheme.OrderedLess(a[i], b[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// SameContent reports whether two keys denote truly identical content: the
// fingerprint and bounded prefix must already agree (the caller is expected
// to have established this via Compare==0 during the synchronization walk),
// and this performs the final full-content comparison that breaks a
// fingerprint collision (spec.md §4.2, §4.4).
func SameContent[E comparable](scheme element.Scheme[E], a, b PotentialMatchKey[E]) bool {
	if a.Fingerprint != b.Fingerprint {
		return false
	}
	return element.ContentEqual(scheme, a.content, b.content)
}
