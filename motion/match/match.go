// Package match implements the Match sum type of spec.md §3: a link
// between Sections on two or three sides, one of AllSides, BaseAndLeft,
// BaseAndRight, LeftAndRight.
package match

import (
	"fmt"

	"github.com/kinetic-merge/kinetic-merge/motion/section"
)

// Kind discriminates the four Match variants. Implemented as a tagged union
// (spec.md §9: "implement as tagged unions rather than open class
// hierarchies") rather than an interface hierarchy.
type Kind uint8

const (
	AllSides Kind = iota
	BaseAndLeft
	BaseAndRight
	LeftAndRight
)

func (k Kind) String() string {
	switch k {
	case AllSides:
		return "AllSides"
	case BaseAndLeft:
		return "BaseAndLeft"
	case BaseAndRight:
		return "BaseAndRight"
	case LeftAndRight:
		return "LeftAndRight"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Match is a Section-level link across two or three sides. Exactly the
// fields relevant to Kind are populated; accessors report absence via a
// bool rather than relying on a zero Section, since a zero-value Section
// is itself a legitimate (empty, side=base) section.
type Match[E comparable] struct {
	kind  Kind
	base  *section.Section[E]
	left  *section.Section[E]
	right *section.Section[E]
}

// NewAllSides builds an AllSides(base, left, right) match.
func NewAllSides[E comparable](base, left, right section.Section[E]) Match[E] {
	return Match[E]{kind: AllSides, base: &base, left: &left, right: &right}
}

// NewBaseAndLeft builds a BaseAndLeft(base, left) match.
func NewBaseAndLeft[E comparable](base, left section.Section[E]) Match[E] {
	return Match[E]{kind: BaseAndLeft, base: &base, left: &left}
}

// NewBaseAndRight builds a BaseAndRight(base, right) match.
func NewBaseAndRight[E comparable](base, right section.Section[E]) Match[E] {
	return Match[E]{kind: BaseAndRight, base: &base, right: &right}
}

// NewLeftAndRight builds a LeftAndRight(left, right) match.
func NewLeftAndRight[E comparable](left, right section.Section[E]) Match[E] {
	return Match[E]{kind: LeftAndRight, left: &left, right: &right}
}

func (m Match[E]) Kind() Kind { return m.kind }

func (m Match[E]) Base() (section.Section[E], bool) {
	if m.base == nil {
		return section.Section[E]{}, false
	}
	return *m.base, true
}

func (m Match[E]) Left() (section.Section[E], bool) {
	if m.left == nil {
		return section.Section[E]{}, false
	}
	return *m.left, true
}

func (m Match[E]) Right() (section.Section[E], bool) {
	if m.right == nil {
		return section.Section[E]{}, false
	}
	return *m.right, true
}

// Sections returns every Section participating in this match (two or
// three, depending on Kind).
func (m Match[E]) Sections() []section.Section[E] {
	out := make([]section.Section[E], 0, 3)
	if m.base != nil {
		out = append(out, *m.base)
	}
	if m.left != nil {
		out = append(out, *m.left)
	}
	if m.right != nil {
		out = append(out, *m.right)
	}
	return out
}

// Dominant returns the canonical representative Section used for
// equivalence (spec.md §3): AllSides -> base, BaseAndLeft -> left,
// BaseAndRight -> right, LeftAndRight -> left (breaking symmetry).
func (m Match[E]) Dominant() section.Section[E] {
	switch m.kind {
	case AllSides:
		return *m.base
	case BaseAndLeft:
		return *m.left
	case BaseAndRight:
		return *m.right
	case LeftAndRight:
		return *m.left
	default:
		panic("match: invalid kind")
	}
}

// Has reports whether sec (compared by Section identity) participates in m.
func (m Match[E]) Has(sec section.Section[E]) bool {
	for _, s := range m.Sections() {
		if s.Equal(sec) {
			return true
		}
	}
	return false
}

// SectionOn returns m's section on the given side, if any.
func (m Match[E]) SectionOn(side section.Side) (section.Section[E], bool) {
	switch side {
	case section.Base:
		return m.Base()
	case section.Left:
		return m.Left()
	case section.Right:
		return m.Right()
	default:
		return section.Section[E]{}, false
	}
}
