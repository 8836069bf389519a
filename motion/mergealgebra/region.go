package mergealgebra

import (
	"github.com/kinetic-merge/kinetic-merge/motion/element"
)

// classifyContent decides the Kind of one merged region from what each side
// actually contributed to it: hasLeft/hasRight report whether that side had
// any change at all (even an empty, pure-deletion one) touching the region;
// leftContent/rightContent are the concatenated, match-filtered content each
// side contributed (excluding whatever a matched anchor inside the region
// already accounts for). This generalizes
// modules/diferenco/merge_new.go's finalizeRegion/isFalseConflict from flat
// line content to per-side "genuine new content", which a whole-region
// flattened comparison can't express once a region straddles a pairwise
// (not all-sides) match.
func classifyContent[E comparable](scheme element.Scheme[E], hasLeft, hasRight bool, baseContent, leftContent, rightContent []E) Kind {
	baseEmpty := len(baseContent) == 0
	leftEmpty := len(leftContent) == 0
	rightEmpty := len(rightContent) == 0

	switch {
	case hasLeft && !hasRight:
		switch {
		case baseEmpty:
			return LeftInsertion
		case leftEmpty:
			return LeftDeletion
		default:
			return LeftEdit
		}
	case hasRight && !hasLeft:
		switch {
		case baseEmpty:
			return RightInsertion
		case rightEmpty:
			return RightDeletion
		default:
			return RightEdit
		}
	default:
		sameSidesAgree := element.ContentEqual(scheme, leftContent, rightContent)
		switch {
		case baseEmpty && sameSidesAgree:
			return CoincidentInsertion
		case baseEmpty:
			return EditConflict
		case leftEmpty && rightEmpty:
			return CoincidentDeletion
		case sameSidesAgree:
			return CoincidentEdit
		case leftEmpty != rightEmpty:
			return DeletionEditConflict
		default:
			return EditConflict
		}
	}
}
