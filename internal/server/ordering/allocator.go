// Package ordering computes position changes for the per-category ordered
// lists of grocery entries. It is pure planning: given the current shape of
// the affected categories, it produces the position shifts and the final
// placement that the repositories then apply inside one transaction.
//
// Invariants the plans preserve:
//   - positions of active entries form a dense 1..N sequence per category;
//   - no two active entries in a category ever share a position;
//   - removing an entry (archive, delete, move away) closes its gap,
//     inserting one opens a gap or appends.
package ordering

import (
	"fmt"

	"github.com/theryangeary/gl/internal/common"
)

// Shift is one contiguous position adjustment among the active entries of a
// category. MaxPosition == 0 means the range is unbounded above.
type Shift struct {
	CategoryID  int64
	MinPosition int64 // inclusive
	MaxPosition int64 // inclusive; 0 = no upper bound
	Delta       int64 // +1 opens a gap, -1 closes one
}

// Placement is the final location for the entry the plan is about.
type Placement struct {
	CategoryID int64
	Position   int64
}

// Plan is an atomic set of position updates. Shifts must be applied in the
// same transaction as the subject entry's placement; with the position
// uniqueness constraint deferred, their order does not matter.
type Plan struct {
	Shifts    []Shift
	Placement Placement
	NoOp      bool
}

// PlanInsert places a new entry into a category that currently ends at
// maxPos (0 when empty). A nil target appends. An explicit target beyond
// the end clamps to append; target <= 0 is a validation error.
func PlanInsert(categoryID, maxPos int64, target *int64) (Plan, error) {
	if target == nil || *target > maxPos {
		return Plan{Placement: Placement{CategoryID: categoryID, Position: maxPos + 1}}, nil
	}
	if err := validateTarget(*target); err != nil {
		return Plan{}, err
	}
	return Plan{
		Shifts:    []Shift{{CategoryID: categoryID, MinPosition: *target, Delta: +1}},
		Placement: Placement{CategoryID: categoryID, Position: *target},
	}, nil
}

// PlanMove relocates an active entry within its own category, from current
// to target. The move behaves as an atomic remove-then-insert: intervening
// entries shift by one so the sequence stays dense. A target at or beyond
// the end clamps to the last position; moving to the current position is a
// no-op.
func PlanMove(categoryID, current, maxPos int64, target int64) (Plan, error) {
	if err := validateTarget(target); err != nil {
		return Plan{}, err
	}
	if target > maxPos {
		target = maxPos
	}
	place := Placement{CategoryID: categoryID, Position: target}
	switch {
	case target == current:
		return Plan{Placement: place, NoOp: true}, nil
	case target > current:
		// Moving down the list: everything between slides up by one.
		return Plan{
			Shifts:    []Shift{{CategoryID: categoryID, MinPosition: current + 1, MaxPosition: target, Delta: -1}},
			Placement: place,
		}, nil
	default:
		// Moving up the list: everything between slides down by one.
		return Plan{
			Shifts:    []Shift{{CategoryID: categoryID, MinPosition: target, MaxPosition: current - 1, Delta: +1}},
			Placement: place,
		}, nil
	}
}

// PlanTransfer moves an active entry from srcCategory (where it sits at
// current) into dstCategory, which ends at dstMaxPos. The source gap closes;
// the destination opens a gap at target, or appends when target is nil or
// past the end.
func PlanTransfer(srcCategory, current, dstCategory, dstMaxPos int64, target *int64) (Plan, error) {
	if srcCategory == dstCategory {
		return Plan{}, fmt.Errorf("%w: transfer within one category", common.ErrorValidation)
	}
	shifts := []Shift{{CategoryID: srcCategory, MinPosition: current + 1, Delta: -1}}

	pos := dstMaxPos + 1
	if target != nil {
		if err := validateTarget(*target); err != nil {
			return Plan{}, err
		}
		if *target <= dstMaxPos {
			pos = *target
			shifts = append(shifts, Shift{CategoryID: dstCategory, MinPosition: pos, Delta: +1})
		}
	}
	return Plan{
		Shifts:    shifts,
		Placement: Placement{CategoryID: dstCategory, Position: pos},
	}, nil
}

// PlanRemoval closes the gap left by an active entry at current when it is
// archived or deleted. Entries behind it renumber down by one, keeping the
// active sequence dense.
func PlanRemoval(categoryID, current int64) Plan {
	return Plan{
		Shifts: []Shift{{CategoryID: categoryID, MinPosition: current + 1, Delta: -1}},
	}
}

func validateTarget(target int64) error {
	if target <= 0 {
		return fmt.Errorf("%w: position must be positive, got %d", common.ErrorValidation, target)
	}
	return nil
}
