package shape

import "errors"

// Sentinel errors for index- and shape-validity failures. The accessors
// (At, Set, AddRelation, RemoveRelation) do not check indices, so an
// out-of-range index panics or reaches the wrong cell rather than returning
// ErrIndexOutOfRange; no function in this package returns
// ErrDimensionMismatch or ErrEmptyCell.
//
// ERROR PRIORITY: out-of-range index -> dimension mismatch -> empty cell.
var (
	// ErrIndexOutOfRange indicates a cell-term index is outside [0, Size()).
	ErrIndexOutOfRange = errors.New("shape: index out of range")

	// ErrDimensionMismatch indicates two shapes compared/merged have different sizes.
	ErrDimensionMismatch = errors.New("shape: dimension mismatch")

	// ErrEmptyCell indicates a relation-set cell was set to the empty set,
	// which must never happen to a maintained shape (spec.md §7 kind 2).
	ErrEmptyCell = errors.New("shape: cell relation set became empty")
)
