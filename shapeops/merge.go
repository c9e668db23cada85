package shapeops

import (
	"fmt"

	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
)

// Merge computes the pointwise union of a non-empty list of equally-sized
// shapes, returning a fresh shape (the inputs are left untouched). Merge
// returns (nil, nil) for an empty list, mirroring the source's NULL-on-empty
// contract (spec.md §4.3).
func Merge(shapes []*shape.Shape) (*shape.Shape, error) {
	if len(shapes) == 0 {
		return nil, nil
	}
	result := shapes[0].Clone()
	n := result.Size()
	for _, s := range shapes[1:] {
		if s.Size() != n {
			return nil, fmt.Errorf("shapeops.Merge: %w", ErrDimensionMismatch)
		}
	}
	for row := 0; row < n; row++ {
		for col := row; col < n; col++ {
			merged := result.At(row, col)
			for _, s := range shapes[1:] {
				merged = relset.Union(merged, s.At(row, col))
			}
			result.Set(row, col, merged)
		}
	}
	return result, nil
}
