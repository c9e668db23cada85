package shapeops

import (
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
)

// MakeConcretisation iteratively removes every relation from every cell
// that has no consistent witness, until a fixpoint. It reports false (and
// leaves s in an unspecified, partially-reduced state) if some cell becomes
// empty, meaning s can never be a concretisation of its original self
// (spec.md §4.3).
func MakeConcretisation(s *shape.Shape) bool {
	n := s.Size()
	changed := true
	for changed {
		changed = false
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				for _, rel := range s.At(i, j).Relations() {
					if !ConsistentAt(s, i, j, rel) {
						s.RemoveRelation(i, j, rel)
						changed = true
					}
				}
				if s.At(i, j).None() {
					return false
				}
			}
		}
	}
	return true
}

// IsolatePartialConcretisation intersects s[row,col] with match, then runs
// MakeConcretisation on a clone. It gives (shape, true) on success or
// (nil, false) if no such consistent shape exists (spec.md §4.3). The input
// shape is never mutated.
func IsolatePartialConcretisation(s *shape.Shape, row, col int, match relset.RelSet) (*shape.Shape, bool) {
	newCell := relset.Intersection(s.At(row, col), match)
	if newCell.None() {
		return nil, false
	}
	result := s.Clone()
	result.Set(row, col, newCell)
	if !MakeConcretisation(result) {
		return nil, false
	}
	return result, true
}

// IsConcretisation reports whether con is a concretisation of abs: every
// cell of con is a non-empty subset of the corresponding cell of abs.
func IsConcretisation(con, abs *shape.Shape) bool {
	n := con.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if con.At(i, j).None() || !con.At(i, j).Subset(abs.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// needsSplitting reports whether a cell must be disambiguated further: a
// singleton never needs it, and the two "reachability without direction
// decided" pairs {↦,⇢} and {↤,⇠} are already maximal atoms for
// disambiguation purposes.
func needsSplitting(rs relset.RelSet) bool {
	switch rs.Count() {
	case 0:
		return false // unreachable in a maintained shape; treated as already decided
	case 1:
		return false
	case 2:
		return rs != relset.MT_GT && rs != relset.MF_GF
	default:
		return true
	}
}

// splitCell partitions rs into its maximal disambiguation atoms: {EQ},
// {MT,GT} ∩ rs, {MF,GF} ∩ rs, {BT}, keeping only the non-empty ones.
func splitCell(rs relset.RelSet) []relset.RelSet {
	result := make([]relset.RelSet, 0, 4)
	if rs.Contains(relset.EQ) {
		result = append(result, relset.EQ_)
	}
	if relset.HaveCommon(rs, relset.MT_GT) {
		result = append(result, relset.Intersection(rs, relset.MT_GT))
	}
	if relset.HaveCommon(rs, relset.MF_GF) {
		result = append(result, relset.Intersection(rs, relset.MF_GF))
	}
	if rs.Contains(relset.BT) {
		result = append(result, relset.BT_)
	}
	return result
}

// Disambiguate produces every maximal concretisation of row `row` of s: for
// each column c != row, shape[row,c] becomes one of the atoms {EQ},
// subset-of-{MT,GT}, subset-of-{MF,GF}, or {BT}. s itself is left untouched;
// every returned shape is a concretisation of s. Order is irrelevant and
// duplicates are allowed, matching the source's DFS-with-worklist algorithm
// (spec.md §4.3).
func Disambiguate(s *shape.Shape, row int) []*shape.Shape {
	type frame struct {
		col int
		s   *shape.Shape
	}
	var result []*shape.Shape
	stack := []frame{{0, s.Clone()}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		col := top.col
		cur := top.s
		n := cur.Size()

		switch {
		case col >= n:
			if MakeConcretisation(cur) {
				result = append(result, cur)
			}
			stack = stack[:len(stack)-1]

		case col == row:
			top.col++

		case !needsSplitting(cur.At(row, col)):
			top.col++

		default:
			// Drop inconsistent relations first to avoid unnecessary work.
			for _, rel := range cur.At(row, col).Relations() {
				if !ConsistentAt(cur, row, col, rel) {
					cur.RemoveRelation(row, col, rel)
				}
			}
			if cur.At(row, col).None() {
				// Dead end: this branch will never be a concretisation.
				stack = stack[:len(stack)-1]
				continue
			}

			top.col++
			if needsSplitting(cur.At(row, col)) {
				parts := splitCell(cur.At(row, col))
				last := parts[len(parts)-1]
				for _, part := range parts[:len(parts)-1] {
					clone := cur.Clone()
					clone.Set(row, col, part)
					stack = append(stack, frame{col + 1, clone})
				}
				cur.Set(row, col, last)
			}
		}
	}
	return result
}

// DisambiguateCell splits a single cell (row, col) into its maximal
// concretisation atoms, running concretisation on each resulting shape and
// discarding inconsistent branches (spec.md §4.3).
func DisambiguateCell(s *shape.Shape, row, col int) []*shape.Shape {
	if !needsSplitting(s.At(row, col)) {
		return []*shape.Shape{s.Clone()}
	}
	parts := splitCell(s.At(row, col))
	result := make([]*shape.Shape, 0, len(parts))
	for _, part := range parts {
		clone := s.Clone()
		clone.Set(row, col, part)
		if MakeConcretisation(clone) {
			result = append(result, clone)
		}
	}
	return result
}
