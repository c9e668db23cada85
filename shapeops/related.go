package shapeops

import (
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
)

// GetRelated gives every cell-term index t such that x~t holds for some
// relation ~ in anyOf.
func GetRelated(s *shape.Shape, x int, anyOf relset.RelSet) []int {
	result := make([]int, 0, s.Size())
	for i := 0; i < s.Size(); i++ {
		if relset.HaveCommon(s.At(x, i), anyOf) {
			result = append(result, i)
		}
	}
	return result
}

// RelateAll relates every pair (u, v) with u in vec1 and v in vec2 by rel:
// it removes BT and adds rel, i.e. it sharpens an "unrelated" guess into a
// definite relation.
func RelateAll(s *shape.Shape, vec1, vec2 []int, rel relset.Rel) {
	for _, u := range vec1 {
		for _, v := range vec2 {
			s.RemoveRelation(u, v, relset.BT)
			s.AddRelation(u, v, rel)
		}
	}
}

// ExtendAll adds rel to every pair (u, v) with u in vec1 and v in vec2,
// without removing any existing relation.
func ExtendAll(s *shape.Shape, vec1, vec2 []int, rel relset.Rel) {
	for _, u := range vec1 {
		for _, v := range vec2 {
			s.AddRelation(u, v, rel)
		}
	}
}

// RemoveSuccessors removes every relation between the predecessors of x
// (w.r.t. {=,↤,⇠}) and the successors of x (w.r.t. {↦,⇢}), replacing them
// with {BT}. This is the first step of the x.next = y assignment (spec.md
// §4.6), before re-relating through the new successor y.
func RemoveSuccessors(s *shape.Shape, x int) {
	successors := GetRelated(s, x, relset.MT_GT)
	predecessors := GetRelated(s, x, relset.EQ_MF_GF)
	for _, u := range successors {
		for _, v := range predecessors {
			s.Set(v, u, relset.BT_)
		}
	}
}
