package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/shapeops"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postAssign dispatches `lhs = rhs` on whether each side is a plain
// variable or a field selector, mirroring post_assignment_pointer's
// four-way delegation in the source (spec.md §4.6).
func postAssign(cfg *verifcfg.Configuration, stmt *program.Assign, tid int) ([]*verifcfg.Configuration, error) {
	lhsSel, lhsIsSel := stmt.LHS.(*program.Selector)
	rhsSel, rhsIsSel := stmt.RHS.(*program.Selector)

	switch {
	case !lhsIsSel && !rhsIsSel:
		lhsIdx := mustVarIndex(cfg.Shape, stmt.LHS, tid)
		rhsIdx := mustVarIndex(cfg.Shape, stmt.RHS, tid)
		return assignVarVar(cfg, lhsIdx, rhsIdx)

	case !lhsIsSel && rhsIsSel:
		if rhsSel.Field() != program.FieldNext {
			return nil, ErrSelectorSelector
		}
		lhsIdx := mustVarIndex(cfg.Shape, stmt.LHS, tid)
		rhsIdx := mustVarIndex(cfg.Shape, rhsSel.Var(), tid)
		return assignVarNext(cfg, lhsIdx, rhsIdx)

	case lhsIsSel && !rhsIsSel:
		if lhsSel.Field() != program.FieldNext {
			return nil, ErrSelectorSelector
		}
		lhsIdx := mustVarIndex(cfg.Shape, lhsSel.Var(), tid)
		rhsIdx := mustVarIndex(cfg.Shape, stmt.RHS, tid)
		return assignNextVar(cfg, lhsIdx, rhsIdx)

	default:
		return nil, ErrSelectorSelector
	}
}

// assignVarVar is `lhs = rhs`: copy rhs's row into lhs, then pin
// shape[lhs,rhs] = {EQ}.
func assignVarVar(cfg *verifcfg.Configuration, lhsIdx, rhsIdx int) ([]*verifcfg.Configuration, error) {
	out := cfg.Copy()
	if lhsIdx != rhsIdx {
		n := out.Shape.Size()
		for i := 0; i < n; i++ {
			if i == lhsIdx {
				continue
			}
			out.Shape.Set(lhsIdx, i, out.Shape.At(rhsIdx, i))
		}
		out.Shape.Set(lhsIdx, rhsIdx, relset.EQ_)
	}
	out.Own[rhsIdx] = false
	return []*verifcfg.Configuration{out}, nil
}

// assignVarNext is `lhs = rhs.next`: require rhs to be dereferenceable,
// initialise lhs's relation to NULL/UNDEF, impose shape[rhs,lhs] = {MT},
// and prune every inconsistent relation on lhs's row to a fixpoint
// (spec.md §4.6).
func assignVarNext(cfg *verifcfg.Configuration, lhsIdx, rhsIdx int) ([]*verifcfg.Configuration, error) {
	if err := checkPtrAccess(cfg.Shape, rhsIdx); err != nil {
		return nil, err
	}
	if lhsIdx == rhsIdx {
		return nil, ErrSelectorSelector
	}
	out := cfg.Copy()
	s := out.Shape

	s.Set(lhsIdx, s.IndexNull(), relset.EQ_MT_GT_BT)
	s.Set(lhsIdx, s.IndexUndef(), relset.MT_GT_BT)
	for i := s.OffsetVars(); i < s.Size(); i++ {
		s.Set(lhsIdx, i, relset.PRED)
	}
	s.Set(rhsIdx, lhsIdx, relset.MT_)

	for {
		changed := false
		for i := 0; i < s.Size(); i++ {
			if i == rhsIdx {
				continue
			}
			for _, r := range s.At(lhsIdx, i).Relations() {
				if !shapeops.ConsistentAt(s, lhsIdx, i, r) {
					s.RemoveRelation(lhsIdx, i, r)
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return []*verifcfg.Configuration{out}, nil
}

// assignNextVar is `lhs.next = rhs`: disambiguate lhs's row, reject any
// disambiguation that would close a cycle back to lhs, remove lhs's
// current successors, then derive every pair (u,v) with u~lhs in
// {EQ,MT,GT} and rhs~v in {EQ,MT,GT} via the lookup table of spec.md §4.6,
// and merge the surviving disambiguations.
func assignNextVar(cfg *verifcfg.Configuration, lhsIdx, rhsIdx int) ([]*verifcfg.Configuration, error) {
	if err := checkPtrAccess(cfg.Shape, lhsIdx); err != nil {
		return nil, err
	}

	disambiguated := shapeops.Disambiguate(cfg.Shape, lhsIdx)
	var kept []*shape.Shape
	for _, s := range disambiguated {
		if wouldCycle(s, rhsIdx, lhsIdx) {
			continue
		}
		shapeops.RemoveSuccessors(s, lhsIdx)
		deriveThroughAssignment(s, lhsIdx, rhsIdx)
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	merged, err := shapeops.Merge(kept)
	if err != nil {
		return nil, err
	}
	out := cfg.Copy()
	out.Shape = merged
	out.Own[rhsIdx] = false
	return []*verifcfg.Configuration{out}, nil
}

// wouldCycle reports whether rhsIdx already reaches (or equals) lhsIdx in
// s, meaning closing lhs.next = rhs would create a cycle (spec.md §4.6's
// "verify there is no closed cycle to be created").
func wouldCycle(s *shape.Shape, rhsIdx, lhsIdx int) bool {
	return relset.HaveCommon(s.At(rhsIdx, lhsIdx), relset.EQ_MT_GT)
}

// deriveThroughAssignment computes shape[u,v] for every predecessor u of
// lhsIdx (u~lhs in {EQ,MT,GT}) and successor v of rhsIdx (rhs~v in
// {EQ,MT,GT}): EQ on both sides gives MT; either side carrying {MT,GT}
// gives GT; either side carrying {MF,GF,BT} gives BT (spec.md §4.6).
func deriveThroughAssignment(s *shape.Shape, lhsIdx, rhsIdx int) {
	n := s.Size()
	for u := 0; u < n; u++ {
		ul := s.At(u, lhsIdx)
		if !relset.HaveCommon(ul, relset.EQ_MT_GT) {
			continue
		}
		for v := 0; v < n; v++ {
			rv := s.At(rhsIdx, v)
			if !relset.HaveCommon(rv, relset.EQ_MT_GT) {
				continue
			}
			var result relset.RelSet
			if ul.Contains(relset.EQ) && rv.Contains(relset.EQ) {
				result = relset.Union(result, relset.MT_)
			}
			if relset.HaveCommon(ul, relset.MT_GT) || relset.HaveCommon(rv, relset.MT_GT) {
				result = relset.Union(result, relset.GT_)
			}
			if relset.HaveCommon(ul, relset.MF_GF_BT) || relset.HaveCommon(rv, relset.MF_GF_BT) {
				result = relset.Union(result, relset.BT_)
			}
			s.Set(u, v, result)
		}
	}
}
