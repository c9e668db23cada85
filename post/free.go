package post

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/shapeops"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postFree is `free(x)`/`retire(x)` (spec.md §4.6): x must not currently be
// guarded by either hazard-pointer slot, and must not be shared-reachable —
// isolated via extractSharedUnreachable, then split on every pairwise
// equality so each successor configuration has a definite answer to
// "which cells alias x". A retire fires the SMR observer's free event. A
// split in which x aliases REUSE is discarded when REUSE is not retired;
// otherwise REUSE moves from retired to freed. Grounded on the source's
// post_free/extract_shared_unreachable/split_shape_for_eq.
func postFree(cfg *verifcfg.Configuration, stmt *program.Free, tid int) ([]*verifcfg.Configuration, error) {
	varIdx := mustVarIndex(cfg.Shape, stmt.Var, tid)

	if cfg.Guard0[varIdx] || cfg.Guard1[varIdx] {
		return nil, nil
	}

	unreachable, ok := extractSharedUnreachable(cfg.Shape, varIdx)
	if !ok {
		return nil, nil
	}

	splits := splitShapeForEQ(unreachable, 0, unreachable.Size())

	var result []*verifcfg.Configuration
	for _, s := range splits {
		out := cfg.Copy()
		out.Shape = s

		aliasedReuse := false
		invalid := false
		for j := 0; j < s.Size(); j++ {
			if !s.At(varIdx, j).Contains(relset.EQ) {
				continue
			}
			out.ValidPtr[j] = false
			out.ValidNext[j] = false
			if stmt.Retire {
				out.State1 = out.State1.Next(observer.MkFree(false, observer.DataValue(0)))
				if out.State1.IsMarked() {
					invalid = true
					break
				}
				if out.State1.IsFinal() {
					return nil, ErrSMRViolation
				}
			}
			if j == s.IndexReuse() {
				if !out.Retired[j] {
					aliasedReuse = true
					break
				}
				out.Freed[j] = true
				out.Retired[j] = false
			}
		}
		if aliasedReuse || invalid {
			continue
		}
		if stmt.Retire {
			out.Retired[varIdx] = true
		}
		result = append(result, out)
	}

	return result, nil
}

// extractSharedUnreachable isolates the subshape where var is not NULL,
// not UNDEF, not a direct or transitive successor of anything, and not
// reachable from any shared (global) variable.
func extractSharedUnreachable(s *shape.Shape, varIdx int) (*shape.Shape, bool) {
	cur, ok := shapeops.IsolatePartialConcretisation(s, varIdx, s.IndexNull(), relset.MT_GT_BT)
	if !ok {
		return nil, false
	}
	cur, ok = shapeops.IsolatePartialConcretisation(cur, varIdx, s.IndexUndef(), relset.MT_GT_BT)
	if !ok {
		return nil, false
	}
	for i := s.OffsetProgramVars(); i < s.OffsetLocals(0); i++ {
		cur, ok = shapeops.IsolatePartialConcretisation(cur, i, varIdx, relset.MF_GF_BT)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// splitShapeForEQ exhaustively case-splits s over the half-open index
// range [begin, end) into shapes where every pair in range has a single
// definite answer to "equal or not", discarding inconsistent branches.
func splitShapeForEQ(s *shape.Shape, begin, end int) []*shape.Shape {
	result := []*shape.Shape{s}
	for i := begin; i < end; i++ {
		for j := i + 1; j < end; j++ {
			var next []*shape.Shape
			for _, cand := range result {
				eq, eqOK := shapeops.IsolatePartialConcretisation(cand, i, j, relset.EQ_)
				neq, neqOK := shapeops.IsolatePartialConcretisation(cand, i, j, relset.MT_GT_MF_GF_BT)
				if eqOK {
					next = append(next, eq)
				}
				if neqOK {
					next = append(next, neq)
				}
			}
			result = next
		}
	}
	return result
}
