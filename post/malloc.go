package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shapeops"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postMalloc is `malloc(x)` (spec.md §4.6): it produces up to two
// successor configurations — a fresh cell whose next pointer is NULL
// (x ↦ NULL), with its relations to every other cell derived from that,
// and, when the configuration already carries a freed cell, a
// reused cell obtained by aliasing x onto REUSE and then splitting out the
// heaps where no shared variable still reaches x. Grounded on the
// source's post(const Cfg&, const Malloc&, tid).
func postMalloc(cfg *verifcfg.Configuration, stmt *program.Malloc, tid int) ([]*verifcfg.Configuration, error) {
	varIdx := mustVarIndex(cfg.Shape, stmt.Var, tid)

	var result []*verifcfg.Configuration

	fresh := cfg.Copy()
	s := fresh.Shape
	n := s.Size()
	for i := 0; i < n; i++ {
		if i == varIdx {
			continue
		}
		s.Set(varIdx, i, relset.BT_)
	}
	s.Set(varIdx, varIdx, relset.EQ_)
	s.Set(varIdx, s.IndexNull(), relset.MT_)
	deriveThroughAssignment(s, varIdx, s.IndexNull())

	markFreshCell(fresh, varIdx)
	result = append(result, fresh)

	if anyFreed(cfg) {
		reuse := cfg.Copy()
		rs := reuse.Shape
		for i := 0; i < rs.Size(); i++ {
			if i == varIdx {
				continue
			}
			rs.Set(varIdx, i, rs.At(rs.IndexReuse(), i))
		}
		rs.Set(varIdx, varIdx, relset.EQ_)
		rs.Set(varIdx, rs.IndexNull(), relset.MT_)

		var ok bool
		surviving := rs
		for i := rs.OffsetProgramVars(); i < rs.OffsetLocals(0); i++ {
			surviving, ok = shapeops.IsolatePartialConcretisation(surviving, i, varIdx, relset.MF_GF_BT)
			if !ok {
				surviving = nil
				break
			}
		}

		if surviving != nil {
			reuse.Shape = surviving
			markFreshCell(reuse, varIdx)
			result = append(result, reuse)
		}
	}

	return result, nil
}

// markFreshCell resets cell i's auxiliary registers to "just allocated":
// owned, both validity bits set, guards clear, freed/retired clear.
func markFreshCell(cfg *verifcfg.Configuration, i int) {
	cfg.Own[i] = true
	cfg.ValidPtr[i] = true
	cfg.ValidNext[i] = true
	cfg.Guard0[i] = false
	cfg.Guard1[i] = false
	cfg.Freed[i] = false
	cfg.Retired[i] = false
}

func anyFreed(cfg *verifcfg.Configuration) bool {
	for _, f := range cfg.Freed {
		if f {
			return true
		}
	}
	return false
}
