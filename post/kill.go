package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postKill is `kill(x)` (spec.md §4.6): havoc register x — its relation to
// everything but itself becomes {BT}, its relation to UNDEF becomes {MT},
// and its auxiliary registers reset to their zero values.
func postKill(cfg *verifcfg.Configuration, stmt *program.Kill, tid int) ([]*verifcfg.Configuration, error) {
	idx := mustVarIndex(cfg.Shape, stmt.Var, tid)
	out := cfg.Copy()
	s := out.Shape
	for i := 0; i < s.Size(); i++ {
		if i == idx {
			continue
		}
		s.Set(idx, i, relset.BT_)
	}
	s.Set(idx, idx, relset.EQ_)
	s.Set(idx, s.IndexUndef(), relset.MT_)
	out.ResetCell(idx)
	return []*verifcfg.Configuration{out}, nil
}
