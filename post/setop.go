package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postSetOp is one of the three logical-data-set statement forms (spec.md
// §4.5): add a cell, union two sets, or clear a set. Grounded on the
// source's setout.hpp, simplified to this implementation's plain
// map[int]bool set representation.
func postSetOp(cfg *verifcfg.Configuration, stmt *program.SetOp, tid int) ([]*verifcfg.Configuration, error) {
	out := cfg.Copy()
	switch stmt.Op {
	case program.SetAdd:
		idx := mustVarIndex(out.Shape, stmt.Arg, tid)
		out.Sets[stmt.Target][idx] = true

	case program.SetCombine:
		for k := range out.Sets[stmt.Combine] {
			out.Sets[stmt.Target][k] = true
		}

	case program.SetClear:
		out.Sets[stmt.Target] = map[int]bool{}
	}
	return []*verifcfg.Configuration{out}, nil
}
