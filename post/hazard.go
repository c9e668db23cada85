package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postHazard is a hazard-pointer set or release on one guard slot (spec.md
// §4.6). A set targets a fresh local: it is forbidden against a cell this
// thread still owns (the source's "Owned cells must not be guarded"
// invariant). A release simply clears the slot. Grounded on the source's
// hp.cpp smrpost dispatch, simplified to this implementation's per-variable
// boolean guard registers rather than per-cell SMR automaton states.
func postHazard(cfg *verifcfg.Configuration, stmt *program.HazardOp, tid int) ([]*verifcfg.Configuration, error) {
	varIdx := mustVarIndex(cfg.Shape, stmt.Var, tid)
	out := cfg.Copy()

	if stmt.Release {
		setGuard(out, stmt.Guard, varIdx, false)
		return []*verifcfg.Configuration{out}, nil
	}

	if out.Own[varIdx] {
		return nil, ErrOwnedGuarded
	}
	setGuard(out, stmt.Guard, varIdx, true)
	return []*verifcfg.Configuration{out}, nil
}

func setGuard(cfg *verifcfg.Configuration, guard, idx int, value bool) {
	if guard == 0 {
		cfg.Guard0[idx] = value
	} else {
		cfg.Guard1[idx] = value
	}
}
