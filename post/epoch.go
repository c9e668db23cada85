package post

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postQuiescent is SMR "enter"/"leave" quiescent period (spec.md §4.6), the
// epoch-based-reclamation counterpart of a hazard-pointer guard: it leaves
// the shape untouched and only steps the SMR observer, grounded on the
// source's epoch.cpp SetRecEpoch/GetLocalEpochFromGlobalEpoch handlers
// simplified to this implementation's single per-thread SMR automaton.
func postQuiescent(cfg *verifcfg.Configuration, stmt *program.QuiescentOp, tid int) ([]*verifcfg.Configuration, error) {
	out := cfg.Copy()
	if stmt.Enter {
		out.State1 = out.State1.Next(observer.MkEnter("quiescent", true, observer.DataValue(0)))
	} else {
		out.State1 = out.State1.Next(observer.MkExit(true))
	}
	if out.State1.IsMarked() {
		return nil, nil
	}
	if out.State1.IsFinal() {
		return nil, ErrSMRViolation
	}
	return []*verifcfg.Configuration{out}, nil
}
