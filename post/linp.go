package post

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postLinearisation fires stmt's guarded observer event when Cond holds:
// the event carries cfg.Arg[tid] as its witness data value, resolved once
// at function entry and unchanged since (spec.md §4.6). Firing into a
// final observer state is a specification violation, grounded on the
// source's fire_lp.
func postLinearisation(cfg *verifcfg.Configuration, stmt *program.LinearisationPoint, tid int) ([]*verifcfg.Configuration, error) {
	trueCfgs, falseCfgs, err := evalCondition(cfg, stmt.Cond, tid)
	if err != nil {
		return nil, err
	}

	var result []*verifcfg.Configuration
	for _, out := range trueCfgs {
		evt := observer.MkEnter(stmt.Func, stmt.Thread, out.Arg[tid])
		out.State0 = out.State0.Next(evt)
		if out.State0.IsMarked() {
			continue
		}
		if out.State0.IsFinal() {
			return nil, ErrObserverViolation
		}
		result = append(result, out)
	}
	result = append(result, falseCfgs...)
	return result, nil
}
