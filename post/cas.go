package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// postCAS is `CAS(dst, cmp, src)` (spec.md §4.6): on the branch where dst
// equals cmp it performs `dst = src` and, if attached, fires Lin; on the
// branch where they differ nothing changes. Grounded on the source's
// eval_cond_cas.
func postCAS(cfg *verifcfg.Configuration, stmt *program.CompareAndSwap, tid int) ([]succ, error) {
	dstIdx := mustVarIndex(cfg.Shape, stmt.Dst, tid)
	srcIdx := mustVarIndex(cfg.Shape, stmt.Src, tid)

	var result []succ

	eqCfgs, neqCfgs, err := evalCondition(cfg, program.NewEqCondition(stmt.Dst, stmt.Cmp), tid)
	if err != nil {
		return nil, err
	}

	for _, eq := range eqCfgs {
		assigned, err := assignVarVar(eq, dstIdx, srcIdx)
		if err != nil {
			return nil, err
		}
		for _, out := range assigned {
			if stmt.Lin != nil {
				fired, err := postLinearisation(out, stmt.Lin, tid)
				if err != nil {
					return nil, err
				}
				for _, f := range fired {
					result = append(result, succ{cfg: f, next: stmt.Next()})
				}
				continue
			}
			result = append(result, succ{cfg: out, next: stmt.Next()})
		}
	}

	for _, neq := range neqCfgs {
		result = append(result, succ{cfg: neq, next: stmt.Next()})
	}

	return result, nil
}
