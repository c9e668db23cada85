package fixpoint

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/post"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// mkSummary gives cfg's summary post-images: spec.md §4.8's "(b) one
// summary step per function" for summary mode. For every function
// declaring a summary, an arbitrary other thread is modeled entering that
// function with both possible witness values (DATA and OTHER) via a
// transient third thread slot (Configuration.Extend, the same admission
// mechanism mkOneInterference uses for a real interferer), stepped once
// from the summary's entry statement, then projected back out. Exactly one
// post.Post call is taken per function/data-value pair — not driven to
// completion — mirroring chkmimic.checkDisambiguatedCfg's own "replace
// pc with the summary entry, post once" contract (spec.md §4.9 step 5),
// which this step reuses rather than duplicating a second convention.
//
// fixpoint.cpp declares mk_summary (fixp/interference.hpp, behind an #if
// guard), but no body for it is defined anywhere in the retrieved
// original_source/; this port follows spec.md §4.8's prose contract
// directly instead of a source body to mirror statement-for-statement.
func mkSummary(cfg *verifcfg.Configuration, prog *program.Program) ([]*verifcfg.Configuration, error) {
	result := make([]*verifcfg.Configuration, 0, 2*len(prog.Funcs))
	for _, fn := range prog.Funcs {
		if !fn.HasSummary() {
			continue
		}
		summary := fn.Summary()
		if len(summary) == 0 {
			continue
		}

		stmt, ok := prog.StatementByID(summary[0].ID())
		if !ok {
			return nil, ErrUnknownStatementID
		}

		for _, dval := range []observer.DataValue{observer.DATA, observer.OTHER} {
			extended := cfg.Copy()
			extended.Extend()
			extended.PC[interferenceTid] = stmt.ID()
			extended.Arg[interferenceTid] = dval
			fireEnter(extended, interferenceTid, fn.Name(), dval)

			postcfgs, err := post.Post(extended, stmt, interferenceTid)
			if err != nil {
				return nil, err
			}

			for _, pcf := range postcfgs {
				if pcf.PC[interferenceTid] == 0 {
					fireExit(pcf, interferenceTid)
				}
				projectAway(pcf, interferenceTid)
				pcf.Shrink()
				result = append(result, pcf)
			}
		}
	}
	return result, nil
}
