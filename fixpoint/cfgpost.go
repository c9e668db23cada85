package fixpoint

import (
	"fmt"

	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/post"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/verifcfg"
)

// numTrackedThreads is how many concurrent threads the encoded
// configuration tracks explicitly; any further concurrency is approximated
// by the interference pass, which transiently admits a third slot via
// Configuration.Extend (spec.md §4.8).
const numTrackedThreads = 2

// mkInitCfg builds the configuration the fixed point starts from: a fresh
// two-thread shape with thread 0 running the program's init sequence to
// completion, mirroring fixpoint.cpp's mk_init_cfg.
func mkInitCfg(prog *program.Program, linObs, smrObs *observer.Observer) (*verifcfg.Configuration, error) {
	// This implementation's Observer is a pure state automaton over Events
	// with no separate notion of "observer variable" cell terms (spec.md
	// §9's simplified tagged-sum AST carries no analogue of the source's
	// observer-variable shape region), so numObsVars is always 0.
	s := shape.New(0, len(prog.Globals), prog.NumLocalSlots(), numTrackedThreads)
	cfg := verifcfg.New(s, linObs.InitialState(), smrObs.InitialState())

	if len(prog.Init) == 0 {
		return cfg, nil
	}
	cfg.PC[0] = prog.Init[0].ID()

	for cfg.PC[0] != 0 {
		stmt, ok := prog.StatementByID(cfg.PC[0])
		if !ok {
			return nil, fmt.Errorf("mkInitCfg: %w", ErrUnknownStatementID)
		}
		postcfgs, err := post.Post(cfg, stmt, 0)
		if err != nil {
			return nil, err
		}
		if len(postcfgs) != 1 {
			return nil, ErrAmbiguousInit
		}
		cfg = postcfgs[0]
	}
	return cfg, nil
}

// mkAllPost gives every post-image of cfg across both tracked threads,
// mirroring fixp/cfgpost.cpp's mk_all_post.
func mkAllPost(cfg *verifcfg.Configuration, prog *program.Program) ([]*verifcfg.Configuration, error) {
	result := make([]*verifcfg.Configuration, 0, 4)
	for tid := 0; tid < numTrackedThreads; tid++ {
		tidResult, err := mkTidPost(cfg, tid, prog)
		if err != nil {
			return nil, err
		}
		result = append(result, tidResult...)
	}
	return result, nil
}

// mkTidPost gives every post-image of cfg for one thread: a single
// post.Post step if the thread is mid-function, or every possible function
// invocation (crossed with every possible argument data value) if it is
// idle. Mirrors fixp/cfgpost.cpp's mk_tid_post.
func mkTidPost(cfg *verifcfg.Configuration, tid int, prog *program.Program) ([]*verifcfg.Configuration, error) {
	if cfg.PC[tid] != 0 {
		stmt, ok := prog.StatementByID(cfg.PC[tid])
		if !ok {
			return nil, fmt.Errorf("mkTidPost: %w", ErrUnknownStatementID)
		}
		postcfgs, err := post.Post(cfg, stmt, tid)
		if err != nil {
			return nil, err
		}
		for _, pcf := range postcfgs {
			if pcf.PC[tid] == 0 {
				fireExit(pcf, tid)
				pcf.Arg[tid] = observer.OTHER
			}
		}
		return postcfgs, nil
	}

	result := make([]*verifcfg.Configuration, 0, 2*len(prog.Funcs))
	for _, fn := range prog.Funcs {
		body := fn.Body()
		if len(body) == 0 {
			continue
		}
		for _, dval := range []observer.DataValue{observer.DATA, observer.OTHER} {
			next := cfg.Copy()
			next.PC[tid] = body[0].ID()
			next.Arg[tid] = dval
			fireEnter(next, tid, fn.Name(), dval)
			result = append(result, next)
		}
	}
	return result, nil
}

func fireEnter(cfg *verifcfg.Configuration, tid int, fn string, dval observer.DataValue) {
	evt := observer.MkEnter(fn, tid == 0, dval)
	cfg.State0 = cfg.State0.Next(evt)
	cfg.State1 = cfg.State1.Next(evt)
}

func fireExit(cfg *verifcfg.Configuration, tid int) {
	evt := observer.MkExit(tid == 0)
	cfg.State0 = cfg.State0.Next(evt)
	cfg.State1 = cfg.State1.Next(evt)
}
