package post

import (
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/verifcfg"
)

// succ pairs a successor configuration with the statement tid will execute
// next, resolved via AST pointers rather than a PC round-trip so nested
// control flow (an atomic block containing a loop or conditional) can be
// interpreted internally without touching cfg.PC.
type succ struct {
	cfg  *verifcfg.Configuration
	next program.Statement
}

// Post is layer L6's single entry point (spec.md §4.6): given the
// configuration owning tid and the statement tid is about to execute, it
// returns every successor configuration with cfg.PC[tid] already advanced,
// or an error classifying why no successor exists. Mirrors the source's
// post.cpp dispatch over Statement's concrete kind.
func Post(cfg *verifcfg.Configuration, stmt program.Statement, tid int) ([]*verifcfg.Configuration, error) {
	succs, err := step(cfg, stmt, tid)
	if err != nil {
		return nil, err
	}
	result := make([]*verifcfg.Configuration, 0, len(succs))
	for _, sc := range succs {
		if sc.next != nil {
			sc.cfg.PC[tid] = sc.next.ID()
		} else {
			sc.cfg.PC[tid] = 0
		}
		result = append(result, sc.cfg)
	}
	return result, nil
}

// step computes one statement's successor configurations paired with the
// statement that follows each, without writing to cfg.PC.
func step(cfg *verifcfg.Configuration, stmt program.Statement, tid int) ([]succ, error) {
	switch s := stmt.(type) {
	case *program.Assign:
		return wrapLinear(postAssign(cfg, s, tid))(s.Next())
	case *program.Malloc:
		return wrapLinear(postMalloc(cfg, s, tid))(s.Next())
	case *program.Free:
		return wrapLinear(postFree(cfg, s, tid))(s.Next())
	case *program.HazardOp:
		return wrapLinear(postHazard(cfg, s, tid))(s.Next())
	case *program.QuiescentOp:
		return wrapLinear(postQuiescent(cfg, s, tid))(s.Next())
	case *program.LinearisationPoint:
		return wrapLinear(postLinearisation(cfg, s, tid))(s.Next())
	case *program.Kill:
		return wrapLinear(postKill(cfg, s, tid))(s.Next())
	case *program.SetOp:
		return wrapLinear(postSetOp(cfg, s, tid))(s.Next())
	case *program.CompareAndSwap:
		return postCAS(cfg, s, tid)
	case *program.Atomic:
		return postAtomic(cfg, s, tid)
	case *program.Ite:
		return postIte(cfg, s, tid)
	case *program.While:
		return postWhile(cfg, s, tid)
	case *program.Break:
		return []succ{{cfg: cfg.Copy(), next: s.Next()}}, nil
	default:
		return nil, ErrUnsupportedStatement
	}
}

// wrapLinear lifts a plain (cfgs, err) transformer result into []succ, all
// sharing the same next statement — the common case for every non-branching
// statement kind.
func wrapLinear(cfgs []*verifcfg.Configuration, err error) func(next program.Statement) ([]succ, error) {
	return func(next program.Statement) ([]succ, error) {
		if err != nil {
			return nil, err
		}
		out := make([]succ, 0, len(cfgs))
		for _, c := range cfgs {
			out = append(out, succ{cfg: c, next: next})
		}
		return out, nil
	}
}

func postIte(cfg *verifcfg.Configuration, stmt *program.Ite, tid int) ([]succ, error) {
	trueCfgs, falseCfgs, err := evalCondition(cfg, stmt.Cond, tid)
	if err != nil {
		return nil, err
	}
	var result []succ
	for _, c := range trueCfgs {
		result = append(result, succ{cfg: c, next: firstOf(stmt.Then)})
	}
	for _, c := range falseCfgs {
		result = append(result, succ{cfg: c, next: firstOf(stmt.Else)})
	}
	return result, nil
}

func postWhile(cfg *verifcfg.Configuration, stmt *program.While, tid int) ([]succ, error) {
	trueCfgs, falseCfgs, err := evalCondition(cfg, stmt.Cond, tid)
	if err != nil {
		return nil, err
	}
	var result []succ
	for _, c := range trueCfgs {
		result = append(result, succ{cfg: c, next: stmt.NextTrue()})
	}
	for _, c := range falseCfgs {
		result = append(result, succ{cfg: c, next: stmt.NextFalse()})
	}
	return result, nil
}

// firstOf gives body's first statement; empty branches are not produced by
// this implementation's program builder (every Then/Else carries at least
// one statement).
func firstOf(body []program.Statement) program.Statement {
	if len(body) == 0 {
		return nil
	}
	return body[0]
}

// postAtomic runs stmt.Body to completion as a single step, with no
// interference interleaved: an internal worklist walks the body's own
// control flow via step, starting at Body[0] and stopping once a branch's
// next statement leaves the block (spec.md §4.6's "atomic" treats the
// whole block as one transition).
func postAtomic(cfg *verifcfg.Configuration, stmt *program.Atomic, tid int) ([]succ, error) {
	exit := stmt.Next()
	if len(stmt.Body) == 0 {
		return []succ{{cfg: cfg.Copy(), next: exit}}, nil
	}

	type frame struct {
		cfg  *verifcfg.Configuration
		stmt program.Statement
	}
	work := []frame{{cfg.Copy(), stmt.Body[0]}}
	var done []succ
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		if cur.stmt == nil || cur.stmt == exit {
			done = append(done, succ{cfg: cur.cfg, next: exit})
			continue
		}

		succs, err := step(cur.cfg, cur.stmt, tid)
		if err != nil {
			return nil, err
		}
		for _, sc := range succs {
			work = append(work, frame{cfg: sc.cfg, stmt: sc.next})
		}
	}
	return done, nil
}
