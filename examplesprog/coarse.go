package examplesprog

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
)

// CoarseQueue builds spec.md §8 scenario 1: a sentinel-node linked queue
// whose publish/retire steps are each wrapped in one Atomic block (modelling
// a coarse-grained lock around the critical section, per the scenario's
// name) rather than a lock-free CAS. Grounded on
// `test/Coarse/Factory.hpp`'s `coarse_queue(false)` (the non-mega_malloc
// variant) almost statement for statement — this is the one reference
// program in the catalogue that needed no representational adaptation,
// since the source itself never CASes here (the enqueue/dequeue critical
// sections are already atomic blocks, not lock-free retries). The two
// `Read("n")`/`Write("n")` statements the source uses to move the call's
// argument into, and the popped node's data out of, a dedicated data
// register have no equivalent statement kind in this port (doc.go gap 4)
// and are dropped: they have no effect on shape, free, or observer state,
// only on the value the source's `__out__` register would print.
func CoarseQueue() (*program.Program, *observer.Observer, *observer.Observer, error) {
	h := program.NewVariable("H")
	t := program.NewVariable("T")
	n := program.NewVariable("n")

	init := []program.Statement{
		program.NewMalloc(program.NewVarExpr("H")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("H"), program.FieldNext), program.NullExpr{}),
		program.NewAssign(program.NewVarExpr("T"), program.NewVarExpr("H")),
	}

	enqBody := []program.Statement{
		program.NewMalloc(program.NewVarExpr("n")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("n"), program.FieldNext), program.NullExpr{}),
		program.NewAtomic([]program.Statement{
			program.NewLinearisationPoint("enq", true, nil),
			program.NewAssign(program.NewSelector(program.NewVarExpr("T"), program.FieldNext), program.NewVarExpr("n")),
			program.NewAssign(program.NewVarExpr("T"), program.NewVarExpr("n")),
		}),
	}

	deqBody := []program.Statement{
		program.NewAtomic([]program.Statement{
			program.NewAssign(program.NewVarExpr("n"), program.NewSelector(program.NewVarExpr("H"), program.FieldNext)),
			program.NewIte(
				program.NewEqCondition(program.NewVarExpr("n"), program.NullExpr{}),
				// empty dequeue: nothing to report, no linearisation event
				// fired (doc.go gap 6); Kill is a no-op placeholder so the
				// branch is non-empty, matching the source's Brk()-only arm.
				[]program.Statement{program.NewKill(program.NewVarExpr("n"))},
				[]program.Statement{
					program.NewLinearisationPoint("deq", true, program.NewVarExpr("n")),
					program.NewFree(program.NewVarExpr("H")),
					program.NewAssign(program.NewVarExpr("H"), program.NewVarExpr("n")),
				},
			),
		}),
	}

	enq := program.NewFunction("enq", nil, enqBody)
	deq := program.NewFunction("deq", nil, deqBody)
	prog := program.NewProgram([]*program.Variable{h, t}, []*program.Variable{n}, init, []*program.Function{enq, deq})
	if err := prog.Build(false); err != nil {
		return nil, nil, nil, err
	}

	lin, err := QueueObserver("enq", "deq")
	if err != nil {
		return nil, nil, nil, err
	}
	smr, err := TrivialObserver()
	if err != nil {
		return nil, nil, nil, err
	}
	return prog, lin, smr, nil
}
