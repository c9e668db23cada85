package examplesprog

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
)

// msEnqBody and msDeqBody build a fresh statement tree for a tail-swing
// enqueue/dequeue on each call. They are grounded on
// `test/Queue/Factory.hpp`'s `enqsum`/`deqsum` blocks (the
// `REPLACE_INTERFERENCE_WITH_SUMMARY` arm of `micheal_scott_queue`), which
// are themselves CAS-free and Atomic-wrapped — not an adaptation of the
// textbook two-phase `CAS(Next("t"), n, h)` enqueue, which is unrepresentable
// here (doc.go gap 1: CompareAndSwap never targets a field selector). Called
// twice (once per `program.Function.Body`, once per `.WithSummary`) because
// `program.Program.Build` destructively assigns statement IDs and wires
// `next` pointers into each node, so the same tree cannot be shared between
// a function's body and its summary.
func msEnqBody() []program.Statement {
	return []program.Statement{
		program.NewMalloc(program.NewVarExpr("n")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("n"), program.FieldNext), program.NullExpr{}),
		program.NewAtomic([]program.Statement{
			program.NewAssign(program.NewVarExpr("t"), program.NewVarExpr("Tail")),
			program.NewAssign(program.NewSelector(program.NewVarExpr("t"), program.FieldNext), program.NewVarExpr("n")),
			program.NewAssign(program.NewVarExpr("Tail"), program.NewVarExpr("n")),
			program.NewLinearisationPoint("enq", true, nil),
		}),
	}
}

func msDeqBody() []program.Statement {
	return []program.Statement{
		program.NewAtomic([]program.Statement{
			program.NewAssign(program.NewVarExpr("h"), program.NewVarExpr("Head")),
			program.NewAssign(program.NewVarExpr("n"), program.NewSelector(program.NewVarExpr("h"), program.FieldNext)),
			program.NewIte(
				program.NewEqCondition(program.NewVarExpr("n"), program.NullExpr{}),
				[]program.Statement{program.NewKill(program.NewVarExpr("n"))},
				[]program.Statement{
					program.NewLinearisationPoint("deq", true, program.NewVarExpr("n")),
					program.NewAssign(program.NewVarExpr("Head"), program.NewVarExpr("n")),
					program.NewFree(program.NewVarExpr("h")),
				},
			),
		}),
	}
}

// MichaelScottQueue builds spec.md §8 scenario 4: the Michael-Scott queue
// run in summary-replacement mode, where a function's summary is built from
// exactly the same statements as its body. Because body and summary are
// then identical by construction, `chkmimic.CheckMimic`'s soundness
// requirement (every shared-heap effect the body can produce is covered by
// its summary) holds trivially — this scenario exists to exercise the
// chkmimic pass itself (DESIGN.md's chkmimic/abaaware entry), not to model
// genuine summary approximation. Matching the source's own `enqsum`/
// `deqsum`, neither function here carries a Free/Retire statement distinct
// from the ordinary unconditional `Free` already in msDeqBody — this queue
// predates hazard-pointer protection in the source and is not the scenario
// meant to demonstrate SMR discipline (see DGLMQueue).
func MichaelScottQueue() (*program.Program, *observer.Observer, *observer.Observer, error) {
	head := program.NewVariable("Head")
	tail := program.NewVariable("Tail")
	n := program.NewVariable("n")
	t := program.NewVariable("t")
	h := program.NewVariable("h")

	init := []program.Statement{
		program.NewMalloc(program.NewVarExpr("Head")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("Head"), program.FieldNext), program.NullExpr{}),
		program.NewAssign(program.NewVarExpr("Tail"), program.NewVarExpr("Head")),
	}

	enq := program.NewFunction("enq", nil, msEnqBody()).WithSummary(msEnqBody())
	deq := program.NewFunction("deq", nil, msDeqBody()).WithSummary(msDeqBody())

	prog := program.NewProgram(
		[]*program.Variable{head, tail},
		[]*program.Variable{n, t, h},
		init,
		[]*program.Function{enq, deq},
	)
	if err := prog.Build(true); err != nil {
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

// msEnqBodyApproxSummary builds enq's summary for
// MichaelScottQueueApproxSummary: the same malloc and linearisation point
// as msEnqBody, but the atomic block only swings Tail to the new node and
// drops the old tail's Next-pointer write entirely. That write is the one
// place msEnqBody touches another thread's predecessor node, so omitting
// it leaves the (oldTail, n) relation at whatever it already was (BT,
// unconstrained, since n was just freshly allocated) rather than pinning
// it to MT (oldTail.next = n) — a strictly coarser, and so still sound, over-approximation of
// what a concurrent enqueue could have done to shared state, the kind
// CHK-MIMIC is meant to validate rather than take on faith.
func msEnqBodyApproxSummary() []program.Statement {
	return []program.Statement{
		program.NewMalloc(program.NewVarExpr("n")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("n"), program.FieldNext), program.NullExpr{}),
		program.NewAtomic([]program.Statement{
			program.NewAssign(program.NewVarExpr("Tail"), program.NewVarExpr("n")),
			program.NewLinearisationPoint("enq", true, nil),
		}),
	}
}

// MichaelScottQueueApproxSummary builds a variant of MichaelScottQueue
// whose enq summary is a genuine over-approximation of its body rather
// than an identical copy: msEnqBodyApproxSummary above drops the
// predecessor-link write msEnqBody performs. deq keeps the
// body-equals-summary pairing MichaelScottQueue uses, since only one
// function needs to diverge to exercise CHK-MIMIC's actual covering check
// (subsetShared) instead of the vacuous identical-statements case
// "michael-scott-queue-summary" covers.
func MichaelScottQueueApproxSummary() (*program.Program, *observer.Observer, *observer.Observer, error) {
	head := program.NewVariable("Head")
	tail := program.NewVariable("Tail")
	n := program.NewVariable("n")
	t := program.NewVariable("t")
	h := program.NewVariable("h")

	init := []program.Statement{
		program.NewMalloc(program.NewVarExpr("Head")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("Head"), program.FieldNext), program.NullExpr{}),
		program.NewAssign(program.NewVarExpr("Tail"), program.NewVarExpr("Head")),
	}

	enq := program.NewFunction("enq", nil, msEnqBody()).WithSummary(msEnqBodyApproxSummary())
	deq := program.NewFunction("deq", nil, msDeqBody()).WithSummary(msDeqBody())

	prog := program.NewProgram(
		[]*program.Variable{head, tail},
		[]*program.Variable{n, t, h},
		init,
		[]*program.Function{enq, deq},
	)
	if err := prog.Build(true); err != nil {
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

// DGLMQueue builds spec.md §8 scenario 5: the Doliner-Gidenstam-... queue
// ("DGLM") with a summary-style enqueue (same tail-swing shape as
// MichaelScottQueue, sidestepping the source's unrepresentable
// `CAS(Next("t"), n, h)`/`CAS(Tail, t, n)` helping-CAS pair entirely) but a
// genuine interference-mode dequeue: `test/Queue/Factory.hpp`'s
// `dglm_queue`'s `Head`/`Tail` CASes are both plain-variable CASes
// (`CAS(Head, h, n)`), fully representable here, so this dequeue is built
// the way `test/HP/TreibersStack.cpp` builds its pop — guard, validate,
// single CAS, release the guard, then retire only on the branch where the
// CAS actually won (`post/free.go`'s postFree silently drops the retire
// if the cell is still guarded, so the guard is released first).
func DGLMQueue() (*program.Program, *observer.Observer, *observer.Observer, error) {
	head := program.NewVariable("Head")
	tail := program.NewVariable("Tail")
	n := program.NewVariable("n")
	t := program.NewVariable("t")
	h := program.NewVariable("h")

	init := []program.Statement{
		program.NewMalloc(program.NewVarExpr("Head")),
		program.NewAssign(program.NewSelector(program.NewVarExpr("Head"), program.FieldNext), program.NullExpr{}),
		program.NewAssign(program.NewVarExpr("Tail"), program.NewVarExpr("Head")),
	}

	enqBody := msEnqBody()

	deqSuccess := []program.Statement{
		program.NewAssign(program.NewVarExpr("n"), program.NewSelector(program.NewVarExpr("h"), program.FieldNext)),
		program.NewCAS(program.NewVarExpr("Head"), program.NewVarExpr("h"), program.NewVarExpr("n")).
			WithLinearisation(program.NewLinearisationPoint("deq", true, program.NewVarExpr("h"))),
		program.NewHazardRelease(0, program.NewVarExpr("h")),
		program.NewIte(
			program.NewEqCondition(program.NewVarExpr("Head"), program.NewVarExpr("n")),
			[]program.Statement{program.NewRetire(program.NewVarExpr("h"))},
			[]program.Statement{program.NewKill(program.NewVarExpr("h"))},
		),
	}

	deqBody := []program.Statement{
		program.NewAssign(program.NewVarExpr("h"), program.NewVarExpr("Head")),
		program.NewHazardSet(0, program.NewVarExpr("h")),
		program.NewIte(
			program.NewEqCondition(program.NewVarExpr("h"), program.NewVarExpr("Head")),
			deqSuccess,
			[]program.Statement{program.NewHazardRelease(0, program.NewVarExpr("h"))},
		),
	}

	enq := program.NewFunction("enq", nil, enqBody)
	deq := program.NewFunction("deq", nil, deqBody)

	prog := program.NewProgram(
		[]*program.Variable{head, tail},
		[]*program.Variable{n, t, h},
		init,
		[]*program.Function{enq, deq},
	)
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

// EBRRingBuffer builds a small bonus scenario (supplementing spec.md §8,
// not one of its six named cases) whose sole purpose is to exercise
// `post/epoch.go`'s postQuiescent and the EBRObserver automaton: a single
// function that enters, then leaves, a quiescent region around a harmless
// read, grounded on `ObserverFactory.hpp`'s `ebr_observer` intent (flag a
// thread re-entering a quiescent region without leaving first). Without
// this program, QuiescentOp/EBRObserver would be dead, unwired code per
// this project's "wire it or delete it" rule.
func EBRRingBuffer() (*program.Program, *observer.Observer, *observer.Observer, error) {
	g := program.NewVariable("G")
	n := program.NewVariable("n")

	init := []program.Statement{
		program.NewMalloc(program.NewVarExpr("G")),
	}

	body := []program.Statement{
		program.NewEnterQuiescent(),
		program.NewAssign(program.NewVarExpr("n"), program.NewVarExpr("G")),
		program.NewLeaveQuiescent(),
	}

	visit := program.NewFunction("visit", nil, body)
	prog := program.NewProgram([]*program.Variable{g}, []*program.Variable{n}, init, []*program.Function{visit})
	if err := prog.Build(false); err != nil {
		return nil, nil, nil, err
	}

	lin, err := TrivialObserver()
	if err != nil {
		return nil, nil, nil, err
	}
	smr, err := EBRObserver()
	if err != nil {
		return nil, nil, nil, err
	}
	return prog, lin, smr, nil
}
