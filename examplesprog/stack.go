package examplesprog

import (
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
)

// TreiberStack builds spec.md §8 scenarios 2 and 3: a Treiber stack whose
// pop guards the node it is about to unlink with a hazard pointer before
// re-validating and CAS-ing it off (hazardProtected == true, scenario 2's
// "with ages" — CORRECT), or skips that guard entirely and CASes the
// stale, unprotected read straight off (hazardProtected == false, scenario
// 3's "--no-ages --ccas" — expected INCORRECT via an ABA/malicious-reuse
// finding).
//
// Grounded on `test/HP/TreibersStack.cpp`'s guard/validate/CAS/retire
// sequence, with its outer `Loop` stripped out: this port's
// `program.Program.Build` rejects a CompareAndSwap inside any While body
// outright (doc.go gap 2), so every function here attempts its CAS exactly
// once; repeated attempts are modelled at the fixpoint driver level by
// `fixpoint/cfgpost.go`'s re-invocation of an idle thread's function, not
// by an in-function retry loop. The source's "cheating" vs. "non-cheating"
// CAS distinction (comparing against a stale `top.next` selector directly,
// vs. reading it into a fresh local first) is also unrepresentable here —
// `CompareAndSwap.Src` is a declared variable, never a selector — so both
// of the source's `cheating_cas` settings collapse onto the same
// read-into-a-local form; the CORRECT/INCORRECT split this pair of
// scenarios is checking is carried entirely by the guard, not by the CAS
// shape.
func TreiberStack(hazardProtected bool) (*program.Program, *observer.Observer, *observer.Observer, error) {
	top := program.NewVariable("TopOfStack")
	node := program.NewVariable("node")
	topLocal := program.NewVariable("top")

	init := []program.Statement{
		program.NewAssign(program.NewVarExpr("TopOfStack"), program.NullExpr{}),
	}

	pushBody := []program.Statement{
		program.NewMalloc(program.NewVarExpr("node")),
		program.NewAssign(program.NewVarExpr("top"), program.NewVarExpr("TopOfStack")),
	}
	if hazardProtected {
		pushBody = append(pushBody,
			program.NewHazardSet(0, program.NewVarExpr("top")),
			program.NewIte(
				program.NewEqCondition(program.NewVarExpr("top"), program.NewVarExpr("TopOfStack")),
				[]program.Statement{
					program.NewAssign(program.NewSelector(program.NewVarExpr("node"), program.FieldNext), program.NewVarExpr("top")),
					program.NewCAS(program.NewVarExpr("TopOfStack"), program.NewVarExpr("top"), program.NewVarExpr("node")).
						WithLinearisation(program.NewLinearisationPoint("push", true, nil)),
					program.NewHazardRelease(0, program.NewVarExpr("top")),
				},
				[]program.Statement{
					program.NewHazardRelease(0, program.NewVarExpr("top")),
				},
			),
		)
	} else {
		// scenario 3: no hazard guard at all — the stale `top` read above
		// is CASed off unprotected, the pattern abaaware.CheckABAAwareness
		// is built to catch (DESIGN.md's abaaware entry).
		pushBody = append(pushBody,
			program.NewAssign(program.NewSelector(program.NewVarExpr("node"), program.FieldNext), program.NewVarExpr("top")),
			program.NewCAS(program.NewVarExpr("TopOfStack"), program.NewVarExpr("top"), program.NewVarExpr("node")).
				WithLinearisation(program.NewLinearisationPoint("push", true, nil)),
		)
	}

	popBody := []program.Statement{
		program.NewAssign(program.NewVarExpr("top"), program.NewVarExpr("TopOfStack")),
	}
	popSuccess := []program.Statement{
		program.NewAssign(program.NewVarExpr("node"), program.NewSelector(program.NewVarExpr("top"), program.FieldNext)),
		program.NewCAS(program.NewVarExpr("TopOfStack"), program.NewVarExpr("top"), program.NewVarExpr("node")).
			WithLinearisation(program.NewLinearisationPoint("pop", true, program.NewVarExpr("top"))),
	}
	if hazardProtected {
		popSuccess = append(popSuccess,
			program.NewHazardRelease(0, program.NewVarExpr("top")),
			program.NewIte(
				program.NewEqCondition(program.NewVarExpr("TopOfStack"), program.NewVarExpr("node")),
				[]program.Statement{program.NewRetire(program.NewVarExpr("top"))},
				[]program.Statement{program.NewKill(program.NewVarExpr("top"))},
			),
		)
		popSuccess = append([]program.Statement{program.NewHazardSet(0, program.NewVarExpr("top"))},
			[]program.Statement{
				program.NewIte(
					program.NewEqCondition(program.NewVarExpr("top"), program.NewVarExpr("TopOfStack")),
					popSuccess,
					[]program.Statement{program.NewHazardRelease(0, program.NewVarExpr("top"))},
				),
			}...,
		)
	} else {
		popSuccess = append(popSuccess,
			program.NewRetire(program.NewVarExpr("top")),
		)
	}

	popBody = append(popBody, program.NewIte(
		program.NewEqCondition(program.NewVarExpr("top"), program.NullExpr{}),
		[]program.Statement{program.NewKill(program.NewVarExpr("top"))}, // empty pop: no linearisation event (doc.go gap 6)
		popSuccess,
	))

	push := program.NewFunction("push", nil, pushBody)
	pop := program.NewFunction("pop", nil, popBody)
	prog := program.NewProgram(
		[]*program.Variable{top},
		[]*program.Variable{node, topLocal},
		init,
		[]*program.Function{push, pop},
	)
	if err := prog.Build(false); err != nil {
		return nil, nil, nil, err
	}

	lin, err := StackObserver("push", "pop")
	if err != nil {
		return nil, nil, nil, err
	}
	smr, err := TrivialObserver()
	if err != nil {
		return nil, nil, nil, err
	}
	return prog, lin, smr, nil
}
