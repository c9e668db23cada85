package abaaware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/abaaware"
	"github.com/wolff09/tmrverify/encoding"
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/verifcfg"
)

// buildComparisonProgram declares one global g and the given locals, and a
// single function whose body is one Ite guarded by cond. Both branches are
// no-op assignments so Build's "non-empty branch" invariant holds.
func buildComparisonProgram(t *testing.T, locals []*program.Variable, cond program.Condition) (*program.Program, *program.Ite) {
	t.Helper()
	g := program.NewVariable("g")
	noopThen := program.NewAssign(program.NewVarExpr("g"), program.NewVarExpr("g"))
	noopElse := program.NewAssign(program.NewVarExpr("g"), program.NewVarExpr("g"))
	ite := program.NewIte(cond, []program.Statement{noopThen}, []program.Statement{noopElse})
	fn := program.NewFunction("f", locals, []program.Statement{ite})
	p := program.NewProgram([]*program.Variable{g}, nil, nil, []*program.Function{fn})
	require.NoError(t, p.Build(false))
	return p, ite
}

func storeAt(cfg *verifcfg.Configuration) *encoding.Store {
	st := encoding.NewStore()
	st.Take(cfg)
	return st
}

func TestCheckABAAwarenessSkipsConfigurationsNotAtAComparison(t *testing.T) {
	x := program.NewVariable("x")
	cond := program.NewEqCondition(program.NewVarExpr("x"), program.NewVarExpr("g"))
	p, _ := buildComparisonProgram(t, []*program.Variable{x}, cond)

	s := shape.New(0, len(p.Globals), p.NumLocalSlots(), 1)
	cfg := verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
	cfg.PC[0] = 0 // no statement under inspection at this configuration

	count, err := abaaware.CheckABAAwareness(storeAt(cfg), p)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCheckABAAwarenessRejectsInvertedComparison(t *testing.T) {
	x := program.NewVariable("x")
	cond := program.NewNeqCondition(program.NewVarExpr("x"), program.NewVarExpr("g"))
	p, ite := buildComparisonProgram(t, []*program.Variable{x}, cond)

	s := shape.New(0, len(p.Globals), p.NumLocalSlots(), 1)
	cfg := verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
	cfg.PC[0] = ite.ID()
	cfg.ValidPtr[s.IndexGlobal(0)] = true

	_, err := abaaware.CheckABAAwareness(storeAt(cfg), p)

	assert.ErrorIs(t, err, abaaware.ErrInvertedComparison)
}

func TestCheckABAAwarenessRejectsComparisonOfTwoLocals(t *testing.T) {
	x1 := program.NewVariable("x1")
	x2 := program.NewVariable("x2")
	cond := program.NewEqCondition(program.NewVarExpr("x1"), program.NewVarExpr("x2"))
	p, ite := buildComparisonProgram(t, []*program.Variable{x1, x2}, cond)

	s := shape.New(0, len(p.Globals), p.NumLocalSlots(), 1)
	cfg := verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
	cfg.PC[0] = ite.ID()
	cfg.ValidPtr[s.IndexLocal(x1.ID(), 0)] = true

	_, err := abaaware.CheckABAAwareness(storeAt(cfg), p)

	assert.ErrorIs(t, err, abaaware.ErrNotExactlyOneShared)
}

func TestCheckABAAwarenessRejectsBothInvalid(t *testing.T) {
	x := program.NewVariable("x")
	cond := program.NewEqCondition(program.NewVarExpr("x"), program.NewVarExpr("g"))
	p, ite := buildComparisonProgram(t, []*program.Variable{x}, cond)

	s := shape.New(0, len(p.Globals), p.NumLocalSlots(), 1)
	cfg := verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
	cfg.PC[0] = ite.ID()
	// Neither side marked valid: is_aba_prone's terminal, unclassifiable case.

	_, err := abaaware.CheckABAAwareness(storeAt(cfg), p)

	assert.ErrorIs(t, err, abaaware.ErrBothInvalid)
}

func TestCheckABAAwarenessAcceptsStaticallyUnequalComparison(t *testing.T) {
	x := program.NewVariable("x")
	cond := program.NewEqCondition(program.NewVarExpr("x"), program.NewVarExpr("g"))
	p, ite := buildComparisonProgram(t, []*program.Variable{x}, cond)

	s := shape.New(0, len(p.Globals), p.NumLocalSlots(), 1)
	cfg := verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
	cfg.PC[0] = ite.ID()
	cfg.ValidPtr[s.IndexGlobal(0)] = true
	// x left invalid: lhsValid != rhsValid, so isABAProne reports it prone.
	// A freshly constructed shape relates every non-diagonal cell pair by
	// {BT} (definitely unrelated) only, so x == g is statically false and
	// the Ite can only take its false branch; removing REUSE alone cannot
	// make that inconsistent, so pruneReuse succeeds. mkContinuations then
	// settles the single false-branch continuation (the function returns
	// right after the Ite) into the noretry set with no true-branch sample
	// ever recorded, so checkNoRetry finds nothing to merge against and
	// reports no violation.

	count, err := abaaware.CheckABAAwareness(storeAt(cfg), p)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
