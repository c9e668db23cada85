package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/program"
)

func newGlobal(name string) *program.Variable { return program.NewVariable(name) }
func newLocal(name string) *program.Variable   { return program.NewVariable(name) }

// buildQueueLike builds a minimal single-function program resembling a
// Treiber-stack push: top = malloc'd node, node.next = top, CAS(top, old,
// node) with a linearisation point on success.
func buildQueueLike(t *testing.T) *program.Program {
	t.Helper()
	top := newGlobal("Top")
	node := newLocal("node")
	old := newLocal("old")

	body := []program.Statement{
		program.NewMalloc(program.NewVarExpr("node")),
		program.NewAssign(program.NewVarExpr("old"), program.NewVarExpr("Top")),
		program.NewAssign(
			program.NewSelector(program.NewVarExpr("node"), program.FieldNext),
			program.NewVarExpr("old"),
		),
		program.NewCAS(
			program.NewVarExpr("Top"), program.NewVarExpr("old"), program.NewVarExpr("node"),
		).WithLinearisation(program.NewLinearisationPoint("push", true, program.NewVarExpr("node"))),
	}

	push := program.NewFunction("push", []*program.Variable{node, old}, body)
	p := program.NewProgram([]*program.Variable{top}, nil, nil, []*program.Function{push})
	require.NoError(t, p.Build(false))
	return p
}

func TestBuildAssignsSequentialNextPointers(t *testing.T) {
	p := buildQueueLike(t)
	push, ok := p.Func("push")
	require.True(t, ok)
	body := push.Body()
	require.Len(t, body, 4)

	for i := 0; i < 3; i++ {
		assert.Equal(t, body[i+1].ID(), p.NextID(body[i].ID()))
	}
	assert.Equal(t, 0, p.NextID(body[3].ID()))
}

func TestBuildRejectsDuplicateGlobalName(t *testing.T) {
	a := newGlobal("x")
	b := newGlobal("x")
	p := program.NewProgram([]*program.Variable{a, b}, nil, nil, nil)
	err := p.Build(false)
	assert.ErrorIs(t, err, program.ErrDuplicateName)
}

func TestBuildRejectsInitAsFunctionName(t *testing.T) {
	f := program.NewFunction("init", nil, nil)
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	err := p.Build(false)
	assert.ErrorIs(t, err, program.ErrReservedName)
}

func TestBuildRejectsUnknownVariable(t *testing.T) {
	body := []program.Statement{
		program.NewAssign(program.NewVarExpr("ghost"), program.NewVarExpr("ghost")),
	}
	f := program.NewFunction("f", nil, body)
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	err := p.Build(false)
	assert.ErrorIs(t, err, program.ErrUnknownName)
}

func TestBuildRejectsCASInsideWhile(t *testing.T) {
	x := newLocal("x")
	loop := program.NewWhile(program.NewOracleCondition("go"), []program.Statement{
		program.NewCAS(program.NewVarExpr("x"), program.NewVarExpr("x"), program.NewVarExpr("x")),
	})
	f := program.NewFunction("f", []*program.Variable{x}, []program.Statement{loop})
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	err := p.Build(false)
	assert.ErrorIs(t, err, program.ErrCASInWhile)
}

func TestWhileLoopsBackToItself(t *testing.T) {
	x := newLocal("x")
	body := []program.Statement{program.NewKill(program.NewVarExpr("x"))}
	loop := program.NewWhile(program.NewOracleCondition("go"), body)
	after := program.NewKill(program.NewVarExpr("x"))
	f := program.NewFunction("f", []*program.Variable{x}, []program.Statement{loop, after})
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	require.NoError(t, p.Build(false))

	assert.Equal(t, body[0].ID(), loop.NextTrue().ID())
	assert.Equal(t, after.ID(), loop.NextFalse().ID())
	assert.Equal(t, loop.ID(), p.NextID(body[0].ID()))
}

func TestBreakJumpsPastInnermostWhile(t *testing.T) {
	x := newLocal("x")
	brk := program.NewBreak()
	loop := program.NewWhile(program.NewOracleCondition("go"), []program.Statement{brk})
	after := program.NewKill(program.NewVarExpr("x"))
	f := program.NewFunction("f", []*program.Variable{x}, []program.Statement{loop, after})
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	require.NoError(t, p.Build(false))

	assert.Equal(t, after.ID(), brk.Next().ID())
}

func TestSummaryModeRequiresSummary(t *testing.T) {
	f := program.NewFunction("f", nil, nil)
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	err := p.Build(true)
	assert.ErrorIs(t, err, program.ErrSummaryDiscipline)
}

func TestSummaryRejectsSecondCAS(t *testing.T) {
	x := newLocal("x")
	summary := []program.Statement{
		program.NewCAS(program.NewVarExpr("x"), program.NewVarExpr("x"), program.NewVarExpr("x")),
		program.NewCAS(program.NewVarExpr("x"), program.NewVarExpr("x"), program.NewVarExpr("x")),
	}
	f := program.NewFunction("f", []*program.Variable{x}, nil).WithSummary(summary)
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	err := p.Build(true)
	assert.ErrorIs(t, err, program.ErrSummaryDiscipline)
}

func TestSummaryRejectsWhile(t *testing.T) {
	x := newLocal("x")
	summary := []program.Statement{
		program.NewWhile(program.NewOracleCondition("go"), nil),
	}
	f := program.NewFunction("f", []*program.Variable{x}, nil).WithSummary(summary)
	p := program.NewProgram(nil, nil, nil, []*program.Function{f})
	err := p.Build(true)
	assert.ErrorIs(t, err, program.ErrSummaryDiscipline)
}
