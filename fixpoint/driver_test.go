package fixpoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/fixpoint"
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/options"
	"github.com/wolff09/tmrverify/program"
)

// buildKillOnlyProgram is the smallest nontrivial program: one global, one
// function that mallocs a local then immediately kills it. Its abstract
// state space is tiny and finite, so the fixed point converges quickly.
func buildKillOnlyProgram(t *testing.T) *program.Program {
	t.Helper()
	x := program.NewVariable("Shared")
	node := program.NewVariable("node")

	body := []program.Statement{
		program.NewMalloc(program.NewVarExpr("node")),
		program.NewKill(program.NewVarExpr("node")),
	}
	fn := program.NewFunction("touch", []*program.Variable{node}, body)
	p := program.NewProgram([]*program.Variable{x}, nil, nil, []*program.Function{fn})
	require.NoError(t, p.Build(false))
	return p
}

func trivialObserver(t *testing.T) *observer.Observer {
	t.Helper()
	s0 := observer.NewState("s0", true, false)
	obs, err := observer.NewObserver([]*observer.State{s0})
	require.NoError(t, err)
	return obs
}

func TestDriverRunConvergesOnKillOnlyProgram(t *testing.T) {
	p := buildKillOnlyProgram(t)
	lin := trivialObserver(t)
	smr := trivialObserver(t)

	driver := fixpoint.NewDriver(p, lin, smr, options.Default(), nil)
	result, err := driver.Run()

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Greater(t, result.Store.Size(), 0)
}
