package chkmimic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/chkmimic"
	"github.com/wolff09/tmrverify/encoding"
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/options"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/verifcfg"
)

// buildAssignProgram declares two globals and one function whose body
// assigns g1 = g2 (an effect entirely within the shared region, so
// subsetShared can observe it) and whose summary is given by effect.
func buildAssignProgram(t *testing.T, effect program.Statement) *program.Program {
	t.Helper()
	g1 := program.NewVariable("g1")
	g2 := program.NewVariable("g2")
	body := []program.Statement{program.NewAssign(program.NewVarExpr("g1"), program.NewVarExpr("g2"))}
	fn := program.NewFunction("touch", nil, body).WithSummary([]program.Statement{effect})
	p := program.NewProgram([]*program.Variable{g1, g2}, nil, nil, []*program.Function{fn})
	require.NoError(t, p.Build(true))
	return p
}

func cfgAtFirstStatement(t *testing.T, p *program.Program) *verifcfg.Configuration {
	t.Helper()
	s := shape.New(0, len(p.Globals), 0, 2)
	cfg := verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
	cfg.PC[0] = p.Funcs[0].Body()[0].ID()
	return cfg
}

func storeOf(cfg *verifcfg.Configuration) *encoding.Store {
	st := encoding.NewStore()
	st.Take(cfg)
	return st
}

func TestCheckMimicPassesWhenSummaryMatchesRealEffect(t *testing.T) {
	matchingSummary := program.NewAssign(program.NewVarExpr("g1"), program.NewVarExpr("g2"))
	p := buildAssignProgram(t, matchingSummary)
	cfg := cfgAtFirstStatement(t, p)

	opts := options.Default()
	opts.ReplaceInterferenceWithSummary = true

	err := chkmimic.CheckMimic(storeOf(cfg), p, opts)

	assert.NoError(t, err)
}

func TestCheckMimicFailsWhenSummaryOmitsRealEffect(t *testing.T) {
	noopSummary := program.NewAssign(program.NewVarExpr("g1"), program.NewVarExpr("g1"))
	p := buildAssignProgram(t, noopSummary)
	cfg := cfgAtFirstStatement(t, p)

	opts := options.Default()
	opts.ReplaceInterferenceWithSummary = true

	err := chkmimic.CheckMimic(storeOf(cfg), p, opts)

	assert.ErrorIs(t, err, chkmimic.ErrSummaryUnsound)
}

func TestCheckMimicRequiresSummaryMode(t *testing.T) {
	matchingSummary := program.NewAssign(program.NewVarExpr("g1"), program.NewVarExpr("g2"))
	p := buildAssignProgram(t, matchingSummary)
	cfg := cfgAtFirstStatement(t, p)

	err := chkmimic.CheckMimic(storeOf(cfg), p, options.Default())

	assert.ErrorIs(t, err, chkmimic.ErrNotSummaryMode)
}

func TestCheckMimicRequiresHazardPointerSemantics(t *testing.T) {
	matchingSummary := program.NewAssign(program.NewVarExpr("g1"), program.NewVarExpr("g2"))
	p := buildAssignProgram(t, matchingSummary)
	cfg := cfgAtFirstStatement(t, p)

	opts := options.Default()
	opts.ReplaceInterferenceWithSummary = true
	opts.Memory = options.ManualMemory

	err := chkmimic.CheckMimic(storeOf(cfg), p, opts)

	assert.ErrorIs(t, err, chkmimic.ErrNotHazardPointers)
}
