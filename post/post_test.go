package post_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/post"
	"github.com/wolff09/tmrverify/program"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/verifcfg"
)

// buildPush builds a Treiber-stack push function: malloc a node, read the
// shared top into a local, link node.next = old top, then CAS top from old
// to node, firing a "push" linearisation point on success.
func buildPush(t *testing.T) (*program.Program, *program.Function) {
	t.Helper()
	top := program.NewVariable("Top")
	node := program.NewVariable("node")
	old := program.NewVariable("old")

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
	f, ok := p.Func("push")
	require.True(t, ok)
	return p, f
}

func newConfig(numGlobals, numLocals, numThreads int) *verifcfg.Configuration {
	s := shape.New(0, numGlobals, numLocals, numThreads)
	return verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
}

// runToFixedPoint drives Post statement by statement for thread tid,
// following only the first (true) successor at every branch point, until
// it falls off the end of body.
func runToFixedPoint(t *testing.T, cfg *verifcfg.Configuration, p *program.Program, body []program.Statement, tid int) *verifcfg.Configuration {
	t.Helper()
	cur := cfg
	stmt := body[0]
	for stmt != nil {
		succs, err := post.Post(cur, stmt, tid)
		require.NoError(t, err)
		require.NotEmpty(t, succs)
		cur = succs[0]
		id := cur.PC[tid]
		if id == 0 {
			break
		}
		next, ok := p.StatementByID(id)
		require.True(t, ok)
		stmt = next
	}
	return cur
}

func TestPushLinksFreshNodeOverOldTop(t *testing.T) {
	p, push := buildPush(t)
	cfg := newConfig(1, p.NumLocalSlots(), 1)

	node := push.Locals()[0]
	old := push.Locals()[1]
	require.Equal(t, "node", node.Name())
	require.Equal(t, "old", old.Name())

	out, err := post.Post(cfg, push.Body()[0], 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	nodeIdx := cfg.Shape.IndexLocal(node.ID(), 0)
	assert.True(t, out[0].Own[nodeIdx])
	assert.True(t, out[0].ValidPtr[nodeIdx])
}

func TestPushEndsWithNodePointingAtOldTop(t *testing.T) {
	p, push := buildPush(t)
	cfg := newConfig(1, 2, 1)

	final := runToFixedPoint(t, cfg, p, push.Body(), 0)

	node := push.Locals()[0]
	old := push.Locals()[1]
	nodeIdx := final.Shape.IndexLocal(node.ID(), 0)
	oldIdx := final.Shape.IndexLocal(old.ID(), 0)
	assert.True(t, final.Shape.At(nodeIdx, oldIdx).Contains(relset.MT))
}

func TestMallocThenDerefIsSafe(t *testing.T) {
	_, push := buildPush(t)
	cfg := newConfig(1, 2, 1)

	mallocked, err := post.Post(cfg, push.Body()[0], 0)
	require.NoError(t, err)
	require.Len(t, mallocked, 1)

	node := push.Locals()[0]
	nodeIdx := cfg.Shape.IndexLocal(node.ID(), 0)
	// A freshly allocated cell must never be NULL or UNDEF, so reading its
	// next field is safe.
	assert.False(t, mallocked[0].Shape.At(nodeIdx, mallocked[0].Shape.IndexNull()).Contains(relset.EQ))
}

func TestKillHavocsRegister(t *testing.T) {
	node := program.NewVariable("node")
	body := []program.Statement{
		program.NewMalloc(program.NewVarExpr("node")),
		program.NewKill(program.NewVarExpr("node")),
	}
	fn := program.NewFunction("f", []*program.Variable{node}, body)
	p := program.NewProgram(nil, nil, nil, []*program.Function{fn})
	require.NoError(t, p.Build(false))

	cfg := newConfig(0, 1, 1)
	afterMalloc, err := post.Post(cfg, fn.Body()[0], 0)
	require.NoError(t, err)
	afterKill, err := post.Post(afterMalloc[0], fn.Body()[1], 0)
	require.NoError(t, err)
	require.Len(t, afterKill, 1)

	nodeIdx := cfg.Shape.IndexLocal(node.ID(), 0)
	out := afterKill[0]
	assert.False(t, out.Own[nodeIdx])
	assert.False(t, out.ValidPtr[nodeIdx])
	assert.True(t, out.Shape.At(nodeIdx, out.Shape.IndexUndef()).Contains(relset.MT))
}

func TestCASProducesSuccessorConfigurations(t *testing.T) {
	_, push := buildPush(t)
	cfg := newConfig(1, 2, 1)

	afterMalloc, err := post.Post(cfg, push.Body()[0], 0)
	require.NoError(t, err)
	afterOld, err := post.Post(afterMalloc[0], push.Body()[1], 0)
	require.NoError(t, err)
	afterLink, err := post.Post(afterOld[0], push.Body()[2], 0)
	require.NoError(t, err)

	casStmt := push.Body()[3].(*program.CompareAndSwap)
	out, err := post.Post(afterLink[0], casStmt, 0)
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
