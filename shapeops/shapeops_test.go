package shapeops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/shapeops"
)

func newTestShape() *shape.Shape {
	return shape.New(1, 2, 3, 2)
}

func TestMakeConcretisationOnAlreadyConsistentShapeNoop(t *testing.T) {
	s := newTestShape()
	before := s.Clone()
	ok := shapeops.MakeConcretisation(s)
	require.True(t, ok)
	assert.True(t, before.Equal(s))
}

func TestIsolatePartialConcretisationIsIdentityOnPRED(t *testing.T) {
	s := newTestShape()
	a, b := s.OffsetGlobals(), s.OffsetGlobals()+1
	result, ok := shapeops.IsolatePartialConcretisation(s, a, b, relset.PRED)
	require.True(t, ok)
	assert.True(t, s.Equal(result))
}

func TestIsolatePartialConcretisationNarrows(t *testing.T) {
	s := newTestShape()
	a, b := s.OffsetGlobals(), s.OffsetGlobals()+1
	result, ok := shapeops.IsolatePartialConcretisation(s, a, b, relset.EQ_)
	require.True(t, ok)
	assert.Equal(t, relset.EQ_, result.At(a, b))
	// Equating two distinct globals forces their relation to every other
	// cell term to coincide too (EQ row copy); NULL-relations in particular
	// must still agree.
	assert.Equal(t, result.At(a, s.IndexNull()), result.At(b, s.IndexNull()))
}

func TestIsolatePartialConcretisationEmptyMatchFails(t *testing.T) {
	s := newTestShape()
	a := s.OffsetGlobals()
	// The diagonal only ever contains EQ; BT can never match there.
	_, ok := shapeops.IsolatePartialConcretisation(s, a, a, relset.BT_)
	assert.False(t, ok)
}

func TestDisambiguateIsAPartition(t *testing.T) {
	s := newTestShape()
	row := s.OffsetGlobals()
	results := shapeops.Disambiguate(s, row)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.True(t, shapeops.IsConcretisation(r, s))
		assert.True(t, shapeops.Consistent(r))
		for col := 0; col < r.Size(); col++ {
			if col == row {
				continue
			}
			cell := r.At(row, col)
			one := cell == relset.EQ_ ||
				cell.Subset(relset.MT_GT) ||
				cell.Subset(relset.MF_GF) ||
				cell == relset.BT_
			assert.True(t, one, "cell (%d,%d)=%v must be a maximal disambiguation atom", row, col, cell)
		}
	}
}

func TestMergeEmptyGivesNil(t *testing.T) {
	result, err := shapeops.Merge(nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestMergeIsPointwiseUnion(t *testing.T) {
	a := newTestShape()
	b := a.Clone()
	g0, g1 := a.OffsetGlobals(), a.OffsetGlobals()+1
	part1, ok1 := shapeops.IsolatePartialConcretisation(a, g0, g1, relset.MT_GT)
	part2, ok2 := shapeops.IsolatePartialConcretisation(b, g0, g1, relset.MF_GF)
	require.True(t, ok1)
	require.True(t, ok2)

	merged, err := shapeops.Merge([]*shape.Shape{part1, part2})
	require.NoError(t, err)
	assert.True(t, part1.At(g0, g1).Subset(merged.At(g0, g1)))
	assert.True(t, part2.At(g0, g1).Subset(merged.At(g0, g1)))
}

func TestRemoveSuccessorsDisconnectsPreFromPost(t *testing.T) {
	s := newTestShape()
	g0, g1, g2 := s.OffsetGlobals(), s.OffsetGlobals()+1, s.IndexLocal(0, 0)
	// g0 -> g1 (points to), g2 -> g0 (points to g0): g2 is a predecessor, g1 a successor.
	s.Set(g0, g1, relset.MT_)
	s.Set(g2, g0, relset.MT_)
	shapeops.RemoveSuccessors(s, g0)
	assert.Equal(t, relset.BT_, s.At(g2, g1))
}
