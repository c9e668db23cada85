package relset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/relset"
)

func TestSymmetricInvolution(t *testing.T) {
	for v := relset.RelSet(0); v < 64; v++ {
		require.Equal(t, v, relset.Symmetric(relset.Symmetric(v)), "symmetric must be an involution for %v", v)
	}
}

func TestSymmetricSingleRelations(t *testing.T) {
	cases := []struct {
		r    relset.Rel
		want relset.Rel
	}{
		{relset.EQ, relset.EQ},
		{relset.BT, relset.BT},
		{relset.MT, relset.MF},
		{relset.MF, relset.MT},
		{relset.GT, relset.GF},
		{relset.GF, relset.GT},
	}
	for _, c := range cases {
		assert.Equal(t, relset.Singleton(c.want), relset.Symmetric(relset.Singleton(c.r)))
	}
}

func TestSubsetUnionIntersection(t *testing.T) {
	a := relset.MT_GT
	b := relset.GT_BT
	assert.True(t, relset.Intersection(a, b).Subset(a))
	assert.True(t, relset.Intersection(a, b).Subset(b))
	assert.True(t, a.Subset(relset.Union(a, b)))
	assert.Equal(t, relset.GT_, relset.Intersection(a, b))
}

func TestHaveCommon(t *testing.T) {
	assert.True(t, relset.HaveCommon(relset.MT_GT, relset.GT_BT))
	assert.False(t, relset.HaveCommon(relset.EQ_, relset.BT_))
}

func TestSingletonCountString(t *testing.T) {
	assert.Equal(t, 1, relset.EQ_.Count())
	assert.Equal(t, 0, relset.Empty.Count())
	assert.Equal(t, "∅", relset.Empty.String())
	assert.NotEmpty(t, relset.PRED.String())
}

// ConsistentRel's EQ row should at minimum allow the reflexive chain: x=y=z.
func TestConsistentRelReflexive(t *testing.T) {
	assert.True(t, relset.ConsistentRel(relset.EQ, relset.EQ_, relset.EQ_))
	assert.True(t, relset.ConsistentRel(relset.MT, relset.EQ_, relset.MT_))
	assert.True(t, relset.ConsistentRel(relset.MT, relset.MT_, relset.EQ_))
}

func TestConsistentRelImpossible(t *testing.T) {
	// x=z cannot hold if x and z share no relation at all in their projections.
	assert.False(t, relset.ConsistentRel(relset.EQ, relset.MT_, relset.MT_))
}
