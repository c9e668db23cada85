package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/encoding"
	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/verifcfg"
)

func newCfg(t *testing.T) *verifcfg.Configuration {
	t.Helper()
	s := shape.New(0, 1, 1, 1)
	return verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
}

func TestTakeInsertsFirstConfigurationAsNew(t *testing.T) {
	st := encoding.NewStore()
	cfg := newCfg(t)

	isNew, stored := st.Take(cfg)

	assert.True(t, isNew)
	assert.Same(t, cfg, stored)
	assert.Equal(t, 1, st.Size())
}

func TestTakeMergesConfigurationSharingBothOrders(t *testing.T) {
	st := encoding.NewStore()
	first := newCfg(t)
	isNew, _ := st.Take(first)
	require.True(t, isNew)

	second := newCfg(t)
	localIdx := second.Shape.IndexLocal(0, 0)
	nullIdx := second.Shape.IndexNull()
	second.Shape.AddRelation(localIdx, nullIdx, relset.GT)

	changed, stored := st.Take(second)

	assert.True(t, changed)
	assert.Same(t, first, stored)
	assert.Equal(t, 1, st.Size())
	assert.True(t, stored.Shape.At(localIdx, nullIdx).Contains(relset.GT))
	assert.True(t, stored.Shape.At(localIdx, nullIdx).Contains(relset.MT))
}

func TestTakeReportsNoChangeWhenAlreadySubsumed(t *testing.T) {
	st := encoding.NewStore()
	first := newCfg(t)
	st.Take(first)

	duplicate := newCfg(t)
	changed, stored := st.Take(duplicate)

	assert.False(t, changed)
	assert.Same(t, first, stored)
	assert.Equal(t, 1, st.Size())
}

func TestTakeSeparatesConfigurationsWithDifferentFreedFlags(t *testing.T) {
	st := encoding.NewStore()
	first := newCfg(t)
	st.Take(first)

	second := newCfg(t)
	second.Freed[second.Shape.IndexLocal(0, 0)] = true
	isNew, stored := st.Take(second)

	assert.True(t, isNew)
	assert.Same(t, second, stored)
	assert.Equal(t, 2, st.Size())
}

func TestTakeNarrowsValidPtrByConjunction(t *testing.T) {
	st := encoding.NewStore()
	first := newCfg(t)
	localIdx := first.Shape.IndexLocal(0, 0)
	first.ValidPtr[localIdx] = true
	st.Take(first)

	second := newCfg(t)
	// ValidPtr left false on second: conjunction must narrow the stored one.
	changed, stored := st.Take(second)

	assert.True(t, changed)
	assert.False(t, stored.ValidPtr[localIdx])
}

func TestAllGivesEveryDistinctConfiguration(t *testing.T) {
	st := encoding.NewStore()
	a := newCfg(t)
	b := newCfg(t)
	b.Retired[b.Shape.IndexLocal(0, 0)] = true

	st.Take(a)
	st.Take(b)

	assert.Len(t, st.All(), 2)
}
