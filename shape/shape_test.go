package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/relset"
	"github.com/wolff09/tmrverify/shape"
)

func newTestShape() *shape.Shape {
	// 1 observer var, 2 globals, 3 locals/thread, 2 threads.
	return shape.New(1, 2, 3, 2)
}

func TestSelfIsEQ(t *testing.T) {
	s := newTestShape()
	for i := 0; i < s.Size(); i++ {
		assert.Equal(t, relset.EQ_, s.At(i, i))
	}
}

func TestSymmetryInvariant(t *testing.T) {
	s := newTestShape()
	s.Set(s.OffsetGlobals(), s.OffsetGlobals()+1, relset.MT_)
	for i := 0; i < s.Size(); i++ {
		for j := 0; j < s.Size(); j++ {
			assert.Equal(t, relset.Symmetric(s.At(i, j)), s.At(j, i), "(%d,%d)", i, j)
		}
	}
}

func TestSpecialCellsConstraints(t *testing.T) {
	s := newTestShape()
	assert.Equal(t, relset.BT_, s.At(s.IndexNull(), s.IndexUndef()))
	assert.Equal(t, relset.BT_, s.At(s.IndexUndef(), s.IndexReuse()))
	assert.True(t, s.At(s.IndexReuse(), s.IndexNull()).Contains(relset.MT))
	for i := s.OffsetVars(); i < s.Size(); i++ {
		assert.True(t, s.At(i, s.IndexUndef()).Subset(relset.MT_GT_BT))
	}
}

func TestExtendThenShrinkIsNoOp(t *testing.T) {
	s := newTestShape()
	before := s.Clone()
	s.Extend()
	assert.Equal(t, before.Size()+3, s.Size())
	s.Shrink()
	require.Equal(t, before.Size(), s.Size())
	assert.True(t, before.Equal(s))
}

func TestWithExtensionAlwaysShrinks(t *testing.T) {
	s := newTestShape()
	sizeBefore := s.Size()
	err := s.WithExtension(func(ext *shape.Shape) error {
		assert.Equal(t, sizeBefore+3, ext.Size())
		return assert.AnError
	})
	assert.Error(t, err)
	assert.Equal(t, sizeBefore, s.Size())
}

func TestCompareTotalOrder(t *testing.T) {
	a := newTestShape()
	b := newTestShape()
	assert.True(t, a.Equal(b))
	b.Set(b.OffsetGlobals(), b.OffsetGlobals()+1, relset.MT_)
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, 0, a.Compare(b))
}

func TestCloneIndependence(t *testing.T) {
	a := newTestShape()
	b := a.Clone()
	b.Set(b.OffsetGlobals(), b.OffsetGlobals()+1, relset.MT_)
	assert.False(t, a.Equal(b))
}
