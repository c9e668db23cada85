package verifcfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/shape"
	"github.com/wolff09/tmrverify/verifcfg"
)

func newTestConfig() *verifcfg.Configuration {
	s := shape.New(1, 1, 2, 1)
	return verifcfg.New(s, observer.MultiState{}, observer.MultiState{})
}

func TestNewZeroesAuxiliaryRegisters(t *testing.T) {
	c := newTestConfig()
	for i := range c.Own {
		assert.False(t, c.Own[i])
		assert.False(t, c.Freed[i])
	}
}

func TestCopyIsIndependent(t *testing.T) {
	c := newTestConfig()
	c.Own[0] = true
	cp := c.Copy()
	cp.Own[0] = false
	assert.True(t, c.Own[0])
	assert.False(t, cp.Own[0])
	assert.NotSame(t, c.Shape, cp.Shape)
}

func TestWithExtensionRestoresOriginalSize(t *testing.T) {
	c := newTestConfig()
	originalSize := c.Shape.Size()
	var sawSize int
	err := c.WithExtension(func(extended *verifcfg.Configuration) error {
		sawSize = extended.Shape.Size()
		assert.Len(t, extended.Own, sawSize)
		return nil
	})
	require.NoError(t, err)
	assert.Greater(t, sawSize, originalSize)
	assert.Equal(t, originalSize, c.Shape.Size())
	assert.Len(t, c.Own, originalSize)
}

func TestResetCellClearsRegisters(t *testing.T) {
	c := newTestConfig()
	c.Own[0] = true
	c.Freed[0] = true
	c.LocalEpoch[0] = 3
	c.ResetCell(0)
	assert.False(t, c.Own[0])
	assert.False(t, c.Freed[0])
	assert.Equal(t, 0, c.LocalEpoch[0])
}
