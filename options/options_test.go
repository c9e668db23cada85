package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolff09/tmrverify/options"
)

func TestDefaultSelectsHazardPointersAndValidPtrMerge(t *testing.T) {
	o := options.Default()

	assert.Equal(t, options.HazardPointers, o.Memory)
	assert.True(t, o.MergeValidPtr)
	assert.Equal(t, options.Unset, o.Expect)
}

func TestMemoryStringMatchesCLIFlagNames(t *testing.T) {
	assert.Equal(t, "PRF", options.HazardPointers.String())
	assert.Equal(t, "GC", options.GarbageCollected.String())
	assert.Equal(t, "MM", options.ManualMemory.String())
}
