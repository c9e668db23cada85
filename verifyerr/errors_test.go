package verifyerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolff09/tmrverify/post"
	"github.com/wolff09/tmrverify/verifyerr"
)

func TestClassifyRoutesPostFaultsToConformance(t *testing.T) {
	err := verifyerr.Classify("dereference", post.ErrDerefNullOrUndef)

	var ce *verifyerr.ConformanceError
	assert.True(t, errors.As(err, &ce))
	assert.True(t, verifyerr.IsConformance(err))
	assert.True(t, errors.Is(err, post.ErrDerefNullOrUndef))
}

func TestClassifyRoutesUnsupportedConstructsToToolError(t *testing.T) {
	err := verifyerr.Classify("step", post.ErrUnsupportedStatement)

	var te *verifyerr.ToolError
	assert.True(t, errors.As(err, &te))
	assert.False(t, verifyerr.IsConformance(err))
}

func TestClassifyPassesNilThrough(t *testing.T) {
	assert.NoError(t, verifyerr.Classify("anything", nil))
}
