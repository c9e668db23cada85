package shapeops

import "errors"

// ErrDimensionMismatch indicates Merge was called on shapes of unequal size.
var ErrDimensionMismatch = errors.New("shapeops: dimension mismatch")
