package voxel

import "errors"

// Sentinel errors for malformed inputs. Callers receive them wrapped with
// context and should test with errors.Is.
var (
	// ErrInvalidExtent indicates an extent with a non-positive axis.
	ErrInvalidExtent = errors.New("voxel: extent must be at least 1 along every axis")

	// ErrDimensionMismatch indicates a buffer whose length disagrees with its extent,
	// or two inputs whose shapes should agree but do not.
	ErrDimensionMismatch = errors.New("voxel: buffer size does not match extent")

	// ErrMaskOutOfBounds indicates a mask or box that is not fully inside its parent grid.
	ErrMaskOutOfBounds = errors.New("voxel: mask extends beyond the parent grid")
)
