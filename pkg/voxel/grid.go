package voxel

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Intensity is the set of numeric voxel types a Grid may hold.
type Intensity interface {
	constraints.Integer | constraints.Float
}

// Grid is a dense 3D buffer stored in row-major order:
// the voxel (x,y,z) lives at Data[z*X*Y + y*X + x].
type Grid[T Intensity] struct {
	Extent Extent
	Data   []T
}

// NewGrid allocates a zero-filled grid.
func NewGrid[T Intensity](e Extent) (*Grid[T], error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &Grid[T]{Extent: e, Data: make([]T, e.Volume())}, nil
}

// WrapGrid uses data as the backing buffer of a grid without copying.
func WrapGrid[T Intensity](e Extent, data []T) (*Grid[T], error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if len(data) != e.Volume() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "buffer has %d voxels, extent %s needs %d",
			len(data), e, e.Volume())
	}
	return &Grid[T]{Extent: e, Data: data}, nil
}

// GridFromPlanes builds a 2D grid (z=1) from rows, mostly useful for small
// hand-written inputs.
func GridFromPlanes[T Intensity](planes ...[][]T) (*Grid[T], error) {
	if len(planes) == 0 || len(planes[0]) == 0 || len(planes[0][0]) == 0 {
		return nil, errors.Wrap(ErrInvalidExtent, "no voxels given")
	}
	e := Extent{X: len(planes[0][0]), Y: len(planes[0]), Z: len(planes)}
	data := make([]T, 0, e.Volume())
	for z, plane := range planes {
		if len(plane) != e.Y {
			return nil, errors.Wrapf(ErrDimensionMismatch, "plane %d has %d rows, want %d", z, len(plane), e.Y)
		}
		for y, row := range plane {
			if len(row) != e.X {
				return nil, errors.Wrapf(ErrDimensionMismatch, "plane %d row %d has %d voxels, want %d",
					z, y, len(row), e.X)
			}
			data = append(data, row...)
		}
	}
	return &Grid[T]{Extent: e, Data: data}, nil
}

// Validate checks the extent and that the buffer length agrees with it.
func (g *Grid[T]) Validate() error {
	if g == nil {
		return errors.Wrap(ErrInvalidExtent, "nil grid")
	}
	if err := g.Extent.Validate(); err != nil {
		return err
	}
	if len(g.Data) != g.Extent.Volume() {
		return errors.Wrapf(ErrDimensionMismatch, "buffer has %d voxels, extent %s needs %d",
			len(g.Data), g.Extent, g.Extent.Volume())
	}
	return nil
}

// At returns the value at (x,y,z).
func (g *Grid[T]) At(x, y, z int) T {
	return g.Data[g.Extent.Offset(x, y, z)]
}

// Set stores v at (x,y,z).
func (g *Grid[T]) Set(x, y, z int, v T) {
	g.Data[g.Extent.Offset(x, y, z)] = v
}

// Crop copies the voxels inside box into a new grid whose origin is box.Min.
func (g *Grid[T]) Crop(box BoundingBox) (*Grid[T], error) {
	if err := box.InsideOf(g.Extent); err != nil {
		return nil, err
	}
	out := &Grid[T]{Extent: box.Extent, Data: make([]T, box.Extent.Volume())}
	rowLen := box.Extent.X
	dst := 0
	for z := 0; z < box.Extent.Z; z++ {
		for y := 0; y < box.Extent.Y; y++ {
			src := g.Extent.Offset(box.Min.X, box.Min.Y+y, box.Min.Z+z)
			copy(out.Data[dst:dst+rowLen], g.Data[src:src+rowLen])
			dst += rowLen
		}
	}
	return out, nil
}
