package voxel

import (
	"fmt"

	"github.com/pkg/errors"
)

// BoundingBox is an axis-aligned box given by its minimal corner and its extent.
type BoundingBox struct {
	Min    Point
	Extent Extent
}

// NewBoundingBox creates a box, rejecting an invalid extent.
func NewBoundingBox(min Point, extent Extent) (BoundingBox, error) {
	if err := extent.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return BoundingBox{Min: min, Extent: extent}, nil
}

// BoxCovering returns the box spanning the whole of an extent.
func BoxCovering(e Extent) BoundingBox {
	return BoundingBox{Extent: e}
}

// Max is the inclusive maximal corner.
func (b BoundingBox) Max() Point {
	return Point{b.Min.X + b.Extent.X - 1, b.Min.Y + b.Extent.Y - 1, b.Min.Z + b.Extent.Z - 1}
}

// Contains reports whether the absolute point p lies inside the box.
func (b BoundingBox) Contains(p Point) bool {
	return b.Extent.Contains(p.X-b.Min.X, p.Y-b.Min.Y, p.Z-b.Min.Z)
}

// InsideOf reports ErrMaskOutOfBounds unless the box lies entirely within parent.
func (b BoundingBox) InsideOf(parent Extent) error {
	max := b.Max()
	if b.Min.X < 0 || b.Min.Y < 0 || b.Min.Z < 0 ||
		max.X >= parent.X || max.Y >= parent.Y || max.Z >= parent.Z {
		return errors.Wrapf(ErrMaskOutOfBounds, "box %s does not fit in %s", b, parent)
	}
	return nil
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%s %s]", b.Min, b.Extent)
}

// BoxAccumulator grows a bounding box one voxel at a time.
// The zero value holds no box.
type BoxAccumulator struct {
	defined  bool
	min, max Point
}

// Add extends the accumulated box to include (x,y,z).
func (a *BoxAccumulator) Add(x, y, z int) {
	if !a.defined {
		a.min = Point{x, y, z}
		a.max = a.min
		a.defined = true
		return
	}
	a.min.X = min(a.min.X, x)
	a.min.Y = min(a.min.Y, y)
	a.min.Z = min(a.min.Z, z)
	a.max.X = max(a.max.X, x)
	a.max.Y = max(a.max.Y, y)
	a.max.Z = max(a.max.Z, z)
}

// Box returns the accumulated box, or false if nothing was added.
func (a *BoxAccumulator) Box() (BoundingBox, bool) {
	if !a.defined {
		return BoundingBox{}, false
	}
	return BoundingBox{
		Min: a.min,
		Extent: Extent{
			X: a.max.X - a.min.X + 1,
			Y: a.max.Y - a.min.Y + 1,
			Z: a.max.Z - a.min.Z + 1,
		},
	}, true
}
