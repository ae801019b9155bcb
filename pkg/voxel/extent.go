// Package voxel holds the dense grid, mask and object types shared by the
// segmentation engine, the slice loader and the viewer.
package voxel

import (
	"fmt"

	"github.com/pkg/errors"
)

// Point is an integer voxel coordinate.
type Point struct {
	X, Y, Z int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Extent is the size of a grid or mask along each axis.
type Extent struct {
	X, Y, Z int
}

// NewExtent creates an extent, rejecting any axis smaller than 1.
func NewExtent(x, y, z int) (Extent, error) {
	e := Extent{x, y, z}
	if err := e.Validate(); err != nil {
		return Extent{}, err
	}
	return e, nil
}

// Validate reports ErrInvalidExtent if any axis is smaller than 1.
func (e Extent) Validate() error {
	if e.X < 1 || e.Y < 1 || e.Z < 1 {
		return errors.Wrapf(ErrInvalidExtent, "got %s", e)
	}
	return nil
}

// Volume is the number of voxels covered by the extent.
func (e Extent) Volume() int {
	return e.X * e.Y * e.Z
}

// AreaXY is the number of voxels in one z-plane.
func (e Extent) AreaXY() int {
	return e.X * e.Y
}

// Is3D reports whether the extent has more than one z-plane.
// A single plane is treated as a 2D image with 8-connectivity.
func (e Extent) Is3D() bool {
	return e.Z > 1
}

// Offset returns the flat row-major index of (x,y,z).
func (e Extent) Offset(x, y, z int) int {
	return z*e.X*e.Y + y*e.X + x
}

// OffsetOf returns the flat index of p.
func (e Extent) OffsetOf(p Point) int {
	return e.Offset(p.X, p.Y, p.Z)
}

// PointAt is the inverse of Offset.
func (e Extent) PointAt(offset int) Point {
	area := e.X * e.Y
	z := offset / area
	rem := offset - z*area
	return Point{rem % e.X, rem / e.X, z}
}

// Contains reports whether (x,y,z) lies inside [0,e) on every axis.
func (e Extent) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < e.X && y < e.Y && z < e.Z
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%dx%d", e.X, e.Y, e.Z)
}
