package watershed

import (
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

type neighborStep struct {
	dir        Direction
	dx, dy, dz int
	delta      int
}

// domain is the set of voxels one segmentation pass iterates over. Buffers
// are sized to extent; origin is the absolute position of local (0,0,0).
// With a nil inMask every voxel of extent takes part.
type domain struct {
	extent voxel.Extent
	origin voxel.Point
	inMask []bool

	steps []neighborStep
	// deltas maps a direction code to a flat index displacement.
	deltas [numDirections + 1]int
}

func newDomain(extent voxel.Extent, origin voxel.Point, inMask []bool) *domain {
	d := &domain{extent: extent, origin: origin, inMask: inMask}
	area := extent.AreaXY()
	for code := Direction(1); code <= numDirections; code++ {
		dx, dy, dz := code.Offset()
		delta := dz*area + dy*extent.X + dx
		d.deltas[code] = delta
		if dz != 0 && !extent.Is3D() {
			continue
		}
		d.steps = append(d.steps, neighborStep{dir: code, dx: dx, dy: dy, dz: dz, delta: delta})
	}
	return d
}

func (d *domain) size() int {
	return d.extent.Volume()
}

// contains reports whether the local index takes part in segmentation.
func (d *domain) contains(idx int) bool {
	return d.inMask == nil || d.inMask[idx]
}

// forEachNeighbor calls fn for every in-bounds, in-mask neighbor of idx in
// enumeration order, passing the neighbor's index and the code pointing to it.
func (d *domain) forEachNeighbor(idx int, fn func(n int, dir Direction)) {
	p := d.extent.PointAt(idx)
	for _, s := range d.steps {
		if !d.extent.Contains(p.X+s.dx, p.Y+s.dy, p.Z+s.dz) {
			continue
		}
		n := idx + s.delta
		if !d.contains(n) {
			continue
		}
		fn(n, s.dir)
	}
}

// follow returns the index a displacement code points to.
func (d *domain) follow(idx int, dir Direction) int {
	return idx + d.deltas[dir]
}

// absolute converts a local index to grid coordinates.
func (d *domain) absolute(idx int) voxel.Point {
	return d.extent.PointAt(idx).Add(d.origin)
}
