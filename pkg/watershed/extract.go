package watershed

import (
	"github.com/pkg/errors"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// LabelGrid holds one integer label per voxel of a working region, 0 meaning
// background. Origin is the absolute position of the region's first voxel
// and InMask, when non-nil, restricts which voxels are considered.
type LabelGrid struct {
	Extent voxel.Extent
	Origin voxel.Point
	Labels []int64
	InMask []bool
}

func (g *LabelGrid) validate() error {
	if err := g.Extent.Validate(); err != nil {
		return err
	}
	if len(g.Labels) != g.Extent.Volume() {
		return errors.Wrapf(voxel.ErrDimensionMismatch, "label buffer has %d voxels, extent %s needs %d",
			len(g.Labels), g.Extent, g.Extent.Volume())
	}
	if g.InMask != nil && len(g.InMask) != len(g.Labels) {
		return errors.Wrapf(voxel.ErrDimensionMismatch, "mask has %d voxels, labels have %d",
			len(g.InMask), len(g.Labels))
	}
	return nil
}

func (g *LabelGrid) considered(idx int) bool {
	return g.InMask == nil || g.InMask[idx]
}

// RemapLabels renumbers the labels in place to the dense sequence 1..N in
// order of first appearance (row-major) and returns one accumulated bounding
// box per new label, in local coordinates. Running it again on its own output
// changes nothing.
func RemapLabels(g *LabelGrid) ([]voxel.BoxAccumulator, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	dense := make(map[int64]int64)
	var boxes []voxel.BoxAccumulator

	e := g.Extent
	idx := 0
	for z := 0; z < e.Z; z++ {
		for y := 0; y < e.Y; y++ {
			for x := 0; x < e.X; x++ {
				label := g.Labels[idx]
				if label != 0 && g.considered(idx) {
					index, ok := dense[label]
					if !ok {
						index = int64(len(boxes))
						dense[label] = index
						boxes = append(boxes, voxel.BoxAccumulator{})
					}
					boxes[index].Add(x, y, z)
					g.Labels[idx] = index + 1
				}
				idx++
			}
		}
	}
	return boxes, nil
}

// ExtractObjects remaps the label grid and cuts one object per label, in
// ascending order of the dense ids. Masks and boxes use absolute coordinates.
// The label grid is modified in place.
func ExtractObjects(g *LabelGrid, values voxel.BinaryValues) ([]voxel.Object, error) {
	boxes, err := RemapLabels(g)
	if err != nil {
		return nil, err
	}
	objects := make([]voxel.Object, 0, len(boxes))
	for i := range boxes {
		local, ok := boxes[i].Box()
		if !ok {
			continue
		}
		obj, err := cutObject(g, local, int64(i+1), values)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func cutObject(g *LabelGrid, local voxel.BoundingBox, label int64, values voxel.BinaryValues) (voxel.Object, error) {
	box := voxel.BoundingBox{Min: local.Min.Add(g.Origin), Extent: local.Extent}
	mask, err := voxel.NewObjectMask(box, values)
	if err != nil {
		return voxel.Object{}, err
	}
	count := 0
	dst := 0
	for z := 0; z < local.Extent.Z; z++ {
		for y := 0; y < local.Extent.Y; y++ {
			src := g.Extent.Offset(local.Min.X, local.Min.Y+y, local.Min.Z+z)
			for x := 0; x < local.Extent.X; x++ {
				if g.Labels[src] == label && g.considered(src) {
					mask.Data[dst] = values.On
					count++
				}
				src++
				dst++
			}
		}
	}
	return voxel.Object{Mask: *mask, NumVoxels: count}, nil
}
