package watershed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

func TestRemapLabelsDense(t *testing.T) {
	g := &LabelGrid{
		Extent: voxel.Extent{X: 7, Y: 1, Z: 1},
		Labels: []int64{0, 5, 5, 9, 0, 2, 9},
	}
	boxes, err := RemapLabels(g)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 1, 2, 0, 3, 2}, g.Labels)
	require.Len(t, boxes, 3)

	box, ok := boxes[1].Box()
	require.True(t, ok)
	assert.Equal(t, voxel.Point{X: 3}, box.Min)
	assert.Equal(t, voxel.Extent{X: 4, Y: 1, Z: 1}, box.Extent)
}

func TestRemapLabelsIsIdempotent(t *testing.T) {
	g := &LabelGrid{
		Extent: voxel.Extent{X: 3, Y: 2, Z: 2},
		Labels: []int64{7, 7, 3, 0, 3, 12, 12, 0, 7, 3, 3, 3},
	}
	first, err := RemapLabels(g)
	require.NoError(t, err)
	remapped := append([]int64(nil), g.Labels...)

	second, err := RemapLabels(g)
	require.NoError(t, err)
	assert.Equal(t, remapped, g.Labels)
	assert.Equal(t, first, second)
}

func TestRemapLabelsRejectsMismatch(t *testing.T) {
	_, err := RemapLabels(&LabelGrid{Extent: voxel.Extent{X: 2, Y: 2, Z: 1}, Labels: make([]int64, 3)})
	assert.True(t, errors.Is(err, voxel.ErrDimensionMismatch))

	_, err = RemapLabels(&LabelGrid{
		Extent: voxel.Extent{X: 2, Y: 1, Z: 1},
		Labels: make([]int64, 2),
		InMask: make([]bool, 1),
	})
	assert.True(t, errors.Is(err, voxel.ErrDimensionMismatch))
}

func TestExtractObjectsUsesOrigin(t *testing.T) {
	g := &LabelGrid{
		Extent: voxel.Extent{X: 3, Y: 2, Z: 1},
		Origin: voxel.Point{X: 10, Y: 20, Z: 30},
		Labels: []int64{
			4, 4, 8,
			0, 8, 8,
		},
	}
	objects, err := ExtractObjects(g, voxel.DefaultBinaryValues())
	require.NoError(t, err)
	require.Len(t, objects, 2)

	first := objects[0]
	assert.Equal(t, voxel.Point{X: 10, Y: 20, Z: 30}, first.Box().Min)
	assert.Equal(t, voxel.Extent{X: 2, Y: 1, Z: 1}, first.Box().Extent)
	assert.Equal(t, 2, first.NumVoxels)

	second := objects[1]
	assert.Equal(t, voxel.Point{X: 11, Y: 20, Z: 30}, second.Box().Min)
	assert.Equal(t, voxel.Extent{X: 2, Y: 2, Z: 1}, second.Box().Extent)
	assert.Equal(t, []byte{0, 255, 255, 255}, second.Mask.Data)
	assert.Equal(t, 3, second.NumVoxels)
}

func TestExtractObjectsIgnoresVoxelsOutsideMask(t *testing.T) {
	g := &LabelGrid{
		Extent: voxel.Extent{X: 3, Y: 1, Z: 1},
		Labels: []int64{1, 1, 1},
		InMask: []bool{true, false, true},
	}
	objects, err := ExtractObjects(g, voxel.DefaultBinaryValues())
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, 2, objects[0].NumVoxels)
	assert.Equal(t, []byte{255, 0, 255}, objects[0].Mask.Data)
}
