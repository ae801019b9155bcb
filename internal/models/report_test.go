package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

func TestNewObjectRow(t *testing.T) {
	box := voxel.BoundingBox{Min: voxel.Point{X: 1, Y: 2, Z: 3}, Extent: voxel.Extent{X: 4, Y: 5, Z: 6}}
	mask, err := voxel.NewFilledMask(box, voxel.DefaultBinaryValues())
	require.NoError(t, err)
	obj := &voxel.Object{Mask: *mask, NumVoxels: 120}

	row := NewObjectRow("roi-1", 3, obj)
	assert.Equal(t, ObjectRow{
		Region: "roi-1",
		Index:  3,
		Min:    [3]int{1, 2, 3},
		Extent: [3]int{4, 5, 6},
		Voxels: 120,
	}, row)
}
