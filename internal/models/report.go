package models

import (
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// ObjectRow describes one segmented object in a run report
type ObjectRow struct {
	// Region is the name of the job that produced the object
	Region string `yaml:"region"`

	// Index is the position of the object within its region, starting at 1
	Index int `yaml:"index"`

	// Min is the minimal corner of the bounding box
	Min [3]int `yaml:"min"`

	// Extent is the size of the bounding box
	Extent [3]int `yaml:"extent"`

	// Voxels is the number of ON voxels
	Voxels int `yaml:"voxels"`
}

// RunReport summarizes one invocation of the watershed command
type RunReport struct {
	// Input is the directory the slices were read from
	Input string `yaml:"input"`

	// Extent is the size of the loaded volume
	Extent [3]int `yaml:"extent"`

	// MinimaOnly is true when only minima were requested
	MinimaOnly bool `yaml:"minimaOnly"`

	// Objects lists every object of every region in output order
	Objects []ObjectRow `yaml:"objects"`
}

// NewObjectRow builds the report row of one object
func NewObjectRow(region string, index int, obj *voxel.Object) ObjectRow {
	box := obj.Box()
	return ObjectRow{
		Region: region,
		Index:  index,
		Min:    [3]int{box.Min.X, box.Min.Y, box.Min.Z},
		Extent: [3]int{box.Extent.X, box.Extent.Y, box.Extent.Z},
		Voxels: obj.NumVoxels,
	}
}
