package watershed

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// Summary describes the size distribution of a set of objects.
type Summary struct {
	Count        int
	TotalVoxels  int
	MinVoxels    int
	MaxVoxels    int
	MeanVoxels   float64
	StdDevVoxels float64
}

// Summarize computes size statistics over objects.
func Summarize(objects []voxel.Object) Summary {
	if len(objects) == 0 {
		return Summary{}
	}
	sizes := lo.Map(objects, func(o voxel.Object, _ int) float64 {
		return float64(o.NumVoxels)
	})
	s := Summary{
		Count:       len(objects),
		TotalVoxels: int(floats.Sum(sizes)),
		MinVoxels:   int(floats.Min(sizes)),
		MaxVoxels:   int(floats.Max(sizes)),
	}
	if len(sizes) == 1 {
		s.MeanVoxels = sizes[0]
		return s
	}
	s.MeanVoxels, s.StdDevVoxels = stat.MeanStdDev(sizes, nil)
	return s
}
