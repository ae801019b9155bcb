// Package watershed implements rainfall watershed segmentation of dense 2D
// and 3D intensity grids.
//
// Every voxel is given a chain code pointing at its steepest lower neighbor.
// Plateaus are made lower-complete by flood fill and a breadth-first pass
// from their edges, after which following the codes from any voxel ends at
// exactly one minimum or seed. Voxels sharing that end point form one object.
package watershed

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// Stage is a step of the segmentation pipeline.
type Stage int

const (
	StageIdle Stage = iota
	StageSeedsMarked
	StageDescentComputed
	StagePlateausResolved
	StageLabeled
	StageObjectsExtracted
	StageMinimaReturned
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSeedsMarked:
		return "seeds-marked"
	case StageDescentComputed:
		return "descent-computed"
	case StagePlateausResolved:
		return "plateaus-resolved"
	case StageLabeled:
		return "labeled"
	case StageObjectsExtracted:
		return "objects-extracted"
	case StageMinimaReturned:
		return "minima-returned"
	default:
		return "unknown"
	}
}

// Params controls one segmentation call.
type Params struct {
	// ExitWithMinimaOnly stops after plateau resolution and returns one
	// single-voxel object per discovered minimum.
	ExitWithMinimaOnly bool

	// OutputValues is the ON/OFF convention of the produced masks.
	// The zero value selects voxel.DefaultBinaryValues.
	OutputValues voxel.BinaryValues

	// Logger receives debug output for each stage. Nil disables logging.
	Logger *zap.SugaredLogger
}

func (p Params) outputValues() voxel.BinaryValues {
	if p.OutputValues == (voxel.BinaryValues{}) {
		return voxel.DefaultBinaryValues()
	}
	return p.OutputValues
}

func (p Params) logger() *zap.SugaredLogger {
	if p.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return p.Logger
}

// Result is the outcome of a segmentation call.
type Result struct {
	// Objects are ordered by ascending label id. In minima-only mode they
	// are single voxels, one per minimum.
	Objects []voxel.Object

	// Minima is only filled in minima-only mode, in row-major order of each
	// minimum's first voxel.
	Minima []MinimumRegion

	// Stage is the terminal stage reached.
	Stage Stage
}

// Segment partitions the whole grid into catchment basins.
// The grid and the seeds are only read.
func Segment[T voxel.Intensity](grid *voxel.Grid[T], seeds []voxel.Seed, params Params) (*Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid intensity grid")
	}
	maxSeed, err := validateSeeds(seeds)
	if err != nil {
		return nil, err
	}
	dom := newDomain(grid.Extent, voxel.Point{}, nil)
	return run(dom, grid.Data, seeds, maxSeed, params)
}

// SegmentMasked partitions only the ON voxels of mask. The mask's box must
// lie inside the grid; neighbors outside the mask are never considered and
// the produced objects use absolute grid coordinates.
func SegmentMasked[T voxel.Intensity](
	grid *voxel.Grid[T], mask *voxel.ObjectMask, seeds []voxel.Seed, params Params,
) (*Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid intensity grid")
	}
	if err := mask.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mask")
	}
	if err := mask.Box.InsideOf(grid.Extent); err != nil {
		return nil, err
	}
	maxSeed, err := validateSeeds(seeds)
	if err != nil {
		return nil, err
	}

	cropped, err := grid.Crop(mask.Box)
	if err != nil {
		return nil, err
	}
	inMask := make([]bool, len(mask.Data))
	for i := range mask.Data {
		inMask[i] = mask.IsOnLocal(i)
	}
	dom := newDomain(mask.Box.Extent, mask.Box.Min, inMask)
	return run(dom, cropped.Data, seeds, maxSeed, params)
}

// computeDescent gives every in-domain voxel that is neither a seed nor on a
// plateau its descent code or the Minimum code. Plateau voxels are returned
// in scan order for resolvePlateaus.
func computeDescent[T voxel.Intensity](descent *steepestDescent[T], minima *minimaStore) (plateauStarts []int, numMinima int) {
	dom, state := descent.dom, descent.state
	for idx := 0; idx < dom.size(); idx++ {
		if !dom.contains(idx) || state.isSeed(idx) {
			continue
		}
		class, dir := descent.classify(idx)
		switch class {
		case pointPlateau:
			plateauStarts = append(plateauStarts, idx)
		case pointMinimum:
			minima.add(dom, []int{idx})
			numMinima++
			state.codes[idx] = dir
		default:
			state.codes[idx] = dir
		}
	}
	return plateauStarts, numMinima
}

// resolvePlateaus resolves each plateau once, starting from its first voxel
// in scan order, and returns how many plateaus were found.
func resolvePlateaus[T voxel.Intensity](descent *steepestDescent[T], minima *minimaStore, starts []int) (int, error) {
	resolver := newPlateauResolver(descent, minima)
	n := 0
	for _, idx := range starts {
		if descent.state.visited(idx) {
			continue
		}
		if _, err := resolver.resolve(idx); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// run drives one pass through the stages over an already validated domain.
func run[T voxel.Intensity](dom *domain, values []T, seeds []voxel.Seed, maxSeed int32, params Params) (*Result, error) {
	log := params.logger()
	stage := StageIdle
	advance := func(next Stage, keysAndValues ...interface{}) {
		stage = next
		log.Debugw("watershed stage", append([]interface{}{"stage", stage, "extent", dom.extent}, keysAndValues...)...)
	}

	state := newStateGrid(dom.size())
	if err := markSeeds(dom, state, seeds); err != nil {
		return nil, err
	}
	advance(StageSeedsMarked, "seeds", len(seeds))

	var minima *minimaStore
	if params.ExitWithMinimaOnly {
		minima = &minimaStore{}
	}
	descent := &steepestDescent[T]{dom: dom, values: values, state: state}

	plateauStarts, numMinima := computeDescent(descent, minima)
	advance(StageDescentComputed, "minima", numMinima, "plateauPoints", len(plateauStarts))

	numPlateaus, err := resolvePlateaus(descent, minima, plateauStarts)
	if err != nil {
		return nil, err
	}
	advance(StagePlateausResolved, "plateaus", numPlateaus)

	if params.ExitWithMinimaOnly {
		found := minima.sorted()
		res := &Result{Minima: found, Objects: make([]voxel.Object, 0, len(found))}
		binary := params.outputValues()
		for _, m := range found {
			obj, err := pointObject(m.Representative(), binary)
			if err != nil {
				return nil, err
			}
			res.Objects = append(res.Objects, obj)
		}
		advance(StageMinimaReturned, "minima", len(found))
		res.Stage = stage
		return res, nil
	}

	labels, err := labelComponents(dom, state, int64(maxSeed)+1)
	if err != nil {
		return nil, err
	}
	advance(StageLabeled)

	objects, err := ExtractObjects(&LabelGrid{
		Extent: dom.extent,
		Origin: dom.origin,
		Labels: labels,
		InMask: dom.inMask,
	}, params.outputValues())
	if err != nil {
		return nil, err
	}
	advance(StageObjectsExtracted, "objects", len(objects))
	return &Result{Objects: objects, Stage: stage}, nil
}

func pointObject(p voxel.Point, values voxel.BinaryValues) (voxel.Object, error) {
	mask, err := voxel.NewFilledMask(voxel.BoundingBox{Min: p, Extent: voxel.Extent{X: 1, Y: 1, Z: 1}}, values)
	if err != nil {
		return voxel.Object{}, err
	}
	return voxel.Object{Mask: *mask, NumVoxels: 1}, nil
}
