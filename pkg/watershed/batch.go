package watershed

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// Job is one independent segmentation request. A nil Mask segments the
// whole grid.
type Job[T voxel.Intensity] struct {
	Name  string
	Grid  *voxel.Grid[T]
	Mask  *voxel.ObjectMask
	Seeds []voxel.Seed
}

// SegmentBatch runs independent jobs on up to workers goroutines. Each job
// owns its working buffers, so jobs may share a read-only grid. The context
// is checked between jobs only; a job that has started runs to completion.
// Results are returned in job order. The first failing job cancels the jobs
// not yet started.
func SegmentBatch[T voxel.Intensity](ctx context.Context, jobs []Job[T], params Params, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		i := i
		job := jobs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var (
				res *Result
				err error
			)
			if job.Mask == nil {
				res, err = Segment(job.Grid, job.Seeds, params)
			} else {
				res, err = SegmentMasked(job.Grid, job.Mask, job.Seeds, params)
			}
			if err != nil {
				return errors.Wrapf(err, "job %d (%s)", i, job.Name)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
