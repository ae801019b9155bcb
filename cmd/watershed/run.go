package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/anchoranalysis/anchor-plugins-sub010/internal/models"
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/config"
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/logging"
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/slicestack"
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/visualization"
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/watershed"
)

const reportName = "report.yaml"

type runOptions struct {
	InputDir  string
	OutputDir string
	Config    *config.Config
	Logger    *zap.SugaredLogger
}

// runSegment loads the slices, segments every configured region and writes
// the report (and optionally label slices) to the output directory.
func runSegment(ctx context.Context, opts runOptions) (*models.RunReport, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	logger := opts.Logger
	if logger == nil {
		var err error
		if logger, err = logging.NewLogger("watershed", cfg.Output.Verbose); err != nil {
			return nil, err
		}
		defer func() { _ = logger.Sync() }()
	}

	grid, err := slicestack.Load(opts.InputDir, cfg.Input.Extensions, logger)
	if err != nil {
		return nil, err
	}

	seeds, err := buildSeeds(cfg)
	if err != nil {
		return nil, err
	}
	jobs, err := buildJobs(cfg, grid, seeds)
	if err != nil {
		return nil, err
	}

	params := watershed.Params{
		ExitWithMinimaOnly: cfg.Segmentation.ExitWithMinimaOnly,
		OutputValues:       cfg.BinaryValues(),
		Logger:             logger,
	}
	start := time.Now()
	results, err := watershed.SegmentBatch(ctx, jobs, params, cfg.Processing.NumCores)
	if err != nil {
		return nil, err
	}
	logger.Infow("segmentation finished", "regions", len(jobs), "elapsed", time.Since(start))

	report := &models.RunReport{
		Input:      opts.InputDir,
		Extent:     [3]int{grid.Extent.X, grid.Extent.Y, grid.Extent.Z},
		MinimaOnly: cfg.Segmentation.ExitWithMinimaOnly,
	}
	for i, res := range results {
		summary := watershed.Summarize(res.Objects)
		logger.Infow("region segmented",
			"region", jobs[i].Name,
			"stage", res.Stage,
			"objects", summary.Count,
			"meanVoxels", summary.MeanVoxels,
			"stdDevVoxels", summary.StdDevVoxels,
			"minVoxels", summary.MinVoxels,
			"maxVoxels", summary.MaxVoxels,
		)
		for j := range res.Objects {
			report.Objects = append(report.Objects, models.NewObjectRow(jobs[i].Name, j+1, &res.Objects[j]))
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}
	if err := writeReport(filepath.Join(opts.OutputDir, reportName), report); err != nil {
		return nil, err
	}

	if cfg.Output.SaveLabelSlices {
		all := lo.FlatMap(results, func(res *watershed.Result, _ int) []voxel.Object {
			return res.Objects
		})
		viewer, err := visualization.NewViewer(all, grid.Extent)
		if err != nil {
			return nil, err
		}
		if err := viewer.SaveSliceSequence("z", filepath.Join(opts.OutputDir, "labels")); err != nil {
			return nil, errors.Wrap(err, "failed to save label slices")
		}
	}
	return report, nil
}

func buildSeeds(cfg *config.Config) ([]voxel.Seed, error) {
	seeds := make([]voxel.Seed, 0, len(cfg.Seeds))
	for _, s := range cfg.Seeds {
		box, err := s.BoundingBox()
		if err != nil {
			return nil, err
		}
		mask, err := voxel.NewFilledMask(box, voxel.DefaultBinaryValues())
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, voxel.Seed{ID: s.ID, Mask: *mask})
	}
	return seeds, nil
}

// buildJobs returns one job for the whole grid, or one per configured ROI.
func buildJobs(cfg *config.Config, grid *voxel.Grid[float64], seeds []voxel.Seed) ([]watershed.Job[float64], error) {
	if len(cfg.ROI) == 0 {
		return []watershed.Job[float64]{{Name: "volume", Grid: grid, Seeds: seeds}}, nil
	}
	jobs := make([]watershed.Job[float64], 0, len(cfg.ROI))
	for i, roi := range cfg.ROI {
		box, err := roi.BoundingBox()
		if err != nil {
			return nil, err
		}
		mask, err := voxel.NewFilledMask(box, voxel.DefaultBinaryValues())
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, watershed.Job[float64]{
			Name:  fmt.Sprintf("roi-%d", i+1),
			Grid:  grid,
			Mask:  mask,
			Seeds: seeds,
		})
	}
	return jobs, nil
}

func writeReport(path string, report *models.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to marshal report")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "failed to write report")
}
