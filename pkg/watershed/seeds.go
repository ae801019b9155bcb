package watershed

import (
	"math"

	"github.com/pkg/errors"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// validateSeeds rejects zero, oversized and duplicate ids and malformed masks.
// It runs before any working buffer is allocated.
func validateSeeds(seeds []voxel.Seed) (maxID int32, err error) {
	seen := make(map[int]int, len(seeds))
	for i := range seeds {
		s := &seeds[i]
		if s.ID <= 0 || s.ID > math.MaxInt32 {
			return 0, errors.Wrapf(ErrInvalidSeed, "seed %d has id %d, want 1..%d", i, s.ID, math.MaxInt32)
		}
		if prev, ok := seen[s.ID]; ok {
			return 0, errors.Wrapf(ErrDuplicateSeedID, "seeds %d and %d both use id %d", prev, i, s.ID)
		}
		seen[s.ID] = i
		if err := s.Mask.Validate(); err != nil {
			return 0, errors.Wrapf(ErrInvalidSeed, "seed %d (id %d): %v", i, s.ID, err)
		}
		if int32(s.ID) > maxID {
			maxID = int32(s.ID)
		}
	}
	return maxID, nil
}

// markSeeds stamps every in-domain ON voxel of each seed with the seed id.
// Seed voxels outside the domain are ignored; the seed masks are only read.
func markSeeds(dom *domain, state *stateGrid, seeds []voxel.Seed) error {
	for i := range seeds {
		s := &seeds[i]
		box := s.Mask.Box
		e := box.Extent
		for z := 0; z < e.Z; z++ {
			for y := 0; y < e.Y; y++ {
				for x := 0; x < e.X; x++ {
					if !s.Mask.IsOnLocal(e.Offset(x, y, z)) {
						continue
					}
					lx := box.Min.X + x - dom.origin.X
					ly := box.Min.Y + y - dom.origin.Y
					lz := box.Min.Z + z - dom.origin.Z
					if !dom.extent.Contains(lx, ly, lz) {
						continue
					}
					idx := dom.extent.Offset(lx, ly, lz)
					if !dom.contains(idx) {
						continue
					}
					if prev := state.seedID[idx]; prev != 0 && prev != int32(s.ID) {
						return errors.Wrapf(ErrSeedOverlap, "seeds %d and %d both claim %s",
							prev, s.ID, dom.absolute(idx))
					}
					state.seedID[idx] = int32(s.ID)
				}
			}
		}
	}
	return nil
}
