package watershed

import (
	"sort"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// MinimumRegion is one discovered local minimum. A strict minimum has a single
// point; an enclosed plateau yields one MinimumRegion holding all of its voxels.
// Points are absolute grid coordinates in row-major order.
type MinimumRegion struct {
	Points []voxel.Point
}

// Representative is the first point of the minimum in row-major order.
func (m MinimumRegion) Representative() voxel.Point {
	return m.Points[0]
}

type minimumEntry struct {
	first int
	min   MinimumRegion
}

// minimaStore collects minima when only minima were requested.
// A nil store ignores every add.
type minimaStore struct {
	entries []minimumEntry
}

func (s *minimaStore) add(dom *domain, offsets []int) {
	if s == nil || len(offsets) == 0 {
		return
	}
	sorted := append([]int(nil), offsets...)
	sort.Ints(sorted)
	points := make([]voxel.Point, len(sorted))
	for i, idx := range sorted {
		points[i] = dom.absolute(idx)
	}
	s.entries = append(s.entries, minimumEntry{first: sorted[0], min: MinimumRegion{Points: points}})
}

// sorted returns the minima ordered by their first voxel.
func (s *minimaStore) sorted() []MinimumRegion {
	if s == nil {
		return nil
	}
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].first < s.entries[j].first
	})
	out := make([]MinimumRegion, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.min
	}
	return out
}
