package watershed

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// mustGrid builds a single-plane grid from rows.
func mustGrid(t *testing.T, rows ...[]int) *voxel.Grid[int] {
	t.Helper()
	g, err := voxel.GridFromPlanes(rows)
	require.NoError(t, err)
	return g
}

// randomGrid fills a grid with few distinct values so that plateaus are common.
func randomGrid(t *testing.T, e voxel.Extent, levels int, seed int64) *voxel.Grid[uint8] {
	t.Helper()
	g, err := voxel.NewGrid[uint8](e)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := range g.Data {
		g.Data[i] = uint8(rng.Intn(levels))
	}
	return g
}

func newTestDescent[T voxel.Intensity](g *voxel.Grid[T]) *steepestDescent[T] {
	dom := newDomain(g.Extent, voxel.Point{}, nil)
	return &steepestDescent[T]{dom: dom, values: g.Data, state: newStateGrid(dom.size())}
}

// resolveAll runs descent and plateau resolution and returns the codes.
func resolveAll[T voxel.Intensity](t *testing.T, g *voxel.Grid[T], minima *minimaStore) *steepestDescent[T] {
	t.Helper()
	descent := newTestDescent(g)
	starts, _ := computeDescent(descent, minima)
	_, err := resolvePlateaus(descent, minima, starts)
	require.NoError(t, err)
	return descent
}

func chebyshev(a, b voxel.Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func filledSeed(t *testing.T, id int, min voxel.Point, extent voxel.Extent) voxel.Seed {
	t.Helper()
	mask, err := voxel.NewFilledMask(voxel.BoundingBox{Min: min, Extent: extent}, voxel.DefaultBinaryValues())
	require.NoError(t, err)
	return voxel.Seed{ID: id, Mask: *mask}
}

// ownerCounts counts for every voxel of e how many objects claim it.
func ownerCounts(t *testing.T, e voxel.Extent, objects []voxel.Object) []int {
	t.Helper()
	counts := make([]int, e.Volume())
	for i := range objects {
		for _, p := range objects[i].Mask.Points() {
			require.True(t, e.Contains(p.X, p.Y, p.Z), "object %d claims %s outside %s", i, p, e)
			counts[e.OffsetOf(p)]++
		}
	}
	return counts
}
