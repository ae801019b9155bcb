package watershed

// stateGrid is the per-voxel working state of one segmentation call.
//
// A voxel is visited once it holds a direction code or belongs to a seed.
// temporary is set only while one plateau is being flood-filled and is
// cleared before the next plateau starts.
type stateGrid struct {
	codes     []Direction
	temporary []bool
	seedID    []int32
}

func newStateGrid(n int) *stateGrid {
	return &stateGrid{
		codes:     make([]Direction, n),
		temporary: make([]bool, n),
		seedID:    make([]int32, n),
	}
}

func (s *stateGrid) isSeed(idx int) bool {
	return s.seedID[idx] != 0
}

func (s *stateGrid) visited(idx int) bool {
	return s.codes[idx] != Unvisited || s.isSeed(idx)
}

// isComponent reports whether a voxel already belongs to a known connected
// component and therefore attracts its neighbors regardless of intensity.
func (s *stateGrid) isComponent(idx int) bool {
	return s.isSeed(idx)
}
