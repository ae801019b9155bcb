package watershed

// labelComponents gives every in-domain voxel the id of the seed or minimum
// its chain of direction codes ends at. Seed ids are kept as they are; each
// minimum gets a fresh id above firstFree-1, in the order minima are reached.
// The returned slice is sized to the domain; voxels outside it stay 0.
func labelComponents(dom *domain, state *stateGrid, firstFree int64) ([]int64, error) {
	n := dom.size()
	labels := make([]int64, n)
	next := firstFree
	var path []int

	for idx := 0; idx < n; idx++ {
		if !dom.contains(idx) || labels[idx] != 0 {
			continue
		}
		path = path[:0]
		cur := idx
		var label int64
	walk:
		for {
			if l := labels[cur]; l != 0 {
				label = l
				break
			}
			if id := state.seedID[cur]; id != 0 {
				label = int64(id)
				labels[cur] = label
				break
			}
			code := state.codes[cur]
			switch {
			case code == Minimum:
				label = next
				next++
				labels[cur] = label
				break walk
			case !code.IsDisplacement():
				return nil, internalErrorf("component labeling", cur, "voxel has no direction (%s)", code)
			}
			path = append(path, cur)
			if len(path) > n {
				return nil, internalErrorf("component labeling", idx, "direction codes form a cycle")
			}
			cur = dom.follow(cur, code)
			if cur < 0 || cur >= n || !dom.contains(cur) {
				return nil, internalErrorf("component labeling", path[len(path)-1],
					"direction %s leaves the domain", code)
			}
		}
		for _, p := range path {
			labels[p] = label
		}
	}
	return labels, nil
}
