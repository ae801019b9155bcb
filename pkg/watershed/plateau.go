package watershed

import "github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"

// plateauResolver turns a flat region into a lower-complete one: every voxel
// of the region ends up with a path towards lower ground, an existing
// component, or a single new minimum.
//
// Its slices are scratch space reused across plateaus.
type plateauResolver[T voxel.Intensity] struct {
	descent *steepestDescent[T]
	minima  *minimaStore

	stack    []int
	members  []int
	edges    []int
	interior []int
	frontier []int
	next     []int
}

func newPlateauResolver[T voxel.Intensity](descent *steepestDescent[T], minima *minimaStore) *plateauResolver[T] {
	return &plateauResolver[T]{descent: descent, minima: minima}
}

// resolve flood-fills the plateau containing start, classifies its voxels as
// edge or interior points and propagates directions inward. It returns the
// number of voxels in the plateau.
func (r *plateauResolver[T]) resolve(start int) (int, error) {
	if err := r.floodFill(start); err != nil {
		r.clearTemporary()
		return 0, err
	}
	err := r.propagate(start)
	n := len(r.members)
	r.clearTemporary()
	return n, err
}

// floodFill visits every voxel connected to start with the same intensity.
// Voxels with a lower or component neighbor become edge points and get their
// direction immediately; the others are interior points.
func (r *plateauResolver[T]) floodFill(start int) error {
	dom := r.descent.dom
	values := r.descent.values
	state := r.descent.state
	target := values[start]

	r.stack = append(r.stack[:0], start)
	r.members = r.members[:0]
	r.edges = r.edges[:0]
	r.interior = r.interior[:0]

	for len(r.stack) > 0 {
		idx := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		if state.temporary[idx] {
			continue
		}
		state.temporary[idx] = true
		r.members = append(r.members, idx)

		var best candidate[T]
		dom.forEachNeighbor(idx, func(n int, dir Direction) {
			class := classifyNeighbor(values[n], target, state.isComponent(n))
			if class == classEqual {
				if !state.temporary[n] {
					r.stack = append(r.stack, n)
				}
				return
			}
			c := candidate[T]{class: class, value: values[n], dir: dir}
			if c.beats(best) {
				best = c
			}
		})

		if best.isDescent() {
			if prev := state.codes[idx]; prev != Unvisited && prev != best.dir {
				return internalErrorf("plateau flood fill", idx,
					"edge direction %s disagrees with earlier %s", best.dir, prev)
			}
			state.codes[idx] = best.dir
			r.edges = append(r.edges, idx)
			continue
		}
		if state.codes[idx] != Unvisited {
			return internalErrorf("plateau flood fill", idx,
				"interior point already holds %s", state.codes[idx])
		}
		r.interior = append(r.interior, idx)
	}
	return nil
}

// propagate assigns interior points a direction by a breadth-first search
// that starts from all edge points at once. Each round reaches the points one
// step further away, and each of those points at a point of the previous
// round. Without edge points the plateau is enclosed: start becomes its only
// minimum and the search starts there instead.
func (r *plateauResolver[T]) propagate(start int) error {
	dom := r.descent.dom
	state := r.descent.state

	if len(r.edges) == 0 {
		state.codes[start] = Minimum
		r.minima.add(dom, r.members)
		r.frontier = append(r.frontier[:0], start)
	} else {
		r.frontier = append(r.frontier[:0], r.edges...)
	}

	for len(r.frontier) > 0 {
		r.next = r.next[:0]
		for _, q := range r.frontier {
			dom.forEachNeighbor(q, func(n int, dir Direction) {
				if !state.temporary[n] || state.codes[n] != Unvisited || state.isSeed(n) {
					return
				}
				state.codes[n] = dir.Opposite()
				r.next = append(r.next, n)
			})
		}
		r.frontier, r.next = r.next, r.frontier
	}

	for _, idx := range r.interior {
		if state.codes[idx] == Unvisited {
			return internalErrorf("plateau propagation", idx, "point left without a direction")
		}
	}
	return nil
}

func (r *plateauResolver[T]) clearTemporary() {
	state := r.descent.state
	for _, idx := range r.members {
		state.temporary[idx] = false
	}
}
