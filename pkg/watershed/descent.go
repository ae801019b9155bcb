package watershed

import "github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"

// pointClass is the outcome of the steepest-descent calculation for a voxel.
type pointClass int

const (
	pointMinimum pointClass = iota
	pointPlateau
	pointDescent
)

func (c pointClass) String() string {
	switch c {
	case pointPlateau:
		return "plateau"
	case pointDescent:
		return "descent"
	default:
		return "minimum"
	}
}

// steepestDescent finds, for a single voxel, the neighbor water would flow to.
type steepestDescent[T voxel.Intensity] struct {
	dom    *domain
	values []T
	state  *stateGrid
}

// bestNeighbor scans the neighbors of idx against the reference intensity and
// returns the winning candidate under the neighborClass ordering.
func (s *steepestDescent[T]) bestNeighbor(idx int, reference T) candidate[T] {
	var best candidate[T]
	s.dom.forEachNeighbor(idx, func(n int, dir Direction) {
		c := candidate[T]{
			class: classifyNeighbor(s.values[n], reference, s.state.isComponent(n)),
			value: s.values[n],
			dir:   dir,
		}
		if c.beats(best) {
			best = c
		}
	})
	return best
}

// classify reports whether idx is a minimum, part of a plateau, or drains in
// the returned direction. It does not modify any state.
func (s *steepestDescent[T]) classify(idx int) (pointClass, Direction) {
	best := s.bestNeighbor(idx, s.values[idx])
	switch {
	case best.isDescent():
		return pointDescent, best.dir
	case best.class == classEqual:
		return pointPlateau, Unvisited
	default:
		return pointMinimum, Minimum
	}
}
