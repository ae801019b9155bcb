package watershed

import "github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"

// neighborClass orders how attractive a neighbor is as a descent target.
// A larger class always wins over a smaller one.
type neighborClass int

const (
	classNone neighborClass = iota
	classHigher
	classEqual
	classLower
	classComponent
)

func (c neighborClass) String() string {
	switch c {
	case classHigher:
		return "higher"
	case classEqual:
		return "equal"
	case classLower:
		return "lower"
	case classComponent:
		return "component"
	default:
		return "none"
	}
}

// candidate is a neighbor under consideration as the descent target.
type candidate[T voxel.Intensity] struct {
	class neighborClass
	value T
	dir   Direction
}

// classify places a neighbor of intensity value relative to the reference
// intensity. Membership of an existing component trumps intensity.
func classifyNeighbor[T voxel.Intensity](value, reference T, isComponent bool) neighborClass {
	switch {
	case isComponent:
		return classComponent
	case value < reference:
		return classLower
	case value == reference:
		return classEqual
	default:
		return classHigher
	}
}

// beats reports whether c should replace the current best. Within the
// component and lower classes the smaller intensity wins; a tie keeps the
// earlier neighbor, so enumeration order breaks it.
func (c candidate[T]) beats(best candidate[T]) bool {
	if c.class != best.class {
		return c.class > best.class
	}
	switch c.class {
	case classComponent, classLower:
		return c.value < best.value
	default:
		return false
	}
}

// isDescent reports whether the candidate is a valid direction target.
func (c candidate[T]) isDescent() bool {
	return c.class >= classLower
}
