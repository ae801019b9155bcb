package watershed

import "fmt"

// Direction is a chain code naming one of the 26 neighbor displacements of a
// voxel, or one of two sentinels.
//
// Codes 1..26 follow the neighbor enumeration order: dz from -1 to 1, then dy
// from -1 to 1, then dx from -1 to 1, skipping (0,0,0). A 2D image only uses
// the eight dz=0 codes (10..17).
type Direction uint8

const (
	// Unvisited marks a voxel whose direction has not been decided yet.
	Unvisited Direction = 0
	// Minimum marks a terminal voxel: the root of a catchment basin.
	Minimum Direction = 27

	numDirections = 26
)

// offset3 is a neighbor displacement.
type offset3 struct {
	dx, dy, dz int
}

var (
	directionOffsets [numDirections + 1]offset3
	// directionByOffset is indexed by (dz+1)*9 + (dy+1)*3 + (dx+1).
	directionByOffset [27]Direction
)

func init() {
	code := Direction(1)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				directionOffsets[code] = offset3{dx, dy, dz}
				directionByOffset[offsetKey(dx, dy, dz)] = code
				code++
			}
		}
	}
}

func offsetKey(dx, dy, dz int) int {
	return (dz+1)*9 + (dy+1)*3 + (dx+1)
}

// EncodeDirection returns the code for the displacement (dx,dy,dz), each in
// {-1,0,1}. It reports false for (0,0,0) and for out-of-range components.
func EncodeDirection(dx, dy, dz int) (Direction, bool) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || dz < -1 || dz > 1 {
		return Unvisited, false
	}
	d := directionByOffset[offsetKey(dx, dy, dz)]
	return d, d != Unvisited
}

// IsDisplacement reports whether d names a neighbor rather than a sentinel.
func (d Direction) IsDisplacement() bool {
	return d >= 1 && d <= numDirections
}

// Offset decodes a displacement code. Sentinels decode to (0,0,0).
func (d Direction) Offset() (dx, dy, dz int) {
	if !d.IsDisplacement() {
		return 0, 0, 0
	}
	o := directionOffsets[d]
	return o.dx, o.dy, o.dz
}

// Opposite returns the code pointing the other way. Sentinels are returned
// unchanged.
func (d Direction) Opposite() Direction {
	if !d.IsDisplacement() {
		return d
	}
	o := directionOffsets[d]
	return directionByOffset[offsetKey(-o.dx, -o.dy, -o.dz)]
}

func (d Direction) String() string {
	switch {
	case d == Unvisited:
		return "unvisited"
	case d == Minimum:
		return "minimum"
	case d.IsDisplacement():
		dx, dy, dz := d.Offset()
		return fmt.Sprintf("(%+d,%+d,%+d)", dx, dy, dz)
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}
