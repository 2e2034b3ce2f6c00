package game

import "fmt"

// BoardDesign is the pure geometry of a board: which positions exist, which
// are linked, and which triples form mills. Implementations hold no mutable
// state; the same design is shared by every board and clone built on it.
type BoardDesign interface {
	// DistanceBetween returns the ring distance and the minimal circular
	// index distance between two positions.
	DistanceBetween(a, b Position) (rings, steps int)
	// IsLinkedTo reports whether a piece may slide from a to b in one move.
	IsLinkedTo(a, b Position) bool
	// ThirdInLine completes a mill triple from two colinear positions. It
	// returns ErrInvalidLine when the positions do not share a line.
	ThirdInLine(a, b Position) (Position, error)
	// NeighborsOf returns the positions reachable from pos by one link.
	NeighborsOf(pos Position) []Position
	// Fields returns every position on the board, in a fixed order.
	Fields() []Position
	// Lines returns every mill triple.
	Lines() [][3]Position
	// LinesOf returns, for each line through pos, the two other positions
	// that together with pos would complete it.
	LinesOf(pos Position) [][2]Position
}

// RingDesign is the standard mill topology: three concentric rings of
// 2*sides points each. Ring neighbors are always linked; cross-ring links
// exist at odd ("spoke") indices only, or at every index when extended.
type RingDesign struct {
	sides    int
	ringSize int
	extended bool
}

// NewRingDesign builds the topology for a polygon with the given side
// count. Panics for fewer than 3 sides, which has no valid geometry.
func NewRingDesign(sides int, extended bool) *RingDesign {
	if sides < 3 {
		panic(fmt.Sprintf("ring design needs at least 3 sides, got %d", sides))
	}
	return &RingDesign{sides: sides, ringSize: 2 * sides, extended: extended}
}

func (d *RingDesign) Sides() int    { return d.sides }
func (d *RingDesign) RingSize() int { return d.ringSize }
func (d *RingDesign) Extended() bool { return d.extended }

// spoked reports whether cross-ring links exist at the given index.
func (d *RingDesign) spoked(index int) bool {
	return d.extended || index%2 == 1
}

func (d *RingDesign) DistanceBetween(a, b Position) (int, int) {
	rings := abs(a.Ring - b.Ring)
	steps := abs(a.Index - b.Index)
	if d.ringSize-steps < steps {
		steps = d.ringSize - steps
	}
	return rings, steps
}

func (d *RingDesign) IsLinkedTo(a, b Position) bool {
	if a.Ring == b.Ring {
		_, steps := d.DistanceBetween(a, b)
		return steps == 1
	}
	if a.Index == b.Index && d.spoked(a.Index) {
		return abs(a.Ring-b.Ring) == 1
	}
	return false
}

func (d *RingDesign) NeighborsOf(pos Position) []Position {
	neighbors := make([]Position, 0, 4)
	neighbors = append(neighbors,
		Position{pos.Ring, mod(pos.Index-1, d.ringSize)},
		Position{pos.Ring, (pos.Index + 1) % d.ringSize},
	)
	if d.spoked(pos.Index) {
		if pos.Ring > 0 {
			neighbors = append(neighbors, Position{pos.Ring - 1, pos.Index})
		}
		if pos.Ring < 2 {
			neighbors = append(neighbors, Position{pos.Ring + 1, pos.Index})
		}
	}
	return neighbors
}

func (d *RingDesign) ThirdInLine(first, second Position) (Position, error) {
	if first.Ring == second.Ring && first.Index != second.Index {
		a, b := first.Index, second.Index
		if a > b {
			a, b = b, a
		}
		if b-a > 2 { // the line wraps past the ring start
			a, b = b, a+d.ringSize
		}
		switch {
		case b-a == 1:
			if a%2 == 0 {
				return Position{first.Ring, (a + 2) % d.ringSize}, nil
			}
			return Position{first.Ring, mod(a-1, d.ringSize)}, nil
		case b-a == 2:
			if a%2 == 0 {
				return Position{first.Ring, (a + 1) % d.ringSize}, nil
			}
			return Position{}, fmt.Errorf("%w: %v and %v are both odd-indexed", ErrInvalidLine, first, second)
		default:
			return Position{}, fmt.Errorf("%w: %v and %v are more than two steps apart", ErrInvalidLine, first, second)
		}
	}
	if first.Ring != second.Ring && first.Index == second.Index && d.spoked(first.Index) {
		// The remaining ring of {0,1,2}.
		return Position{3 - first.Ring - second.Ring, first.Index}, nil
	}
	return Position{}, fmt.Errorf("%w: %v and %v", ErrInvalidLine, first, second)
}

func (d *RingDesign) Fields() []Position {
	fields := make([]Position, 0, 3*d.ringSize)
	for ring := 0; ring < 3; ring++ {
		for index := 0; index < d.ringSize; index++ {
			fields = append(fields, Position{ring, index})
		}
	}
	return fields
}

func (d *RingDesign) Lines() [][3]Position {
	lines := make([][3]Position, 0, 3*d.sides+d.ringSize)
	for ring := 0; ring < 3; ring++ {
		for side := 0; side < d.sides; side++ {
			i := 2 * side
			lines = append(lines, [3]Position{
				{ring, i}, {ring, i + 1}, {ring, (i + 2) % d.ringSize},
			})
		}
	}
	for index := 0; index < d.ringSize; index++ {
		if d.spoked(index) {
			lines = append(lines, [3]Position{{0, index}, {1, index}, {2, index}})
		}
	}
	return lines
}

func (d *RingDesign) LinesOf(pos Position) [][2]Position {
	lines := make([][2]Position, 0, 3)
	if d.spoked(pos.Index) {
		lines = append(lines, [2]Position{
			{(pos.Ring + 1) % 3, pos.Index},
			{(pos.Ring + 2) % 3, pos.Index},
		})
	}
	if pos.Index%2 == 1 {
		// An odd position is the middle of its only ring line.
		lines = append(lines, [2]Position{
			{pos.Ring, pos.Index - 1},
			{pos.Ring, (pos.Index + 1) % d.ringSize},
		})
	} else {
		// An even position is an endpoint of two ring lines.
		lines = append(lines,
			[2]Position{
				{pos.Ring, mod(pos.Index-1, d.ringSize)},
				{pos.Ring, mod(pos.Index-2, d.ringSize)},
			},
			[2]Position{
				{pos.Ring, (pos.Index + 1) % d.ringSize},
				{pos.Ring, (pos.Index + 2) % d.ringSize},
			},
		)
	}
	return lines
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// mod is the euclidean remainder, non-negative for negative x.
func mod(x, n int) int {
	return ((x % n) + n) % n
}
