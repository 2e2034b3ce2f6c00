package game

import "fmt"

// PlayerID identifies one of the two players, 0 or 1.
type PlayerID int

// NoPlayer marks the absence of a player, e.g. a playout without a winner.
const NoPlayer PlayerID = -1

// Other returns the opposing player's id.
func (p PlayerID) Other() PlayerID {
	return (p + 1) % 2
}

// Piece is a single stone on the board, carrying its owner.
type Piece struct {
	Player PlayerID
}

// Position is one point on the board: a ring (0 = outer, 2 = inner) and an
// index around that ring. Positions are values, comparable with ==.
type Position struct {
	Ring  int
	Index int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Ring, p.Index)
}
