package game

import "errors"

// Every error here signals caller misuse of the rules core, never bad
// external input. Callers are expected to fail loudly instead of recovering.
var (
	// ErrInvalidLine is returned when two positions requested as colinear
	// do not share a mill line.
	ErrInvalidLine = errors.New("positions are not in a valid line")

	// ErrIllegalMutation is returned when a frozen state is executed on, or
	// when a board mutation violates occupancy or adjacency rules.
	ErrIllegalMutation = errors.New("illegal mutation")

	// ErrIllegalAction is returned when an action is executed by a player
	// whose turn it is not.
	ErrIllegalAction = errors.New("action does not belong to the side to move")
)
