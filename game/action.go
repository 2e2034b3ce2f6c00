package game

import (
	"fmt"
	"slices"
	"strings"
)

// ActionKind tags the three move variants.
type ActionKind int

const (
	Place ActionKind = iota + 1
	Move
	Jump
)

func (k ActionKind) String() string {
	switch k {
	case Place:
		return "Place"
	case Move:
		return "Move"
	case Jump:
		return "Jump"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one legal move: placing a new piece, sliding one along a link,
// or jumping one anywhere. Attacks lists the opponent positions captured as
// a side effect, one per mill the move completes. Actions are plain values
// produced by action enumeration and consumed once by Execute.
type Action struct {
	Kind    ActionKind
	Player  PlayerID
	From    Position // zero for Place
	To      Position
	Attacks []Position
}

// Equal compares actions by value, including the attack list. Two actions
// differing only in their capture combination are distinct.
func (a Action) Equal(b Action) bool {
	return a.Kind == b.Kind &&
		a.Player == b.Player &&
		a.From == b.From &&
		a.To == b.To &&
		slices.Equal(a.Attacks, b.Attacks)
}

func (a Action) String() string {
	var sb strings.Builder
	switch a.Kind {
	case Place:
		fmt.Fprintf(&sb, "Place(%d, %v", a.Player, a.To)
	default:
		fmt.Fprintf(&sb, "%v(%d, from=%v, to=%v", a.Kind, a.Player, a.From, a.To)
	}
	if len(a.Attacks) > 0 {
		fmt.Fprintf(&sb, ", attacks=%v", a.Attacks)
	}
	sb.WriteString(")")
	return sb.String()
}
