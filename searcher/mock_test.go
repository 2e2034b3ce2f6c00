package searcher

import (
	"iter"

	"muehle/game"
)

// mockState is a scripted game tree: each move names its successor state.
// Execute rewrites the receiver in place with the successor's script, the
// way a real state mutates.
type mockState struct {
	turn   game.PlayerID
	counts [2]int
	frozen bool
	moves  []mockMove
}

type mockMove struct {
	action game.Action
	next   *mockState
}

func (m *mockState) Turn() game.PlayerID { return m.turn }

func (m *mockState) Counts() (int, int) { return m.counts[0], m.counts[1] }

func (m *mockState) Freeze() { m.frozen = true }

func (m *mockState) Clone() game.State {
	clone := *m
	clone.frozen = false
	return &clone
}

func (m *mockState) AvailableActions() iter.Seq[game.Action] {
	return func(yield func(game.Action) bool) {
		for _, move := range m.moves {
			if !yield(move.action) {
				return
			}
		}
	}
}

func (m *mockState) Execute(action game.Action) error {
	if m.frozen {
		return game.ErrIllegalMutation
	}
	for _, move := range m.moves {
		if move.action.Equal(action) {
			*m = *move.next
			m.frozen = false
			return nil
		}
	}
	return game.ErrIllegalAction
}

// mockChain builds a linear game of the given length. Every intermediate
// state holds 5 pieces per player; the last state has no moves and leaves
// the given counts on the board.
func mockChain(plies int, final [2]int) *mockState {
	state := &mockState{turn: game.PlayerID(plies % 2), counts: final}
	for i := plies - 1; i >= 0; i-- {
		state = &mockState{
			turn:   game.PlayerID(i % 2),
			counts: [2]int{5, 5},
			moves: []mockMove{{
				action: game.Action{Kind: game.Place, Player: game.PlayerID(i % 2), To: game.Position{Index: i}},
				next:   state,
			}},
		}
	}
	return state
}

// mockFan builds one state with n sibling moves, each ending the game at
// 6 pieces to 3 in player 0's favor.
func mockFan(n int) *mockState {
	s := &mockState{counts: [2]int{5, 5}}
	for i := 0; i < n; i++ {
		s.moves = append(s.moves, mockMove{
			action: game.Action{Kind: game.Place, To: game.Position{Index: i}},
			next:   &mockState{turn: 1, counts: [2]int{6, 3}},
		})
	}
	return s
}
