package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// buildState wires a mid-game position directly: occupancy, turn and
// per-player placement counters.
func buildState(t *testing.T, pieces map[Position]PlayerID, turn PlayerID, placed [2]int, opts ...Option) *GameState {
	t.Helper()
	s := NewGameState(4, opts...)
	s.turn = turn
	s.placed = placed
	for pos, player := range pieces {
		require.NoError(t, s.board.Place(pos, Piece{Player: player}))
	}
	return s
}

func collectActions(s *GameState) []Action {
	return slices.Collect(s.AvailableActions())
}

// actionsTo filters the actions targeting one destination.
func actionsTo(actions []Action, to Position) []Action {
	var filtered []Action
	for _, action := range actions {
		if action.To == to {
			filtered = append(filtered, action)
		}
	}
	return filtered
}

func TestNewGameState(t *testing.T) {
	t.Run("max placement scales with sides", func(t *testing.T) {
		require.Equal(t, 6, NewGameState(3).MaxPlaced())
		require.Equal(t, 9, NewGameState(4).MaxPlaced())
		require.Equal(t, 18, NewGameState(8).MaxPlaced())
	})

	t.Run("player 0 starts on an empty board", func(t *testing.T) {
		s := NewGameState(4)
		require.Equal(t, PlayerID(0), s.Turn())
		c0, c1 := s.Counts()
		require.Zero(t, c0)
		require.Zero(t, c1)
		require.False(t, s.Frozen())
	})
}

func TestPlacingPhaseActions(t *testing.T) {
	s := NewGameState(4)
	actions := collectActions(s)

	require.Len(t, actions, 24, "one placement per empty field, no mills possible yet")

	seen := make(map[Position]bool)
	for _, action := range actions {
		require.Equal(t, Place, action.Kind)
		require.Equal(t, PlayerID(0), action.Player)
		require.Empty(t, action.Attacks)
		require.False(t, seen[action.To], "duplicate destination %v", action.To)
		seen[action.To] = true
	}
}

func TestMovingPhaseActions(t *testing.T) {
	s := buildState(t, map[Position]PlayerID{
		{0, 0}: 0, {0, 4}: 0, {1, 2}: 0, {2, 6}: 0,
		{0, 6}: 1, {1, 6}: 1, {2, 2}: 1, {1, 5}: 1,
	}, 0, [2]int{9, 9})

	actions := collectActions(s)
	require.Len(t, actions, 8, "two empty neighbors per scattered piece")
	for _, action := range actions {
		require.Equal(t, Move, action.Kind)
		require.Empty(t, action.Attacks)
		require.True(t, s.board.Design().IsLinkedTo(action.From, action.To))
	}
}

func TestJumpingPhaseActions(t *testing.T) {
	s := buildState(t, map[Position]PlayerID{
		{0, 0}: 0, {1, 2}: 0, {2, 4}: 0,
		{0, 4}: 1, {1, 6}: 1, {2, 0}: 1, {0, 6}: 1,
	}, 0, [2]int{9, 9})

	actions := collectActions(s)
	require.Len(t, actions, 3*17, "each of 3 pieces may jump to any of the 17 empty fields")
	for _, action := range actions {
		require.Equal(t, Jump, action.Kind)
	}
}

func TestEliminatedPlayerHasNoActions(t *testing.T) {
	s := buildState(t, map[Position]PlayerID{
		{0, 0}: 0, {1, 2}: 0,
		{0, 4}: 1, {1, 6}: 1, {2, 0}: 1, {0, 6}: 1,
	}, 0, [2]int{9, 9})

	require.Empty(t, collectActions(s), "two pieces left means the game is lost")
}

func TestCaptureCombinations(t *testing.T) {
	opponents := map[Position]PlayerID{
		{1, 3}: 1, {1, 4}: 1, {2, 2}: 1, {2, 6}: 1,
	}

	t.Run("one mill forks into C(4,1) captures", func(t *testing.T) {
		pieces := map[Position]PlayerID{{0, 0}: 0, {0, 2}: 0}
		for pos, player := range opponents {
			pieces[pos] = player
		}
		s := buildState(t, pieces, 0, [2]int{2, 4})

		actions := collectActions(s)
		completing := actionsTo(actions, Position{0, 1})
		require.Len(t, completing, 4)
		for _, action := range completing {
			require.Len(t, action.Attacks, 1)
			require.Contains(t, opponents, action.Attacks[0])
		}
		// 18 empty fields, one of them forked into 4 capture variants.
		require.Len(t, actions, 17+4)
	})

	t.Run("double mill forks into C(4,2) captures", func(t *testing.T) {
		pieces := map[Position]PlayerID{
			{0, 0}: 0, {0, 2}: 0, {1, 1}: 0, {2, 1}: 0,
		}
		for pos, player := range opponents {
			pieces[pos] = player
		}
		s := buildState(t, pieces, 0, [2]int{4, 4})

		completing := actionsTo(collectActions(s), Position{0, 1})
		require.Len(t, completing, 6)
		for _, action := range completing {
			require.Len(t, action.Attacks, 2)
			require.NotEqual(t, action.Attacks[0], action.Attacks[1])
		}
	})
}

func TestCaptureTwoTierRule(t *testing.T) {
	t.Run("pieces outside mills are captured first", func(t *testing.T) {
		s := buildState(t, map[Position]PlayerID{
			{1, 0}: 1, {1, 1}: 1, {1, 2}: 1, // a completed opponent mill
			{2, 4}: 1, // one loose piece
		}, 0, [2]int{0, 4})

		require.Equal(t, []Position{{2, 4}}, s.AvailableAttacks(0))
	})

	t.Run("mill pieces become capturable when nothing is outside", func(t *testing.T) {
		s := buildState(t, map[Position]PlayerID{
			{1, 0}: 1, {1, 1}: 1, {1, 2}: 1,
		}, 0, [2]int{0, 3})

		require.ElementsMatch(t,
			[]Position{{1, 0}, {1, 1}, {1, 2}},
			s.AvailableAttacks(0))
	})
}

func TestCaptureImpossible(t *testing.T) {
	pieces := map[Position]PlayerID{{0, 0}: 0, {0, 2}: 0}

	t.Run("mill completion is suppressed by default", func(t *testing.T) {
		s := buildState(t, pieces, 0, [2]int{2, 0})

		actions := collectActions(s)
		require.Empty(t, actionsTo(actions, Position{0, 1}),
			"no opponent piece to capture, so the move is illegal")
		require.Len(t, actions, 21, "the other 21 empty fields stay placeable")
	})

	t.Run("optional capture emits the move without attacks", func(t *testing.T) {
		s := buildState(t, pieces, 0, [2]int{2, 0}, WithOptionalCapture())

		completing := actionsTo(collectActions(s), Position{0, 1})
		require.Len(t, completing, 1)
		require.Empty(t, completing[0].Attacks)
	})
}

func TestExecuteFrozen(t *testing.T) {
	s := NewGameState(4)
	s.Freeze()

	err := s.Execute(Action{Kind: Place, Player: 0, To: Position{0, 0}})
	require.ErrorIs(t, err, ErrIllegalMutation)
}

func TestExecuteWrongPlayer(t *testing.T) {
	s := NewGameState(4)

	err := s.Execute(Action{Kind: Place, Player: 1, To: Position{0, 0}})
	require.ErrorIs(t, err, ErrIllegalAction)
}

func TestExecutePlace(t *testing.T) {
	s := NewGameState(4)

	require.NoError(t, s.Execute(Action{Kind: Place, Player: 0, To: Position{0, 0}}))
	require.Equal(t, PlayerID(1), s.Turn())
	require.Equal(t, 1, s.Placed(0))

	piece, ok := s.Board().Get(Position{0, 0})
	require.True(t, ok)
	require.Equal(t, PlayerID(0), piece.Player)

	t.Run("placement budget is enforced", func(t *testing.T) {
		over := buildState(t, nil, 0, [2]int{9, 9})
		err := over.Execute(Action{Kind: Place, Player: 0, To: Position{0, 0}})
		require.ErrorIs(t, err, ErrIllegalMutation)
	})
}

func TestExecuteCaptures(t *testing.T) {
	s := buildState(t, map[Position]PlayerID{
		{0, 0}: 0, {0, 2}: 0, {1, 3}: 1, {1, 4}: 1,
	}, 0, [2]int{2, 2})

	require.NoError(t, s.Execute(Action{
		Kind: Place, Player: 0, To: Position{0, 1},
		Attacks: []Position{{1, 3}},
	}))
	require.True(t, s.Board().IsEmpty(Position{1, 3}))
	require.Equal(t, 1, s.Board().Count(1))

	t.Run("capturing an own piece fails", func(t *testing.T) {
		s := buildState(t, map[Position]PlayerID{
			{0, 0}: 0, {0, 2}: 0, {2, 4}: 0, {1, 3}: 1,
		}, 0, [2]int{3, 1})

		err := s.Execute(Action{
			Kind: Place, Player: 0, To: Position{0, 1},
			Attacks: []Position{{2, 4}},
		})
		require.ErrorIs(t, err, ErrIllegalMutation)
	})
}

func TestExecuteMoveValidation(t *testing.T) {
	s := buildState(t, map[Position]PlayerID{
		{0, 0}: 0, {0, 4}: 0, {1, 2}: 0, {2, 6}: 0,
		{0, 6}: 1,
	}, 0, [2]int{9, 9})

	t.Run("moving an opponent piece fails", func(t *testing.T) {
		err := s.Execute(Action{Kind: Move, Player: 0, From: Position{0, 6}, To: Position{0, 7}})
		require.ErrorIs(t, err, ErrIllegalMutation)
	})

	t.Run("moving from an empty field fails", func(t *testing.T) {
		err := s.Execute(Action{Kind: Move, Player: 0, From: Position{2, 2}, To: Position{2, 3}})
		require.ErrorIs(t, err, ErrIllegalMutation)
	})

	t.Run("sliding without a link fails", func(t *testing.T) {
		err := s.Execute(Action{Kind: Move, Player: 0, From: Position{0, 0}, To: Position{0, 2}})
		require.ErrorIs(t, err, ErrIllegalMutation)
	})
}

func TestCloneRoundTrip(t *testing.T) {
	original := NewGameState(4)
	clone := original.Clone().(*GameState)

	moves := []Action{
		{Kind: Place, Player: 0, To: Position{0, 0}},
		{Kind: Place, Player: 1, To: Position{1, 3}},
		{Kind: Place, Player: 0, To: Position{0, 1}},
		{Kind: Place, Player: 1, To: Position{2, 5}},
	}
	for _, action := range moves {
		require.NoError(t, original.Execute(action))
		require.NoError(t, clone.Execute(action))
	}

	for _, pos := range original.Board().Design().Fields() {
		a, aok := original.Board().Get(pos)
		b, bok := clone.Board().Get(pos)
		require.Equal(t, aok, bok, "occupancy differs at %v", pos)
		require.Equal(t, a, b, "piece differs at %v", pos)
	}
	ac0, ac1 := original.Counts()
	bc0, bc1 := clone.Counts()
	require.Equal(t, ac0, bc0)
	require.Equal(t, ac1, bc1)
	require.Equal(t, original.Turn(), clone.Turn())
}

func TestCloneIsNotFrozen(t *testing.T) {
	s := NewGameState(4)
	s.Freeze()

	clone := s.Clone().(*GameState)
	require.False(t, clone.Frozen())
	require.NoError(t, clone.Execute(Action{Kind: Place, Player: 0, To: Position{0, 0}}))
	require.True(t, s.Board().IsEmpty(Position{0, 0}), "the original must stay untouched")
}

// TestRandomPlayout drives a full random game and checks the count
// invariant after every move.
func TestRandomPlayout(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewGameState(3)

	for step := 0; step < 200; step++ {
		actions := collectActions(s)
		if len(actions) == 0 {
			break
		}
		action := actions[rng.Intn(len(actions))]
		next := s.Clone().(*GameState)
		require.NoError(t, next.Execute(action), "action %v at step %d", action, step)

		requireCountsInSync(t, next.Board())
		require.Equal(t, s.Turn().Other(), next.Turn())
		s = next
	}
}

func TestCombinations(t *testing.T) {
	items := []Position{{0, 0}, {0, 1}, {0, 2}, {0, 3}}

	t.Run("choose 2 of 4", func(t *testing.T) {
		var got [][]Position
		done := combinations(items, 2, func(comb []Position) bool {
			got = append(got, slices.Clone(comb))
			return true
		})
		require.True(t, done)
		require.Len(t, got, 6)
		require.Equal(t, []Position{{0, 0}, {0, 1}}, got[0])
		require.Equal(t, []Position{{0, 2}, {0, 3}}, got[5])
	})

	t.Run("choose more than available", func(t *testing.T) {
		done := combinations(items, 5, func([]Position) bool {
			t.Fatal("nothing should be visited")
			return true
		})
		require.True(t, done)
	})

	t.Run("visitor can stop early", func(t *testing.T) {
		calls := 0
		done := combinations(items, 2, func([]Position) bool {
			calls++
			return false
		})
		require.False(t, done)
		require.Equal(t, 1, calls)
	})
}
