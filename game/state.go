package game

import (
	"fmt"
	"iter"
)

// State is the abstract interface the search operates on. GameState is the
// one implementation here; searchers and tests may substitute their own.
type State interface {
	// Turn returns the player to move.
	Turn() PlayerID
	// Counts returns both players' piece counts.
	Counts() (int, int)
	// AvailableActions lazily enumerates the legal actions for the side to
	// move. An empty sequence means the side to move has lost.
	AvailableActions() iter.Seq[Action]
	// Clone returns an unfrozen deep copy.
	Clone() State
	// Execute applies an action in place and passes the turn.
	Execute(Action) error
	// Freeze permanently rejects further Execute calls.
	Freeze()
}

// Option configures a new GameState.
type Option func(*GameState)

// WithExtended enables cross-ring links at every index, not only at the
// odd spoke indices.
func WithExtended() Option {
	return func(s *GameState) { s.extended = true }
}

// WithOptionalCapture makes mill completion legal even when no capture
// combination exists: the action is emitted with an empty attack list. By
// default such a move is suppressed entirely.
func WithOptionalCapture() Option {
	return func(s *GameState) { s.optionalCapture = true }
}

// GameState is the turn-taking wrapper around a board: whose move it is,
// how many pieces each player has placed so far, and whether the state is
// frozen against mutation.
type GameState struct {
	board           *GameBoard
	turn            PlayerID
	placed          [2]int
	maxPlaced       int
	frozen          bool
	extended        bool
	optionalCapture bool
}

// NewGameState starts an empty game on a ring board with the given side
// count. Player 0 moves first; each player may place floor(sides/4*9)
// pieces before the moving phase begins (9 on the classic 4-sided board).
func NewGameState(sides int, opts ...Option) *GameState {
	s := &GameState{
		maxPlaced: int(float64(sides) / 4 * 9),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.board = NewGameBoard(NewRingDesign(sides, s.extended))
	return s
}

func (s *GameState) Board() *GameBoard { return s.board }
func (s *GameState) Turn() PlayerID    { return s.turn }
func (s *GameState) Frozen() bool      { return s.frozen }
func (s *GameState) MaxPlaced() int    { return s.maxPlaced }

// Placed returns how many pieces the player has placed so far.
func (s *GameState) Placed(player PlayerID) int {
	return s.placed[player]
}

func (s *GameState) Counts() (int, int) {
	return s.board.CountTotal()
}

// Freeze permanently protects this state against Execute. Search trees
// freeze every node state so a later branch cannot mutate it.
func (s *GameState) Freeze() {
	s.frozen = true
}

// Clone deep-copies the board occupancy and counters; the topology is
// shared. The clone is never frozen.
func (s *GameState) Clone() State {
	return &GameState{
		board:           s.board.Clone(),
		turn:            s.turn,
		placed:          s.placed,
		maxPlaced:       s.maxPlaced,
		extended:        s.extended,
		optionalCapture: s.optionalCapture,
	}
}

// AvailableAttacks returns the opponent pieces the player may capture on
// completing a mill: pieces outside any mill first, pieces inside mills
// only when none is left outside.
func (s *GameState) AvailableAttacks(player PlayerID) []Position {
	other := player.Other()
	if outside := s.board.PiecesOutsideMill(other); len(outside) > 0 {
		return outside
	}
	return s.board.PiecesInsideMill(other)
}

func (s *GameState) AvailableActions() iter.Seq[Action] {
	return s.AvailableActionsFor(s.turn)
}

// AvailableActionsFor lazily enumerates the player's legal actions. The
// game phase follows from the player's placement and piece counts: placing
// until maxPlaced pieces are down, then sliding along links, then jumping
// anywhere once exactly 3 pieces remain. A destination completing k mills
// forks the action into one variant per k-combination of capturable
// opponent pieces; with fewer than k capturable pieces the move is illegal
// unless the optional-capture rule is enabled.
func (s *GameState) AvailableActionsFor(player PlayerID) iter.Seq[Action] {
	return func(yield func(Action) bool) {
		attacks := s.AvailableAttacks(player)

		emit := func(action Action) bool {
			mills := s.board.ReadyMills(player, action.To)
			if len(mills) == 0 {
				return yield(action)
			}
			emitted := false
			more := combinations(attacks, len(mills), func(comb []Position) bool {
				variant := action
				variant.Attacks = append([]Position(nil), comb...)
				emitted = true
				return yield(variant)
			})
			if !more {
				return false
			}
			if !emitted && s.optionalCapture {
				return yield(action)
			}
			return true
		}

		switch {
		case s.placed[player] < s.maxPlaced: // placing phase
			for _, pos := range s.board.Empty() {
				if !emit(Action{Kind: Place, Player: player, To: pos}) {
					return
				}
			}
		case s.board.Count(player) > 3: // moving phase
			for _, start := range s.board.Pieces(player) {
				for _, end := range s.board.AvailableMoves(start) {
					if !emit(Action{Kind: Move, Player: player, From: start, To: end}) {
						return
					}
				}
			}
		case s.board.Count(player) == 3: // jumping phase
			for _, start := range s.board.Pieces(player) {
				for _, end := range s.board.Empty() {
					if !emit(Action{Kind: Jump, Player: player, From: start, To: end}) {
						return
					}
				}
			}
		}
		// Fewer than 3 pieces: no moves, the player has lost.
	}
}

// Execute applies the action to this state in place and passes the turn.
// Frozen states reject any action; the action must belong to the side to
// move. Capture handling is shared across all three variants.
func (s *GameState) Execute(action Action) error {
	if s.frozen {
		return fmt.Errorf("%w: state is frozen", ErrIllegalMutation)
	}
	if action.Player != s.turn {
		return fmt.Errorf("%w: player %d moved on player %d's turn",
			ErrIllegalAction, action.Player, s.turn)
	}

	switch action.Kind {
	case Place:
		if s.placed[action.Player] >= s.maxPlaced {
			return fmt.Errorf("%w: player %d already placed %d pieces",
				ErrIllegalMutation, action.Player, s.maxPlaced)
		}
		if err := s.board.Place(action.To, Piece{Player: action.Player}); err != nil {
			return err
		}
		s.placed[action.Player]++

	case Move, Jump:
		piece, ok := s.board.Get(action.From)
		if !ok || piece.Player != action.Player {
			return fmt.Errorf("%w: no piece of player %d at %v",
				ErrIllegalMutation, action.Player, action.From)
		}
		var err error
		if action.Kind == Move {
			err = s.board.Move(action.From, action.To)
		} else {
			err = s.board.Jump(action.From, action.To)
		}
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrIllegalAction, action.Kind)
	}

	for _, pos := range action.Attacks {
		piece, ok := s.board.Remove(pos)
		if !ok || piece.Player == action.Player {
			return fmt.Errorf("%w: cannot capture %v", ErrIllegalMutation, pos)
		}
	}

	s.turn = s.turn.Other()
	return nil
}

// combinations calls visit with every k-combination of items, in
// lexicographic index order. The slice passed to visit is reused between
// calls. Returns false if visit stopped the enumeration early. With k
// larger than len(items) there is nothing to visit.
func combinations(items []Position, k int, visit func([]Position) bool) bool {
	if k > len(items) {
		return true
	}
	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	comb := make([]Position, k)
	for {
		for i, idx := range indices {
			comb[i] = items[idx]
		}
		if !visit(comb) {
			return false
		}
		i := k - 1
		for i >= 0 && indices[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return true
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
