package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"muehle/game"
	"muehle/searcher"
)

// Budget bounds one turn of search: a wall-clock limit that is only
// checked once a minimum number of iterations has run, and an optional
// hard iteration cap. Iterations are atomic; a budget never interrupts
// one halfway.
type Budget struct {
	Duration      time.Duration
	MinIterations int
	MaxIterations int
}

// RunSearch iterates a search until its budget is exhausted or the tree
// has nothing left to expand. Returns the number of iterations run.
func RunSearch(m *searcher.MCTS, budget Budget) int {
	deadline := time.Now().Add(budget.Duration)
	iterations := 0
	for {
		if budget.MaxIterations > 0 && iterations >= budget.MaxIterations {
			break
		}
		if budget.Duration > 0 && iterations > budget.MinIterations && time.Now().After(deadline) {
			break
		}
		iterations++
		if !m.RunIteration() {
			break
		}
	}
	return iterations
}

// Option configures an Engine.
type Option func(*Engine)

// WithBudget sets the per-turn search budget for both players.
func WithBudget(budget Budget) Option {
	return func(e *Engine) { e.budget = budget }
}

// WithSeed makes the whole match reproducible; each player's searcher gets
// a seed derived from it.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithMaxTurns stops a match that has not produced a winner.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) { e.maxTurns = turns }
}

// WithGameOptions forwards rule options to the game state.
func WithGameOptions(opts ...game.Option) Option {
	return func(e *Engine) { e.gameOpts = opts }
}

// WithOutput renders the board to w after every move.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// Engine alternates turns between two independent searchers over one
// shared game, in the way two separate processes would: the mover commits
// its best action, the opponent's tree follows that action and keeps its
// matching subtree when it has one.
type Engine struct {
	state     *game.GameState
	searchers [2]*searcher.MCTS
	budget    Budget
	seed      uint64
	maxTurns  int
	gameOpts  []game.Option
	out       io.Writer
}

// New sets up a fresh match on a board with the given side count, one
// searcher per player.
func New(sides int, opts ...Option) *Engine {
	e := &Engine{
		budget:   Budget{Duration: 4 * time.Second, MinIterations: 10},
		maxTurns: 500,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.state = game.NewGameState(sides, e.gameOpts...)
	for player := game.PlayerID(0); player < 2; player++ {
		var searcherOpts []searcher.Option
		if e.seed != 0 {
			searcherOpts = append(searcherOpts, searcher.WithSeed(e.seed+uint64(player)))
		}
		e.searchers[player] = searcher.NewDefault(e.state, player, searcherOpts...)
	}
	return e
}

// State returns the current game state. It is frozen once the searchers
// have taken ownership of it.
func (e *Engine) State() *game.GameState {
	return e.state
}

// Run plays the match to the end and returns the winner, or game.NoPlayer
// when the turn limit cuts the match off.
func (e *Engine) Run() game.PlayerID {
	logger := log.With().Str("game_id", uuid.NewString()).Logger()
	return e.run(logger)
}

func (e *Engine) run(logger zerolog.Logger) game.PlayerID {
	for turn := 0; turn < e.maxTurns; turn++ {
		player := game.PlayerID(turn % 2)
		current := e.searchers[player]
		other := e.searchers[player.Other()]

		iterations := RunSearch(current, e.budget)
		action, node, err := current.SelectBest()
		if err != nil {
			// The mover never had a move: the opponent has already won.
			logger.Info().Int("turn", turn).Int("player", int(player.Other())).Msg("winner")
			return player.Other()
		}

		logger.Info().
			Int("turn", turn).
			Int("player", int(player)).
			Int("iterations", iterations).
			Stringer("action", action).
			Msg("move")

		state := node.State().(*game.GameState)
		other.SelectOther(action, state)
		e.state = state

		if e.out != nil {
			fmt.Fprintln(e.out, Render(state.Board()))
		}

		if other.Root().Terminal() {
			logger.Info().Int("turn", turn).Int("player", int(player)).Msg("winner")
			return player
		}
	}

	logger.Info().Int("turns", e.maxTurns).Msg("turn limit reached, no winner")
	return game.NoPlayer
}
