package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"muehle/game"
)

// MCTS is one search tree with its four strategies. A tree belongs to one
// searching player and is advanced move by move: SelectBest commits the
// searcher's own move, SelectOther follows the opponent's.
type MCTS struct {
	node       *Node
	selection  SelectionPolicy
	expansion  ExpansionPolicy
	simulation SimulationPolicy
	backprop   BackpropagationPolicy
}

// New assembles a search over state from explicit strategies.
func New(state game.State, selection SelectionPolicy, expansion ExpansionPolicy, simulation SimulationPolicy, backprop BackpropagationPolicy) *MCTS {
	return &MCTS{
		node:       NewNode(state, nil),
		selection:  selection,
		expansion:  expansion,
		simulation: simulation,
		backprop:   backprop,
	}
}

// Option tunes the default strategies built by NewDefault.
type Option func(*config)

type config struct {
	seed                  uint64
	expansionBranching    int
	rolloutDepth          int
	rolloutBranching      int
	rolloutBranchingDepth int
}

// WithSeed fixes the random source so a search is reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		if seed != 0 {
			c.seed = seed
		}
	}
}

// WithExpansionBranching caps how many children one expansion step adds.
func WithExpansionBranching(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.expansionBranching = n
		}
	}
}

// WithRolloutDepth caps the length of a single playout.
func WithRolloutDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.rolloutDepth = n
		}
	}
}

// WithRolloutBranching sets how many independent continuations a rollout
// explores near its start.
func WithRolloutBranching(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.rolloutBranching = n
		}
	}
}

// WithRolloutBranchingDepth sets for how many plies rollouts keep
// branching before following a single random path.
func WithRolloutBranchingDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.rolloutBranchingDepth = n
		}
	}
}

// NewDefault assembles the reference search for player: UCB1 selection,
// random expansion, capture-biased rollouts and additive backpropagation,
// sharing one seeded random source.
func NewDefault(state game.State, player game.PlayerID, opts ...Option) *MCTS {
	cfg := &config{
		seed:                  uint64(time.Now().UnixNano()),
		expansionBranching:    3,
		rolloutDepth:          50,
		rolloutBranching:      5,
		rolloutBranchingDepth: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	return New(
		state,
		UCB1Selection{},
		NewRandomExpansion(cfg.expansionBranching, rng),
		NewRolloutSimulation(player, cfg.rolloutDepth, cfg.rolloutBranching, cfg.rolloutBranchingDepth, rng),
		AdditiveBackprop{},
	)
}

// Root returns the current root of the search tree.
func (m *MCTS) Root() *Node {
	return m.node
}

// RunIteration performs one select/expand/simulate/backpropagate cycle.
// It returns false when selection finds nothing left to expand, meaning
// the tree is exhausted and further iterations are pointless.
func (m *MCTS) RunIteration() bool {
	node := m.selection.SelectFrom(m.node)
	if node == nil {
		return false
	}
	for _, child := range m.expansion.Expand(node) {
		m.simulation.Simulate(child)
		m.backprop.Backpropagate(child)
	}
	return true
}

// ActionReward pairs a root action with its mean playout reward.
type ActionReward struct {
	Reward float64
	Action game.Action
	Node   *Node
}

// ActionRewards lists the root's expanded actions with their mean rewards,
// in first-seen order. ErrEmptyStatistics if nothing has been expanded.
func (m *MCTS) ActionRewards() ([]ActionReward, error) {
	if len(m.node.children) == 0 {
		return nil, fmt.Errorf("%w: root has no expanded children", ErrEmptyStatistics)
	}
	rewards := make([]ActionReward, len(m.node.children))
	for i, child := range m.node.children {
		rewards[i] = ActionReward{
			Reward: child.rewardTotal / float64(child.simulations),
			Action: m.node.actions[i],
			Node:   child,
		}
	}
	return rewards, nil
}

// BestAction returns the root action with the highest mean reward. No
// exploration term applies here; ties keep the first-seen child.
func (m *MCTS) BestAction() (ActionReward, error) {
	rewards, err := m.ActionRewards()
	if err != nil {
		return ActionReward{}, err
	}
	best := rewards[0]
	for _, candidate := range rewards[1:] {
		if candidate.Reward > best.Reward {
			best = candidate
		}
	}
	return best, nil
}

// SelectBest commits the best action: its child becomes the new root and
// the parent link is severed, so the dropped ancestors stop receiving
// backpropagation and can be reclaimed.
func (m *MCTS) SelectBest() (game.Action, *Node, error) {
	best, err := m.BestAction()
	if err != nil {
		return game.Action{}, nil, err
	}
	m.node = best.Node
	m.node.Sever()
	return best.Action, best.Node, nil
}

// SelectOther advances the tree by the opponent's action. A matching
// expanded child is reused together with its accumulated statistics;
// otherwise the tree is discarded and restarted at the given state.
func (m *MCTS) SelectOther(action game.Action, state game.State) {
	if child := m.node.childFor(action); child != nil {
		m.node = child
		m.node.Sever()
		return
	}
	log.Debug().Stringer("action", action).Msg("opponent action not in tree, starting a fresh root")
	m.node = NewNode(state, nil)
}
