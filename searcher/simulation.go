package searcher

import (
	"slices"

	"golang.org/x/exp/rand"

	"muehle/game"
)

// SimulationResult is the outcome of one playout: how deep it ran, who won
// (game.NoPlayer when the depth limit cut it off) and the piece counts
// left on the board.
type SimulationResult struct {
	Steps      int
	Winner     game.PlayerID
	PiecesLeft [2]int
}

// RolloutSimulation plays randomized continuations from a node's state.
// Actions carrying a capture are preferred over quiet ones. Within the
// first branchingDepth plies up to branching distinct random actions are
// each followed as an independent continuation; past that a single random
// path is played out. The node's reward is the average over playouts of
// twice the piece-count ratio for the searching player, and a call counts
// as exactly one simulation regardless of the number of playouts.
type RolloutSimulation struct {
	player         game.PlayerID
	maxDepth       int
	branching      int
	branchingDepth int
	rng            *rand.Rand
}

func NewRolloutSimulation(player game.PlayerID, maxDepth, branching, branchingDepth int, rng *rand.Rand) *RolloutSimulation {
	if maxDepth < 1 {
		panic("rollout depth must be positive")
	}
	return &RolloutSimulation{
		player:         player,
		maxDepth:       maxDepth,
		branching:      branching,
		branchingDepth: branchingDepth,
		rng:            rng,
	}
}

func (s *RolloutSimulation) Simulate(node *Node) {
	state := node.state.Clone()
	results := s.playout(state, slices.Collect(state.AvailableActions()), 0, nil)

	var reward float64
	for _, result := range results {
		mine := float64(result.PiecesLeft[s.player])
		theirs := float64(result.PiecesLeft[s.player.Other()])
		reward += 2 * (mine - theirs) / (mine + theirs)
	}
	node.rewardTotal += reward / float64(len(results))
	node.simulations++
}

// playout runs the recursive rollout, appending one result per finished
// continuation. Reaching maxDepth ends a continuation without a winner;
// running out of actions means the side to move has lost.
func (s *RolloutSimulation) playout(state game.State, actions []game.Action, steps int, results []SimulationResult) []SimulationResult {
	if steps >= s.maxDepth {
		return append(results, SimulationResult{
			Steps:      steps,
			Winner:     game.NoPlayer,
			PiecesLeft: countsOf(state),
		})
	}
	if len(actions) == 0 {
		return append(results, SimulationResult{
			Steps:      steps,
			Winner:     state.Turn().Other(),
			PiecesLeft: countsOf(state),
		})
	}

	if s.branching > 1 && steps < s.branchingDepth {
		n := s.branching
		if len(actions) < n {
			n = len(actions)
		}
		for i := 0; i < n; i++ {
			action := s.takeAction(&actions)
			next := state.Clone()
			if err := next.Execute(action); err != nil {
				panic("rollout applied an illegal action: " + err.Error())
			}
			results = s.playout(next, slices.Collect(next.AvailableActions()), steps+1, results)
		}
		return results
	}

	action := s.takeAction(&actions)
	if err := state.Execute(action); err != nil {
		panic("rollout applied an illegal action: " + err.Error())
	}
	return s.playout(state, slices.Collect(state.AvailableActions()), steps+1, results)
}

// takeAction removes and returns a random action, preferring ones that
// capture. Order within the slice is not preserved.
func (s *RolloutSimulation) takeAction(actions *[]game.Action) game.Action {
	list := *actions
	var attacking []int
	for i, action := range list {
		if len(action.Attacks) > 0 {
			attacking = append(attacking, i)
		}
	}

	var i int
	if len(attacking) > 0 {
		i = attacking[s.rng.Intn(len(attacking))]
	} else {
		i = s.rng.Intn(len(list))
	}

	action := list[i]
	list[i] = list[len(list)-1]
	*actions = list[:len(list)-1]
	return action
}

func countsOf(state game.State) [2]int {
	a, b := state.Counts()
	return [2]int{a, b}
}
