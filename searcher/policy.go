package searcher

import "errors"

// ErrEmptyStatistics is returned when best-action statistics are requested
// from a root that has no simulated children.
var ErrEmptyStatistics = errors.New("no children with statistics")

// The four search phases are independently pluggable strategies, injected
// into MCTS at construction. The defaults are UCB1Selection,
// RandomExpansion, RolloutSimulation and AdditiveBackprop.

// SelectionPolicy walks the tree to the node worth expanding next. A nil
// result means the whole tree is exhausted and the search should stop.
type SelectionPolicy interface {
	SelectFrom(node *Node) *Node
}

// ExpansionPolicy consumes some of a node's remaining actions and
// materializes a child node for each.
type ExpansionPolicy interface {
	Expand(node *Node) []*Node
}

// SimulationPolicy estimates a node's value by playouts, writing the
// reward and simulation count onto the node itself, not its ancestors.
type SimulationPolicy interface {
	Simulate(node *Node)
}

// BackpropagationPolicy folds a freshly simulated node's statistics into
// its ancestors.
type BackpropagationPolicy interface {
	Backpropagate(node *Node)
}
