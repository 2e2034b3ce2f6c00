package searcher

import (
	"slices"

	"muehle/game"
)

// Node is one visited state in the search tree. The state is frozen at
// construction so no other branch can mutate it. Children are stored in
// first-seen order, which is also the tie-break order for best-action
// picks. Severing the parent link turns a node into an independent root.
type Node struct {
	state  game.State
	parent *Node

	remaining []game.Action
	actions   []game.Action
	children  []*Node

	visited     int
	simulations int
	rewardTotal float64
}

// NewNode freezes state and snapshots its legal actions as the node's
// expansion budget.
func NewNode(state game.State, parent *Node) *Node {
	state.Freeze()
	return &Node{
		state:     state,
		parent:    parent,
		remaining: slices.Collect(state.AvailableActions()),
	}
}

func (n *Node) State() game.State    { return n.state }
func (n *Node) Parent() *Node        { return n.parent }
func (n *Node) Children() []*Node    { return n.children }
func (n *Node) Visited() int         { return n.visited }
func (n *Node) Simulations() int     { return n.simulations }
func (n *Node) RewardTotal() float64 { return n.rewardTotal }

// Remaining returns how many legal actions are still unexpanded.
func (n *Node) Remaining() int {
	return len(n.remaining)
}

// Terminal reports whether the node is fully expanded with no children,
// i.e. its state never had a legal action.
func (n *Node) Terminal() bool {
	return len(n.remaining) == 0 && len(n.children) == 0
}

// Sever cuts the parent link, making this node a tree root. Backpropagation
// stops here and the discarded ancestors become collectable.
func (n *Node) Sever() {
	n.parent = nil
}

// addChild registers a child produced by expanding action.
func (n *Node) addChild(action game.Action, child *Node) {
	n.actions = append(n.actions, action)
	n.children = append(n.children, child)
}

// childFor returns the child expanded for an equal action, if any.
func (n *Node) childFor(action game.Action) *Node {
	for i, a := range n.actions {
		if a.Equal(action) {
			return n.children[i]
		}
	}
	return nil
}

// popRemaining removes and returns the remaining action at index i.
func (n *Node) popRemaining(i int) game.Action {
	action := n.remaining[i]
	n.remaining[i] = n.remaining[len(n.remaining)-1]
	n.remaining = n.remaining[:len(n.remaining)-1]
	return action
}
