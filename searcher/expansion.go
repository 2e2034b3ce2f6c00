package searcher

import (
	"golang.org/x/exp/rand"
)

// RandomExpansion pops up to branching actions at random, without
// replacement, and materializes a child node for each on a cloned state.
type RandomExpansion struct {
	branching int
	rng       *rand.Rand
}

func NewRandomExpansion(branching int, rng *rand.Rand) *RandomExpansion {
	if branching < 1 {
		panic("expansion branching must be positive")
	}
	return &RandomExpansion{branching: branching, rng: rng}
}

func (e *RandomExpansion) Expand(node *Node) []*Node {
	n := e.branching
	if len(node.remaining) < n {
		n = len(node.remaining)
	}

	children := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		action := node.popRemaining(e.rng.Intn(len(node.remaining)))
		state := node.state.Clone()
		if err := state.Execute(action); err != nil {
			// Remaining actions come from the state's own enumeration; an
			// execute failure is a rules bug, not a runtime condition.
			panic("expansion applied an illegal action: " + err.Error())
		}
		child := NewNode(state, node)
		node.addChild(action, child)
		children = append(children, child)
	}
	return children
}
