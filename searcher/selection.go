package searcher

import "math"

// UCB1Selection descends the tree by the UCB1 rule until it reaches a node
// that still has unexpanded actions.
type UCB1Selection struct{}

// ucb1 balances the mean reward against a visit-count exploration bonus.
// Panics on zero simulations: selection never scores an unsimulated child.
func ucb1(node *Node, lnParent float64) float64 {
	if node.simulations == 0 {
		panic("cannot compute UCB1 with 0 simulations")
	}
	return node.rewardTotal/float64(node.simulations) +
		math.Sqrt(2*lnParent/float64(node.simulations))
}

// SelectFrom returns node itself while it has remaining actions, otherwise
// descends into the child maximizing UCB1. A fully expanded node without
// children is terminal and yields nil. Ties keep the first-seen child, so
// a fixed seed replays the identical descent.
func (p UCB1Selection) SelectFrom(node *Node) *Node {
	if len(node.remaining) > 0 {
		return node
	}
	if len(node.children) == 0 {
		return nil
	}

	lnParent := math.Log(float64(node.simulations))
	best := node.children[0]
	bestScore := ucb1(best, lnParent)
	for _, child := range node.children[1:] {
		if score := ucb1(child, lnParent); score > bestScore {
			best, bestScore = child, score
		}
	}
	return p.SelectFrom(best)
}
