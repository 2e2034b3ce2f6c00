package searcher

// AdditiveBackprop folds a freshly simulated node's reward and simulation
// count into every ancestor, bumping each ancestor's visited counter. The
// walk stops at a severed parent link, so a re-rooted tree never credits
// stale history.
type AdditiveBackprop struct{}

func (AdditiveBackprop) Backpropagate(node *Node) {
	simulations := node.simulations
	reward := node.rewardTotal
	for parent := node.parent; parent != nil; parent = parent.parent {
		parent.simulations += simulations
		parent.rewardTotal += reward
		parent.visited++
	}
}
