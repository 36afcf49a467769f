package neat

// Node is an accumulator inside a network. Inputs collects the weighted values
// pushed by incoming genes during one evaluation tick.
type Node struct {
	// Executed is set once the node has been evaluated in the current tick.
	Executed bool `json:"-"`
	// Inputs is the list of values summed upon evaluation.
	Inputs []float64 `json:"-"`
	// Output survives across ticks; recurrent links read it as short-term memory.
	Output float64 `json:"-"`
}

// Evaluate sums the pending inputs, applies the activation and caches the
// result for the rest of the tick. A node that already ran this tick returns
// its cached output.
func (n *Node) Evaluate(activation ActivationType) float64 {
	if n.Executed {
		return n.Output
	}
	sum := 0.0
	for _, v := range n.Inputs {
		sum += v
	}
	n.Output = activation(sum)
	n.Executed = true
	n.Inputs = n.Inputs[:0]
	return n.Output
}

// Reset prepares the node for a new tick. Output is kept.
func (n *Node) Reset() {
	n.Executed = false
}

// clear drops every piece of runtime state.
func (n *Node) clear() {
	n.Executed = false
	n.Inputs = n.Inputs[:0]
	n.Output = 0
}
