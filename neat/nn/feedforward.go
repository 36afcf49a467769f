package nn

import (
	"errors"
	"fmt"

	"github.com/baldhumanity/neatwork/neat"
)

// ErrRecurrent is returned by Compile for networks with a recurrent gene.
var ErrRecurrent = errors.New("network is recurrent")

// neuralNode is a node with its incoming enabled genes resolved.
type neuralNode struct {
	ID      int
	Sources []int
	Weights []float64
}

// FeedForwardNetwork is a compiled, stateless phenotype of an acyclic
// network. It is safe for concurrent use.
type FeedForwardNetwork struct {
	Inputs     int
	OutputKeys []int
	Nodes      []neuralNode // in evaluation order
	NodeCount  int

	activation neat.ActivationType
}

// Compile builds a FeedForwardNetwork from an acyclic network. For any input
// it produces the same outputs as the source network evaluated right after a
// Reset.
func Compile(n *neat.Network) (*FeedForwardNetwork, error) {
	if n.IsRecurrent() {
		return nil, fmt.Errorf("compile %s: %w", n, ErrRecurrent)
	}
	order, err := n.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", n, err)
	}
	activation, err := neat.GetActivation(n.Activation)
	if err != nil {
		return nil, err
	}

	incoming := make([]neuralNode, len(n.Nodes))
	for _, g := range n.Genes {
		if g.Disabled {
			continue
		}
		in := &incoming[g.Link.Dest]
		in.Sources = append(in.Sources, g.Link.Src)
		in.Weights = append(in.Weights, g.Weight)
	}

	net := &FeedForwardNetwork{
		Inputs:     n.Inputs,
		OutputKeys: append([]int(nil), n.Outputs...),
		Nodes:      make([]neuralNode, 0, len(order)),
		NodeCount:  len(n.Nodes),
		activation: activation,
	}
	for _, id := range order {
		node := incoming[id]
		node.ID = id
		net.Nodes = append(net.Nodes, node)
	}
	return net, nil
}

// Activate computes the network's output for a given slice of input values.
// Every node, inputs included, applies the activation to the sum of its
// external input and its weighted sources.
func (net *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != net.Inputs {
		return nil, fmt.Errorf("%w: got %d values, network has %d inputs", neat.ErrInputSizeMismatch, len(inputs), net.Inputs)
	}

	values := make([]float64, net.NodeCount)
	for _, node := range net.Nodes {
		sum := 0.0
		if node.ID < net.Inputs {
			sum = inputs[node.ID]
		}
		for i, src := range node.Sources {
			sum += values[src] * node.Weights[i]
		}
		values[node.ID] = net.activation(sum)
	}

	outputs := make([]float64, len(net.OutputKeys))
	for i, id := range net.OutputKeys {
		outputs[i] = values[id]
	}
	return outputs, nil
}
