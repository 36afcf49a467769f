package neat

import (
	"fmt"
	"math"
)

// Network is a genome together with the runtime state of its nodes.
//
// Node ids are dense and never reused: ids [0, Inputs) are the inputs, the
// next len(Outputs) ids are the outputs, and every id allocated afterwards by
// AddNodeInGene is a hidden node.
//
// Genes are looked up by link through an index that is kept in step with
// appends. Code that rewrites a gene's Link in place must call Reindex
// before the next lookup; a stale hit is detected and repaired on its own,
// a stale miss is not.
type Network struct {
	Genes      []Gene `json:"genes"`
	Nodes      []Node `json:"-"`
	Inputs     int    `json:"inputs"`
	Outputs    []int  `json:"outputs"`
	Activation string `json:"activation"`

	// index maps a link to its position in Genes. A length mismatch or a
	// position holding another link means it is stale.
	index map[Link]int
}

// NewEmpty builds a network that connects every input to every output with a
// randomly weighted gene and has no hidden nodes.
func NewEmpty(inputs, outputs int, rng Rand) *Network {
	n := &Network{
		Genes:      make([]Gene, 0, inputs*outputs),
		Nodes:      make([]Node, inputs+outputs),
		Inputs:     inputs,
		Outputs:    make([]int, outputs),
		Activation: ActivationReLU,
	}
	for o := range outputs {
		n.Outputs[o] = inputs + o
	}
	for i := range inputs {
		for o := inputs; o < inputs+outputs; o++ {
			n.Genes = append(n.Genes, RandomGene(i, o, false, rng))
		}
	}
	return n
}

// String returns a string representation of the Network.
func (n *Network) String() string {
	genes, nodes, _ := n.Size()
	return fmt.Sprintf("Network(Inputs: %d, Outputs: %d, Nodes: %d, Genes: %d/%d enabled)",
		n.Inputs, len(n.Outputs), nodes, genes, len(n.Genes))
}

// Clone creates a deep copy of the network, runtime state included.
func (n *Network) Clone() *Network {
	c := &Network{
		Genes:      make([]Gene, len(n.Genes)),
		Nodes:      make([]Node, len(n.Nodes)),
		Inputs:     n.Inputs,
		Outputs:    make([]int, len(n.Outputs)),
		Activation: n.Activation,
	}
	copy(c.Genes, n.Genes)
	copy(c.Outputs, n.Outputs)
	for i, node := range n.Nodes {
		c.Nodes[i] = Node{
			Executed: node.Executed,
			Inputs:   append([]float64(nil), node.Inputs...),
			Output:   node.Output,
		}
	}
	return c
}

// geneIndex returns the link -> gene index lookup, rebuilding it when needed.
func (n *Network) geneIndex() map[Link]int {
	if n.index == nil || len(n.index) != len(n.Genes) {
		n.index = make(map[Link]int, len(n.Genes))
		for i, g := range n.Genes {
			n.index[g.Link] = i
		}
	}
	return n.index
}

// GeneIndex returns the position of the gene with the given link.
func (n *Network) GeneIndex(link Link) (int, bool) {
	i, ok := n.geneIndex()[link]
	if ok && (i >= len(n.Genes) || n.Genes[i].Link != link) {
		n.Reindex()
		i, ok = n.geneIndex()[link]
	}
	return i, ok
}

// Reindex drops the link lookup so the next access rebuilds it from Genes.
func (n *Network) Reindex() {
	n.index = nil
}

// Size returns the number of enabled genes, the number of nodes and the
// number of genes feeding the first output.
func (n *Network) Size() (genes, nodes, outputDeps int) {
	for _, g := range n.Genes {
		if !g.Disabled {
			genes++
		}
	}
	if len(n.Outputs) > 0 {
		outputDeps = len(n.Dependencies(n.Outputs[0]))
	}
	return genes, len(n.Nodes), outputDeps
}

// Dependencies lists the indices of the enabled genes that end in node.
func (n *Network) Dependencies(node int) []int {
	deps := []int{}
	for i, g := range n.Genes {
		if g.Link.Dest == node && !g.Disabled {
			deps = append(deps, i)
		}
	}
	return deps
}

// incoming groups enabled gene indices by destination node.
func (n *Network) incoming() [][]int {
	in := make([][]int, len(n.Nodes))
	for i, g := range n.Genes {
		if g.Disabled {
			continue
		}
		if g.Link.Dest < 0 || g.Link.Dest >= len(n.Nodes) {
			panic(fmt.Sprintf("gene %d points at missing node %d", i, g.Link.Dest))
		}
		in[g.Link.Dest] = append(in[g.Link.Dest], i)
	}
	return in
}

// Evaluate runs one tick of the network on the given inputs.
//
// Values fed back through recurrent links are the ones produced by the
// previous tick, so calling Evaluate repeatedly without Reset lets the network
// carry state between calls.
func (n *Network) Evaluate(inputs []float64) ([]float64, error) {
	if len(inputs) != n.Inputs {
		return nil, fmt.Errorf("%w: got %d values, network has %d inputs", ErrInputSizeMismatch, len(inputs), n.Inputs)
	}
	activation, err := GetActivation(n.Activation)
	if err != nil {
		return nil, err
	}

	for i, v := range inputs {
		n.Nodes[i].Inputs = append(n.Nodes[i].Inputs, v)
	}

	e := evaluator{net: n, activation: activation, incoming: n.incoming()}
	outputs := make([]float64, len(n.Outputs))
	for i, id := range n.Outputs {
		visited := make(map[int]bool)
		outputs[i] = e.resolve(id, visited)
	}

	for i := range n.Nodes {
		// An input no output depends on never consumed its value.
		if i < n.Inputs && !n.Nodes[i].Executed {
			n.Nodes[i].Inputs = n.Nodes[i].Inputs[:0]
		}
		n.Nodes[i].Reset()
	}
	return outputs, nil
}

// Reset removes all recurrent state so the next Evaluate behaves like the
// first one.
func (n *Network) Reset() {
	for i := range n.Nodes {
		n.Nodes[i].clear()
	}
}

// evaluator holds the per-tick lookup tables of one Evaluate call.
type evaluator struct {
	net        *Network
	activation ActivationType
	incoming   [][]int
}

// resolve computes a node after all of its sources. visited is scoped to the
// resolution of one output; re-entering a node in it means the link is
// recurrent, and the node's current (previous tick) output is used instead.
func (e *evaluator) resolve(id int, visited map[int]bool) float64 {
	if id < 0 || id >= len(e.net.Nodes) {
		panic(fmt.Sprintf("node %d disappeared", id))
	}
	node := &e.net.Nodes[id]
	if node.Executed || visited[id] {
		return node.Output
	}
	visited[id] = true

	deps := e.incoming[id]
	for _, gi := range deps {
		e.resolve(e.net.Genes[gi].Link.Src, visited)
	}
	for _, gi := range deps {
		g := e.net.Genes[gi]
		src := e.net.Nodes[g.Link.Src].Output
		node.Inputs = append(node.Inputs, g.Evaluate(src))
	}
	return node.Evaluate(e.activation)
}

// Distance computes the compatibility distance between two networks:
// disjoint genes of the larger genome weighted by DisjointCoefficient and
// normalised by its size, plus the mean weight difference of matching genes
// weighted by WeightCoefficient. Genomes with no gene in common are infinitely
// far apart.
func (n *Network) Distance(other *Network, config *CompatibilityConfig) float64 {
	larger, smaller := n, other
	if len(other.Genes) > len(n.Genes) {
		larger, smaller = other, n
	}
	if len(larger.Genes) == 0 {
		return 0
	}

	disjoint := 0
	matching := 0
	weightDiff := 0.0
	for _, g := range larger.Genes {
		j, ok := smaller.GeneIndex(g.Link)
		if !ok {
			disjoint++
			continue
		}
		weightDiff += math.Abs(g.Weight - smaller.Genes[j].Weight)
		matching++
	}
	if matching == 0 {
		return math.Inf(1)
	}

	size := float64(len(larger.Genes))
	return float64(disjoint)*config.DisjointCoefficient/size +
		weightDiff/float64(matching)*config.WeightCoefficient
}

// IsCompatibleWith reports whether both networks belong in the same species.
func (n *Network) IsCompatibleWith(other *Network, config *CompatibilityConfig) bool {
	return n.Distance(other, config) < config.Threshold
}
