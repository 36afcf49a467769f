package neat

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph returns the directed graph formed by the enabled genes. Every node of
// the network is present, connected or not. Self-loops cannot be represented
// by simple.DirectedGraph and are left out; use RecurrentGenes to find them.
func (n *Network) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for id := range n.Nodes {
		g.AddNode(simple.Node(int64(id)))
	}
	for _, gene := range n.Genes {
		if gene.Disabled || gene.Link.Src == gene.Link.Dest {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(int64(gene.Link.Src)), simple.Node(int64(gene.Link.Dest))))
	}
	return g
}

// RecurrentGenes lists the enabled genes that lie on a cycle, i.e. whose
// destination can influence their own source. These are the links that carry
// values from one Evaluate call to the next.
func (n *Network) RecurrentGenes() []int {
	component := make(map[int64]int)
	for i, scc := range topo.TarjanSCC(n.Graph()) {
		for _, node := range scc {
			component[node.ID()] = i
		}
	}

	recurrent := []int{}
	for i, gene := range n.Genes {
		if gene.Disabled {
			continue
		}
		if gene.Link.Src == gene.Link.Dest ||
			component[int64(gene.Link.Src)] == component[int64(gene.Link.Dest)] {
			recurrent = append(recurrent, i)
		}
	}
	return recurrent
}

// IsRecurrent reports whether any enabled gene lies on a cycle.
func (n *Network) IsRecurrent() bool {
	return len(n.RecurrentGenes()) > 0
}

// TopologicalOrder returns the node ids ordered so that every enabled gene
// points forward. It fails with topo.Unorderable when the network is recurrent.
func (n *Network) TopologicalOrder() ([]int, error) {
	for _, gene := range n.Genes {
		if !gene.Disabled && gene.Link.Src == gene.Link.Dest {
			return nil, topo.Unorderable{{simple.Node(int64(gene.Link.Src))}}
		}
	}
	sorted, err := topo.SortStabilized(n.Graph(), sortByID)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(sorted))
	for i, node := range sorted {
		order[i] = int(node.ID())
	}
	return order, nil
}

// sortByID orders nodes that have no ordering constraint between them by id.
func sortByID(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}
