package neat

import "fmt"

// AddConnection adds a gene from src to dest with the given weight. If a gene
// with the same link already exists it is re-enabled in place instead, so a
// genome never holds two genes for one link.
func (n *Network) AddConnection(src, dest int, weight float64) {
	link := Link{Src: src, Dest: dest}
	if i, ok := n.GeneIndex(link); ok {
		n.Genes[i].Enable()
		return
	}
	n.Genes = append(n.Genes, NewGene(src, dest, false, weight))
	n.geneIndex()[link] = len(n.Genes) - 1
}

// AddRandomConnection is AddConnection with a weight drawn uniformly from [-1, 1].
func (n *Network) AddRandomConnection(src, dest int, rng Rand) {
	n.AddConnection(src, dest, uniformWeight(rng))
}

// AddNodeInGene splits a gene in two through a new hidden node. The incoming
// half gets weight 1 and the outgoing half the original weight; the original
// gene is disabled, not removed.
func (n *Network) AddNodeInGene(geneID int) error {
	if geneID < 0 || geneID >= len(n.Genes) {
		return fmt.Errorf("add node in gene %d of %d: %w", geneID, len(n.Genes), ErrGeneNotExistent)
	}
	link, weight := n.Genes[geneID].Link, n.Genes[geneID].Weight

	nodeID := len(n.Nodes)
	n.Nodes = append(n.Nodes, Node{})

	n.AddConnection(link.Src, nodeID, 1.0)
	n.AddConnection(nodeID, link.Dest, weight)
	n.Genes[geneID].Disable()
	return nil
}

// MutateGene perturbs the weight of one gene.
func (n *Network) MutateGene(geneID int, config *GeneConfig, rng Rand) error {
	if geneID < 0 || geneID >= len(n.Genes) {
		return fmt.Errorf("mutate gene %d of %d: %w", geneID, len(n.Genes), ErrGeneNotExistent)
	}
	n.Genes[geneID].Mutate(config, rng)
	return nil
}

// Mutate applies the full mutation pass used when breeding. Each mutation is
// gated by its own probability, sampled independently.
func (n *Network) Mutate(config *Config, rng Rand) error {
	rng = orGlobal(rng)
	b := config.Breeding

	if chance(rng, b.AddGeneProbability) && len(n.Nodes) > 0 {
		src := rng.Intn(len(n.Nodes))
		dest := rng.Intn(len(n.Nodes))
		n.AddRandomConnection(src, dest, rng)
	}

	if chance(rng, b.AddNodeProbability) && len(n.Genes) > 0 {
		if err := n.AddNodeInGene(rng.Intn(len(n.Genes))); err != nil {
			return fmt.Errorf("mutation: %w", err)
		}
	}

	if chance(rng, b.MutateGeneProbability) && len(n.Genes) > 0 {
		if err := n.MutateGene(rng.Intn(len(n.Genes)), &config.Gene, rng); err != nil {
			return fmt.Errorf("mutation: %w", err)
		}
	}

	if chance(rng, b.GeneEnableProbability) && len(n.Genes) > 0 {
		n.Genes[rng.Intn(len(n.Genes))].Enable()
	}

	if chance(rng, b.GeneDisableProbability) && len(n.Genes) > 0 {
		n.Genes[rng.Intn(len(n.Genes))].Disable()
	}
	return nil
}
