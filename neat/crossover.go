package neat

import "fmt"

// Crossover produces a child from this network and other. The child starts as
// a copy of the fitter parent; every gene that also exists in the other parent
// may take over that parent's weight (see Gene.Merge). Nodes are inherited
// from the fitter parent only. Neither parent is modified.
func (n *Network) Crossover(other *Network, selfIsFitter bool, config *GeneConfig, rng Rand) (*Network, error) {
	if n.Inputs != other.Inputs || len(n.Outputs) != len(other.Outputs) {
		return nil, fmt.Errorf("crossover %d/%d with %d/%d: %w",
			n.Inputs, len(n.Outputs), other.Inputs, len(other.Outputs), ErrIOSizeMismatch)
	}

	fitter, weaker := n, other
	if !selfIsFitter {
		fitter, weaker = other, n
	}

	child := fitter.Clone()
	for i := range child.Genes {
		if j, ok := weaker.GeneIndex(child.Genes[i].Link); ok {
			child.Genes[i].Merge(weaker.Genes[j], config, rng)
		}
	}
	child.Reset()
	return child, nil
}
