package neat

import (
	"encoding/json"
	"fmt"
	"io"
)

// genomeDescription is the textual form of a network. Runtime node state is
// not part of it; only the node count is kept.
type genomeDescription struct {
	Inputs     int    `json:"inputs"`
	Outputs    []int  `json:"outputs"`
	Nodes      int    `json:"nodes"`
	Activation string `json:"activation,omitempty"`
	Genes      []Gene `json:"genes"`
}

// Export writes the genome of n as indented JSON.
func (n *Network) Export(w io.Writer) error {
	desc := genomeDescription{
		Inputs:     n.Inputs,
		Outputs:    n.Outputs,
		Nodes:      len(n.Nodes),
		Activation: n.Activation,
		Genes:      n.Genes,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("failed to encode genome: %w", err)
	}
	return nil
}

// Import reads a genome written by Export and rebuilds a network with fresh
// runtime state.
func Import(r io.Reader) (*Network, error) {
	var desc genomeDescription
	if err := json.NewDecoder(r).Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode genome: %w", err)
	}
	if err := desc.validate(); err != nil {
		return nil, err
	}
	if desc.Activation == "" {
		desc.Activation = ActivationReLU
	}
	if _, err := GetActivation(desc.Activation); err != nil {
		return nil, err
	}

	n := &Network{
		Genes:      desc.Genes,
		Nodes:      make([]Node, desc.Nodes),
		Inputs:     desc.Inputs,
		Outputs:    desc.Outputs,
		Activation: desc.Activation,
	}
	if n.Genes == nil {
		n.Genes = []Gene{}
	}
	return n, nil
}

func (d *genomeDescription) validate() error {
	if d.Inputs < 0 {
		return fmt.Errorf("%w: negative input count %d", ErrInvalidGenome, d.Inputs)
	}
	if d.Nodes < d.Inputs+len(d.Outputs) {
		return fmt.Errorf("%w: %d nodes cannot hold %d inputs and %d outputs",
			ErrInvalidGenome, d.Nodes, d.Inputs, len(d.Outputs))
	}
	for i, id := range d.Outputs {
		if id != d.Inputs+i {
			return fmt.Errorf("%w: output %d has id %d, want %d", ErrInvalidGenome, i, id, d.Inputs+i)
		}
	}
	seen := make(map[Link]bool, len(d.Genes))
	for i, g := range d.Genes {
		if g.Link.Src < 0 || g.Link.Src >= d.Nodes || g.Link.Dest < 0 || g.Link.Dest >= d.Nodes {
			return fmt.Errorf("%w: gene %d links missing node (%s)", ErrInvalidGenome, i, g.Link)
		}
		if seen[g.Link] {
			return fmt.Errorf("%w: duplicate gene for link %s", ErrInvalidGenome, g.Link)
		}
		seen[g.Link] = true
	}
	return nil
}
