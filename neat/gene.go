package neat

import "fmt"

// Link identifies a connection by its endpoints. Two genes describe the same
// connection exactly when their links are equal.
type Link struct {
	Src  int `json:"src"`
	Dest int `json:"dest"`
}

// String returns a string representation of the Link.
func (l Link) String() string {
	return fmt.Sprintf("%d->%d", l.Src, l.Dest)
}

// Gene is a directed, weighted and possibly disabled link between two nodes.
// Weight and Disabled are payload; identity is the Link alone.
type Gene struct {
	Disabled bool    `json:"disabled"`
	Weight   float64 `json:"weight"`
	Link     Link    `json:"link"`
}

// NewGene creates a gene with an explicit weight.
func NewGene(src, dest int, disabled bool, weight float64) Gene {
	return Gene{
		Disabled: disabled,
		Weight:   weight,
		Link:     Link{Src: src, Dest: dest},
	}
}

// RandomGene creates a gene whose weight is drawn uniformly from [-1, 1].
func RandomGene(src, dest int, disabled bool, rng Rand) Gene {
	return NewGene(src, dest, disabled, uniformWeight(rng))
}

// String returns a string representation of the Gene.
func (g Gene) String() string {
	return fmt.Sprintf("Gene(%s, Weight: %.3f, Disabled: %t)", g.Link, g.Weight, g.Disabled)
}

// Equal reports whether both genes describe the same link.
func (g Gene) Equal(other Gene) bool {
	return g.Link == other.Link
}

// Mutate either replaces the weight with a fresh draw (WeightResetRate) or
// perturbs it by a uniform step scaled by WeightMutatePower.
func (g *Gene) Mutate(config *GeneConfig, rng Rand) {
	if chance(rng, config.WeightResetRate) {
		g.Weight = uniformWeight(rng)
		return
	}
	g.Weight += uniformWeight(rng) * config.WeightMutatePower
}

// Merge takes over the weight of the homologous gene from the other parent
// with probability WeightMergeRate, provided that gene is enabled.
func (g *Gene) Merge(other Gene, config *GeneConfig, rng Rand) {
	if other.Disabled {
		return
	}
	if chance(rng, config.WeightMergeRate) {
		g.Weight = other.Weight
	}
}

// Disable retires the gene without removing it from the genome.
func (g *Gene) Disable() {
	g.Disabled = true
}

// Enable re-activates the gene.
func (g *Gene) Enable() {
	g.Disabled = false
}

// Evaluate applies the gene's weight to a value travelling along the link.
func (g Gene) Evaluate(input float64) float64 {
	return input * g.Weight
}
