package neat

import "math"

// speciesShares returns the fraction of the population each species is
// entitled to. Scores below zero count as zero; when nothing scores above
// zero every species gets an equal share.
func speciesShares(species []*Species) []float64 {
	shares := make([]float64, len(species))
	if len(species) == 0 {
		return shares
	}
	total := 0.0
	for _, sp := range species {
		total += math.Max(0, sp.Score())
	}
	for i, sp := range species {
		if total <= 0 {
			shares[i] = 1 / float64(len(species))
			continue
		}
		shares[i] = math.Max(0, sp.Score()) / total
	}
	return shares
}

// weakSpecies marks the species whose share of popSize rounds below one
// individual. At least one species, the one with the largest share, always
// survives.
func weakSpecies(species []*Species, popSize int) []bool {
	weak := make([]bool, len(species))
	shares := speciesShares(species)
	strongest := -1
	survivors := 0
	for i, share := range shares {
		if strongest == -1 || share > shares[strongest] {
			strongest = i
		}
		if math.Round(share*float64(popSize)) < 1 {
			weak[i] = true
		} else {
			survivors++
		}
	}
	if survivors == 0 && strongest >= 0 {
		weak[strongest] = false
	}
	return weak
}

// computeOffspringQuotas splits budget children between the species in
// proportion to their shares. The quotas never add up to more than budget;
// any shortfall is left to the caller to top up.
func computeOffspringQuotas(species []*Species, budget int) []int {
	quotas := make([]int, len(species))
	if budget <= 0 {
		return quotas
	}
	total := 0
	for i, share := range speciesShares(species) {
		quotas[i] = max(0, int(math.Round(share*float64(budget))))
		total += quotas[i]
	}
	for total > budget {
		largest := 0
		for i := range quotas {
			if quotas[i] > quotas[largest] {
				largest = i
			}
		}
		quotas[largest]--
		total--
	}
	return quotas
}

// filterSpecies returns the species whose drop flag is not set, and the ones
// that were dropped.
func filterSpecies(species []*Species, drop []bool) (kept, dropped []*Species) {
	for i, sp := range species {
		if drop[i] {
			dropped = append(dropped, sp)
			continue
		}
		kept = append(kept, sp)
	}
	return kept, dropped
}
