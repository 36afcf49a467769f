package neat

import "math"

// UpdateStaleness records generation for the species. The tracked value
// is the second-best member score (the best when the species has a single
// member): improving on the best second-best seen so far resets the counter,
// anything else increments it. A generation is counted at most once, so a
// step retried after cancellation does not age the species twice.
func (s *Species) UpdateStaleness(generation int) {
	if s.StalenessGeneration == generation {
		return
	}
	s.StalenessGeneration = generation
	second := s.secondBestScore()
	if second > s.BestSecond {
		s.BestSecond = second
		s.Staleness = 0
		return
	}
	s.Staleness++
}

// secondBestScore returns the second highest member score without reordering
// the members.
func (s *Species) secondBestScore() float64 {
	if len(s.Members) == 0 {
		return math.Inf(-1)
	}
	first, second := math.Inf(-1), math.Inf(-1)
	for _, o := range s.Members {
		switch {
		case o.Score > first:
			first, second = o.Score, first
		case o.Score > second:
			second = o.Score
		}
	}
	if len(s.Members) == 1 {
		return first
	}
	return second
}

// IsStale reports whether the species went more than maximum generations
// without improving its second-best score.
func (s *Species) IsStale(maximum int) bool {
	return s.Staleness > maximum
}

// staleSpecies marks the species to drop for staleness. The species holding
// the best organism of the population is always spared.
func staleSpecies(species []*Species, maximum int) []bool {
	stale := make([]bool, len(species))
	holder := bestSpeciesIndex(species)
	for i, sp := range species {
		if i != holder && sp.IsStale(maximum) {
			stale[i] = true
		}
	}
	return stale
}

// bestSpeciesIndex returns the index of the species containing the highest
// scoring organism, or -1 when there is none.
func bestSpeciesIndex(species []*Species) int {
	holder := -1
	best := math.Inf(-1)
	for i, sp := range species {
		if b := sp.Best(); b != nil && (holder == -1 || b.Score > best) {
			holder, best = i, b.Score
		}
	}
	return holder
}
