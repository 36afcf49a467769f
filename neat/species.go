package neat

import (
	"fmt"
	"math"
	"sort"
)

// Organism is a network together with its memoized fitness score.
type Organism struct {
	Network   *Network
	Score     float64
	Evaluated bool // Score is only meaningful once Evaluated is set
}

// NewOrganism wraps a network that has not been scored yet.
func NewOrganism(network *Network) *Organism {
	return &Organism{Network: network}
}

// Species represents a group of mutually compatible networks. Membership is
// approximate: every member was compatible with the representative (member 0)
// when it joined.
type Species struct {
	Key        int         // Unique identifier for the species.
	Created    int         // Generation number when the species was created.
	Members    []*Organism // Ordered members; Members[0] is the representative.
	Staleness  int         // Generations without improvement of the second-best score.
	BestSecond float64     // Best second-best score seen so far.

	// StalenessGeneration is the last generation counted by UpdateStaleness,
	// -1 before the first update.
	StalenessGeneration int

	score      float64
	scoreValid bool
}

// NewSpecies creates a species with a single founding member.
func NewSpecies(key, generation int, founder *Organism) *Species {
	return &Species{
		Key:        key,
		Created:    generation,
		Members:    []*Organism{founder},
		BestSecond: math.Inf(-1),

		StalenessGeneration: -1,
	}
}

// String returns a string representation of the Species.
func (s *Species) String() string {
	return fmt.Sprintf("Species(Key: %d, Members: %d, Score: %.4f, Staleness: %d)",
		s.Key, len(s.Members), s.Score(), s.Staleness)
}

// Representative returns the network new members are compared against.
func (s *Species) Representative() *Network {
	if len(s.Members) == 0 {
		return nil
	}
	return s.Members[0].Network
}

// Add appends a member and invalidates the cached score.
func (s *Species) Add(o *Organism) {
	s.Members = append(s.Members, o)
	s.Invalidate()
}

// GetScores returns the scores of all members in member order.
func (s *Species) GetScores() []float64 {
	scores := make([]float64, 0, len(s.Members))
	for _, o := range s.Members {
		scores = append(scores, o.Score)
	}
	return scores
}

// Score returns the mean score of the members, memoized until Invalidate.
func (s *Species) Score() float64 {
	if !s.scoreValid {
		s.score = Mean(s.GetScores())
		s.scoreValid = true
	}
	return s.score
}

// Invalidate drops the memoized score.
func (s *Species) Invalidate() {
	s.scoreValid = false
}

// sortMembers orders members by descending score. The sort is stable so ties
// keep their encounter order.
func (s *Species) sortMembers() {
	sort.SliceStable(s.Members, func(i, j int) bool {
		return s.Members[i].Score > s.Members[j].Score
	})
}

// Cull keeps the best max(1, round(len*percentage)) members.
func (s *Species) Cull(percentage float64) {
	if len(s.Members) == 0 {
		return
	}
	s.sortMembers()
	keep := max(1, int(math.Round(float64(len(s.Members))*percentage)))
	if keep < len(s.Members) {
		for i := keep; i < len(s.Members); i++ {
			s.Members[i] = nil
		}
		s.Members = s.Members[:keep]
	}
	s.Invalidate()
}

// Breed produces one child network. With CrossoverProbability two members
// picked uniformly at random are crossed over, otherwise a random member is
// cloned; the child then goes through the full mutation pass.
func (s *Species) Breed(config *Config, rng Rand) (*Network, error) {
	if len(s.Members) == 0 {
		return nil, fmt.Errorf("species %d has no members to breed from", s.Key)
	}
	rng = orGlobal(rng)

	var child *Network
	if chance(rng, config.Breeding.CrossoverProbability) {
		a := s.Members[rng.Intn(len(s.Members))]
		b := s.Members[rng.Intn(len(s.Members))]
		var err error
		child, err = a.Network.Crossover(b.Network, a.Score > b.Score, &config.Gene, rng)
		if err != nil {
			return nil, fmt.Errorf("species %d: %w", s.Key, err)
		}
	} else {
		child = s.Members[rng.Intn(len(s.Members))].Network.Clone()
		child.Reset()
	}

	if err := child.Mutate(config, rng); err != nil {
		return nil, fmt.Errorf("species %d: %w", s.Key, err)
	}
	return child, nil
}

// Best returns the member with the highest score. Ties are broken by member
// order.
func (s *Species) Best() *Organism {
	var best *Organism
	for _, o := range s.Members {
		if best == nil || o.Score > best.Score {
			best = o
		}
	}
	return best
}
