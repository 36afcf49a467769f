package neat

import "time"

// SpeciesStats summarises one species at the end of a generation.
type SpeciesStats struct {
	Key            int
	Created        int
	Size           int
	Score          float64 // mean member score
	BestScore      float64
	Staleness      int
	MeanGenes      float64 // enabled genes per member
	MeanNodes      float64
	MeanOutputDeps float64 // genes feeding the first output per member
}

// GenerationStats summarises the population after a generation step.
type GenerationStats struct {
	RunID          string
	Generation     int
	PopulationSize int
	BestScore      float64 // champion score across all generations
	CurrentBest    float64 // best score in the current population
	MeanScore      float64
	MedianScore    float64
	WorstScore     float64
	ScoreStdev     float64 // sample standard deviation of the population scores
	Species        []SpeciesStats
	SpeciesCreated int
	WeakRemoved    int
	StaleRemoved   int
	ChampionFound  bool // the champion was replaced during this generation
	Duration       time.Duration
}

// collectSpeciesStats builds per-species statistics, including the average
// network size the way a run summary reports it.
func collectSpeciesStats(species []*Species) ([]SpeciesStats, []float64) {
	stats := make([]SpeciesStats, 0, len(species))
	var scores []float64
	for _, sp := range species {
		var genes, nodes, deps, members []float64
		for _, o := range sp.Members {
			g, n, d := o.Network.Size()
			genes = append(genes, float64(g))
			nodes = append(nodes, float64(n))
			deps = append(deps, float64(d))
			members = append(members, o.Score)
		}
		scores = append(scores, members...)
		stats = append(stats, SpeciesStats{
			Key:            sp.Key,
			Created:        sp.Created,
			Size:           len(sp.Members),
			Score:          sp.Score(),
			BestScore:      MaxFloat(members),
			Staleness:      sp.Staleness,
			MeanGenes:      Mean(genes),
			MeanNodes:      Mean(nodes),
			MeanOutputDeps: Mean(deps),
		})
	}
	return stats, scores
}
