package neat

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumFitness rewards networks whose output for a fixed input is large.
func sumFitness(n *Network) float64 {
	out, err := n.Evaluate([]float64{0.5, -0.25, 1})
	if err != nil {
		return 0
	}
	return out[0]
}

func TestNewTrainerValidation(t *testing.T) {
	_, err := NewTrainer(DefaultConfig(), 3, 1, nil)
	assert.Error(t, err)

	_, err = NewTrainer(DefaultConfig(), 0, 1, sumFitness)
	assert.Error(t, err)

	config := DefaultConfig()
	config.Trainer.PopulationSize = 0
	_, err = NewTrainer(config, 3, 1, sumFitness)
	assert.Error(t, err)
}

func TestNewTrainerSeedsPopulation(t *testing.T) {
	trainer, err := NewTrainer(DefaultConfig(), 3, 1, sumFitness, WithRand(newRand(1)))
	require.NoError(t, err)

	assert.Equal(t, 150, trainer.Len())
	require.Len(t, trainer.Species(), 1, "fresh networks of one shape are all compatible")
	assert.Equal(t, 0, trainer.Generation)

	best, score := trainer.BestNetwork()
	assert.Nil(t, best)
	assert.True(t, math.IsInf(score, -1))
	for _, o := range trainer.Species()[0].Members {
		assert.False(t, o.Evaluated)
		assert.Equal(t, ActivationReLU, o.Network.Activation)
	}
}

func TestStepKeepsPopulationSize(t *testing.T) {
	config := DefaultConfig()
	config.Trainer.PopulationSize = 50
	trainer, err := NewTrainer(config, 3, 1, sumFitness, WithRand(newRand(2)))
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, trainer.Step(context.Background()))
		assert.Equal(t, 50, trainer.Len())
		assert.Equal(t, i, trainer.Generation)
		for _, sp := range trainer.Species() {
			assert.NotEmpty(t, sp.Members)
			for _, o := range sp.Members {
				assert.True(t, o.Evaluated)
			}
		}
	}
}

func TestChampionNeverRegresses(t *testing.T) {
	var scores []float64
	reporter := ReporterFunc(func(stats GenerationStats) {
		scores = append(scores, stats.BestScore)
	})
	trainer, err := NewTrainer(DefaultConfig(), 3, 1, sumFitness,
		WithRand(newRand(3)), WithReporter(reporter))
	require.NoError(t, err)

	const generations = 15
	for range generations {
		require.NoError(t, trainer.Step(context.Background()))
		_, best := trainer.BestNetwork()
		_, current := trainer.CurrentBest()
		assert.GreaterOrEqual(t, best, current)
	}

	require.Len(t, scores, generations)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i], scores[i-1], "generation %d", i)
	}

	best, score := trainer.BestNetwork()
	require.NotNil(t, best)
	assert.Equal(t, score, sumFitness(best.Clone()))
}

func TestParallelScoringScoresEachNetworkOnce(t *testing.T) {
	var (
		mu    sync.Mutex
		calls = make(map[*Network]int)
	)
	fitness := func(n *Network) float64 {
		mu.Lock()
		calls[n]++
		mu.Unlock()
		return sumFitness(n)
	}

	config := DefaultConfig()
	config.Trainer.PopulationSize = 60
	config.Trainer.Workers = 4
	trainer, err := NewTrainer(config, 3, 1, fitness, WithRand(newRand(4)))
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, trainer.Step(context.Background()))
	}
	assert.GreaterOrEqual(t, len(calls), 60)
	for n, c := range calls {
		assert.Equal(t, 1, c, "network %p scored more than once", n)
	}
}

func TestRunStopsAtFitnessThreshold(t *testing.T) {
	config := DefaultConfig()
	config.Trainer.PopulationSize = 20
	config.Trainer.FitnessThreshold = 5
	config.Trainer.NoFitnessTermination = false
	trainer, err := NewTrainer(config, 2, 1, func(*Network) float64 { return 10 }, WithRand(newRand(5)))
	require.NoError(t, err)

	champion, err := trainer.Run(context.Background(), 50)
	require.NoError(t, err)
	require.NotNil(t, champion)
	assert.Equal(t, 1, trainer.Generation)
	assert.True(t, trainer.Solved())
}

func TestRunWithoutTermination(t *testing.T) {
	config := DefaultConfig()
	config.Trainer.PopulationSize = 20
	config.Trainer.FitnessThreshold = 5
	trainer, err := NewTrainer(config, 2, 1, func(*Network) float64 { return 10 }, WithRand(newRand(5)))
	require.NoError(t, err)

	_, err = trainer.Run(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, trainer.Generation)
	assert.False(t, trainer.Solved())
}

func TestStepHonoursCancellation(t *testing.T) {
	for _, workers := range []int{1, 4} {
		config := DefaultConfig()
		config.Trainer.PopulationSize = 20
		config.Trainer.Workers = workers
		trainer, err := NewTrainer(config, 2, 1, sumFitness, WithRand(newRand(6)))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = trainer.Step(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled), "workers=%d: %v", workers, err)
		assert.Equal(t, 0, trainer.Generation)
	}
}

func TestStatsAfterStep(t *testing.T) {
	config := DefaultConfig()
	config.Trainer.PopulationSize = 30
	trainer, err := NewTrainer(config, 3, 1, sumFitness, WithRand(newRand(7)))
	require.NoError(t, err)
	require.NoError(t, trainer.Step(context.Background()))

	stats := trainer.Stats()
	assert.Equal(t, trainer.RunID.String(), stats.RunID)
	assert.Equal(t, 1, stats.Generation)
	assert.Equal(t, 30, stats.PopulationSize)
	assert.True(t, stats.ChampionFound)
	assert.Len(t, stats.Species, len(trainer.Species()))

	size := 0
	var scores []float64
	for _, sp := range trainer.Species() {
		for _, o := range sp.Members {
			scores = append(scores, o.Score)
		}
	}
	for _, sp := range stats.Species {
		size += sp.Size
		assert.GreaterOrEqual(t, sp.MeanNodes, 4.0)
		assert.LessOrEqual(t, sp.Score, sp.BestScore)
		assert.LessOrEqual(t, sp.BestScore, stats.CurrentBest)
	}
	assert.Equal(t, 30, size)
	assert.LessOrEqual(t, stats.MeanScore, stats.CurrentBest)
	assert.LessOrEqual(t, stats.WorstScore, stats.MedianScore)
	assert.LessOrEqual(t, stats.MedianScore, stats.CurrentBest)
	assert.Equal(t, MinFloat(scores), stats.WorstScore)
	assert.Equal(t, Median(scores), stats.MedianScore)
	assert.InDelta(t, Stdev(scores), stats.ScoreStdev, 1e-12)
}

func TestStepCancelledWhileScoringChildrenKeepsPopulation(t *testing.T) {
	config := DefaultConfig()
	config.Trainer.PopulationSize = 20
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first 20 calls score the seed population, the rest score children.
	calls := 0
	fitness := func(*Network) float64 {
		calls++
		if calls == 25 {
			cancel()
		}
		return 1
	}
	trainer, err := NewTrainer(config, 2, 1, fitness, WithRand(newRand(9)))
	require.NoError(t, err)

	err = trainer.Step(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "scoring children")
	assert.Equal(t, 20, trainer.Len(), "bred children stay in the population")
	assert.Equal(t, 0, trainer.Generation)

	staleness := make(map[int]int)
	for _, sp := range trainer.Species() {
		staleness[sp.Key] = sp.Staleness
	}

	require.NoError(t, trainer.Step(context.Background()))
	assert.Equal(t, 1, trainer.Generation)
	assert.Equal(t, 20, trainer.Len())
	for _, sp := range trainer.Species() {
		if before, ok := staleness[sp.Key]; ok {
			assert.Equal(t, before, sp.Staleness, "species %d aged twice for generation 0", sp.Key)
		}
		for _, o := range sp.Members {
			assert.True(t, o.Evaluated)
		}
	}

	require.NoError(t, trainer.Step(context.Background()))
	var founder *Species
	for _, sp := range trainer.Species() {
		if sp.Key == 0 {
			founder = sp
		}
	}
	require.NotNil(t, founder)
	assert.Equal(t, 1, founder.Staleness, "flat scores age the founder species once per generation")
	assert.Equal(t, 1, founder.StalenessGeneration)
}

func repeatScore(score float64, n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = score
	}
	return scores
}

func TestStepRemovesWeakAndStaleSpecies(t *testing.T) {
	config := DefaultConfig()
	config.Trainer.PopulationSize = 20
	config.Trainer.StalenessMaximum = 2
	trainer, err := NewTrainer(config, 2, 1, func(*Network) float64 { return 0 }, WithRand(newRand(10)))
	require.NoError(t, err)

	// Both strong species have gone flat; only the one holding the best
	// organism may survive it. The third is too weak for a single child.
	holder := scoredSpecies(100, repeatScore(10, 8)...)
	stale := scoredSpecies(101, repeatScore(8, 8)...)
	weak := scoredSpecies(102, repeatScore(0.01, 4)...)
	for _, sp := range []*Species{holder, stale} {
		sp.BestSecond = 50
		sp.Staleness = 5
	}
	trainer.species = []*Species{holder, stale, weak}
	trainer.nextSpeciesKey = 103

	require.NoError(t, trainer.Step(context.Background()))

	keys := make(map[int]bool)
	for _, sp := range trainer.Species() {
		keys[sp.Key] = true
	}
	assert.True(t, keys[100], "the species holding the best organism is spared")
	assert.False(t, keys[101], "stale species removed")
	assert.False(t, keys[102], "weak species removed")
	assert.True(t, holder.IsStale(config.Trainer.StalenessMaximum))
	assert.Equal(t, 20, trainer.Len())

	stats := trainer.Stats()
	assert.Equal(t, 1, stats.WeakRemoved)
	assert.Equal(t, 1, stats.StaleRemoved)
}
