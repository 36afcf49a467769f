package neat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// FitnessFunc scores a network. It may evaluate and reset the network as
// often as it likes but must not keep a reference to it after returning.
// With Workers > 1 it is called concurrently on different networks.
type FitnessFunc func(n *Network) float64

// Option configures a Trainer.
type Option func(*Trainer)

// WithLogger sets the logger used for species lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Trainer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRand sets the random source used for seeding, breeding and mutation.
func WithRand(rng Rand) Option {
	return func(t *Trainer) {
		if rng != nil {
			t.rng = rng
		}
	}
}

// WithReporter adds reporters called after every generation step.
func WithReporter(reporters ...Reporter) Option {
	return func(t *Trainer) {
		for _, r := range reporters {
			if r != nil {
				t.reporters = append(t.reporters, r)
			}
		}
	}
}

// Trainer evolves a population of networks divided into species.
type Trainer struct {
	Config     *Config
	Generation int
	RunID      uuid.UUID

	inputs  int
	outputs int
	fitness FitnessFunc

	species        []*Species
	nextSpeciesKey int

	champion      *Network
	championScore float64

	rng       Rand
	logger    *slog.Logger
	reporters []Reporter
	last      GenerationStats
}

func newTrainer(config *Config, inputs, outputs int, fitness FitnessFunc, opts []Option) (*Trainer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if inputs <= 0 || outputs <= 0 {
		return nil, fmt.Errorf("trainer needs at least one input and one output, got %d and %d", inputs, outputs)
	}
	if fitness == nil {
		return nil, errors.New("trainer needs a fitness function")
	}

	t := &Trainer{
		Config:        config,
		RunID:         uuid.New(),
		inputs:        inputs,
		outputs:       outputs,
		fitness:       fitness,
		championScore: math.Inf(-1),
		rng:           orGlobal(nil),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// NewTrainer seeds a population of fully connected networks and groups it
// into species. Nothing is scored until the first Step.
func NewTrainer(config *Config, inputs, outputs int, fitness FitnessFunc, opts ...Option) (*Trainer, error) {
	t, err := newTrainer(config, inputs, outputs, fitness, opts)
	if err != nil {
		return nil, err
	}
	for range t.Config.Trainer.PopulationSize {
		n := NewEmpty(inputs, outputs, t.rng)
		n.Activation = t.Config.Network.Activation
		t.speciate(NewOrganism(n))
	}
	t.logger.Debug("population seeded",
		slog.String("run_id", t.RunID.String()),
		slog.Int("population", t.Config.Trainer.PopulationSize),
		slog.Int("species", len(t.species)))
	return t, nil
}

// Species returns the current species. The slice is owned by the trainer.
func (t *Trainer) Species() []*Species {
	return t.species
}

// Len returns the number of organisms in the population.
func (t *Trainer) Len() int {
	n := 0
	for _, sp := range t.species {
		n += len(sp.Members)
	}
	return n
}

// Stats returns the summary of the last generation step.
func (t *Trainer) Stats() GenerationStats {
	return t.last
}

// BestNetwork returns the champion: the best network seen in any generation.
// It is only replaced by a strictly better score, so the returned score never
// decreases. Before the first Step it returns nil and -Inf.
func (t *Trainer) BestNetwork() (*Network, float64) {
	return t.champion, t.championScore
}

// CurrentBest returns the best scored network of the current population. Ties
// go to the first one encountered.
func (t *Trainer) CurrentBest() (*Network, float64) {
	var best *Organism
	for _, o := range t.organisms() {
		if !o.Evaluated {
			continue
		}
		if best == nil || o.Score > best.Score {
			best = o
		}
	}
	if best == nil {
		return nil, math.Inf(-1)
	}
	return best.Network, best.Score
}

// Solved reports whether the champion reached the fitness threshold and
// threshold termination is enabled.
func (t *Trainer) Solved() bool {
	return !t.Config.Trainer.NoFitnessTermination &&
		t.champion != nil &&
		t.championScore >= t.Config.Trainer.FitnessThreshold
}

// Run steps the population until generations steps have run or the problem is
// solved, and returns the champion.
func (t *Trainer) Run(ctx context.Context, generations int) (*Network, error) {
	for range generations {
		if t.Solved() {
			break
		}
		if err := t.Step(ctx); err != nil {
			return t.champion, err
		}
	}
	return t.champion, nil
}

// Step runs one generation: score, drop weak and stale species, cull, breed
// the next generation and re-speciate it. When ctx is cancelled the
// population keeps its full size and Generation is not advanced, so the step
// can be retried.
func (t *Trainer) Step(ctx context.Context) error {
	start := time.Now()
	popSize := t.Config.Trainer.PopulationSize

	if err := t.score(ctx, t.organisms()); err != nil {
		return fmt.Errorf("generation %d: scoring population: %w", t.Generation, err)
	}
	championFound := t.observeChampion()
	for _, sp := range t.species {
		sp.Invalidate()
		sp.UpdateStaleness(t.Generation)
	}

	kept, weak := filterSpecies(t.species, weakSpecies(t.species, popSize))
	t.logRemoved(weak, "weak")
	kept, stale := filterSpecies(kept, staleSpecies(kept, t.Config.Trainer.StalenessMaximum))
	t.logRemoved(stale, "stale")
	t.species = kept

	survivors := 0
	for _, sp := range t.species {
		sp.Cull(t.Config.Trainer.CullPercentage)
		survivors += len(sp.Members)
	}

	children, err := t.breed(popSize - survivors)
	if err != nil {
		return fmt.Errorf("generation %d: %w", t.Generation, err)
	}
	// Children join their species even when scoring is interrupted; the
	// unscored ones are scored at the start of the next step.
	scoreErr := t.score(ctx, children)
	created := 0
	for _, child := range children {
		if t.speciate(child) {
			created++
		}
	}
	if scoreErr != nil {
		return fmt.Errorf("generation %d: scoring children: %w", t.Generation, scoreErr)
	}
	if t.observeChampion() {
		championFound = true
	}

	t.Generation++
	t.last = t.collectStats(created, len(weak), len(stale), championFound, time.Since(start))
	for _, r := range t.reporters {
		r.Report(t.last)
	}
	return nil
}

// breed produces budget children: each species its proportional quota, the
// remainder from randomly chosen species.
func (t *Trainer) breed(budget int) ([]*Organism, error) {
	children := make([]*Organism, 0, max(budget, 0))
	if budget <= 0 || len(t.species) == 0 {
		return children, nil
	}
	for i, quota := range computeOffspringQuotas(t.species, budget) {
		for range quota {
			child, err := t.species[i].Breed(t.Config, t.rng)
			if err != nil {
				return nil, err
			}
			children = append(children, NewOrganism(child))
		}
	}
	for len(children) < budget {
		child, err := t.species[t.rng.Intn(len(t.species))].Breed(t.Config, t.rng)
		if err != nil {
			return nil, err
		}
		children = append(children, NewOrganism(child))
	}
	return children, nil
}

// speciate adds the organism to the first species whose representative is
// compatible with it, or founds a new species. It reports whether a species
// was created.
func (t *Trainer) speciate(o *Organism) bool {
	for _, sp := range t.species {
		if sp.Representative().IsCompatibleWith(o.Network, &t.Config.Compatibility) {
			sp.Add(o)
			return false
		}
	}
	sp := NewSpecies(t.nextSpeciesKey, t.Generation, o)
	t.nextSpeciesKey++
	t.species = append(t.species, sp)
	t.logger.Debug("species created", slog.Int("key", sp.Key), slog.Int("generation", t.Generation))
	return true
}

// observeChampion replaces the champion with a copy of the current best when
// it scores strictly higher.
func (t *Trainer) observeChampion() bool {
	best, score := t.CurrentBest()
	if best == nil || (t.champion != nil && score <= t.championScore) {
		return false
	}
	t.champion = best.Clone()
	t.champion.Reset()
	t.championScore = score
	return true
}

func (t *Trainer) organisms() []*Organism {
	all := make([]*Organism, 0, t.Config.Trainer.PopulationSize)
	for _, sp := range t.species {
		all = append(all, sp.Members...)
	}
	return all
}

func (t *Trainer) logRemoved(species []*Species, reason string) {
	for _, sp := range species {
		t.logger.Debug("species removed",
			slog.Int("key", sp.Key),
			slog.String("reason", reason),
			slog.Float64("score", sp.Score()),
			slog.Int("staleness", sp.Staleness))
	}
}

func (t *Trainer) collectStats(created, weak, stale int, championFound bool, d time.Duration) GenerationStats {
	species, scores := collectSpeciesStats(t.species)
	_, current := t.CurrentBest()
	return GenerationStats{
		RunID:          t.RunID.String(),
		Generation:     t.Generation,
		PopulationSize: len(scores),
		BestScore:      t.championScore,
		CurrentBest:    current,
		MeanScore:      Mean(scores),
		MedianScore:    Median(scores),
		WorstScore:     MinFloat(scores),
		ScoreStdev:     Stdev(scores),
		Species:        species,
		SpeciesCreated: created,
		WeakRemoved:    weak,
		StaleRemoved:   stale,
		ChampionFound:  championFound,
		Duration:       d,
	}
}
