package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/baldhumanity/neatwork/neat"
)

// ChampionSource is the part of a trainer the Recorder reads from.
type ChampionSource interface {
	BestNetwork() (*neat.Network, float64)
}

// Recorder is a neat.Reporter that saves every new champion to a Store.
type Recorder struct {
	ctx    context.Context
	store  Store
	source ChampionSource
	logger *slog.Logger

	mu  sync.Mutex
	err error
}

// NewRecorder returns a recorder saving the champions of source into store.
func NewRecorder(ctx context.Context, store Store, source ChampionSource, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{ctx: ctx, store: store, source: source, logger: logger}
}

// Report implements neat.Reporter.
func (r *Recorder) Report(stats neat.GenerationStats) {
	if !stats.ChampionFound {
		return
	}
	network, score := r.source.BestNetwork()
	if network == nil {
		return
	}
	record, err := NewChampionRecord(stats.RunID, stats.Generation, score, network)
	if err == nil {
		err = r.store.SaveChampion(r.ctx, record)
	}
	if err != nil {
		r.logger.Error("failed to record champion", slog.Int("generation", stats.Generation), slog.Any("error", err))
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		return
	}
	r.logger.Debug("champion recorded", slog.String("id", record.ID), slog.Float64("score", score))
}

// Err returns the last error hit while saving a champion.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
