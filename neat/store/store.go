// Package store persists champion networks of training runs.
package store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baldhumanity/neatwork/neat"
)

// ChampionRecord is one champion of a run, stored with its exported genome.
type ChampionRecord struct {
	ID         string
	RunID      string
	Generation int
	Score      float64
	Genome     []byte
	CreatedAt  time.Time
}

// NewChampionRecord exports network into a record with a fresh id.
func NewChampionRecord(runID string, generation int, score float64, network *neat.Network) (ChampionRecord, error) {
	var buf bytes.Buffer
	if err := network.Export(&buf); err != nil {
		return ChampionRecord{}, err
	}
	return ChampionRecord{
		ID:         uuid.NewString(),
		RunID:      runID,
		Generation: generation,
		Score:      score,
		Genome:     buf.Bytes(),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Network rebuilds the stored network.
func (r ChampionRecord) Network() (*neat.Network, error) {
	n, err := neat.Import(bytes.NewReader(r.Genome))
	if err != nil {
		return nil, fmt.Errorf("decode champion %s: %w", r.ID, err)
	}
	return n, nil
}

type Store interface {
	Init(ctx context.Context) error
	SaveChampion(ctx context.Context, record ChampionRecord) error
	GetChampion(ctx context.Context, id string) (ChampionRecord, bool, error)
	// ListChampions returns the champions of a run ordered by generation.
	ListChampions(ctx context.Context, runID string) ([]ChampionRecord, error)
	// BestChampion returns the highest scoring champion of a run.
	BestChampion(ctx context.Context, runID string) (ChampionRecord, bool, error)
}

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
