package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	champions   map[string]ChampionRecord
	runs        map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.champions = make(map[string]ChampionRecord)
	s.runs = make(map[string][]string)
	return nil
}

func (s *MemoryStore) SaveChampion(_ context.Context, record ChampionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("memory store is not initialized")
	}
	if _, ok := s.champions[record.ID]; !ok {
		s.runs[record.RunID] = append(s.runs[record.RunID], record.ID)
	}
	record.Genome = append([]byte(nil), record.Genome...)
	s.champions[record.ID] = record
	return nil
}

func (s *MemoryStore) GetChampion(_ context.Context, id string) (ChampionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.champions[id]
	return record, ok, nil
}

func (s *MemoryStore) ListChampions(_ context.Context, runID string) ([]ChampionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]ChampionRecord, 0, len(s.runs[runID]))
	for _, id := range s.runs[runID] {
		records = append(records, s.champions[id])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Generation < records[j].Generation
	})
	return records, nil
}

func (s *MemoryStore) BestChampion(ctx context.Context, runID string) (ChampionRecord, bool, error) {
	records, err := s.ListChampions(ctx, runID)
	if err != nil || len(records) == 0 {
		return ChampionRecord{}, false, err
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true, nil
}
