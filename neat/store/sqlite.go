package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveChampion(ctx context.Context, record ChampionRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO champions (id, run_id, generation, score, genome, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			generation = excluded.generation,
			score = excluded.score,
			genome = excluded.genome,
			created_at = excluded.created_at
	`, record.ID, record.RunID, record.Generation, record.Score, record.Genome, record.CreatedAt.UnixNano())
	return err
}

func (s *SQLiteStore) GetChampion(ctx context.Context, id string) (ChampionRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return ChampionRecord{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, run_id, generation, score, genome, created_at FROM champions WHERE id = ?
	`, id)
	record, err := scanChampion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ChampionRecord{}, false, nil
		}
		return ChampionRecord{}, false, err
	}
	return record, true, nil
}

func (s *SQLiteStore) ListChampions(ctx context.Context, runID string) ([]ChampionRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, run_id, generation, score, genome, created_at FROM champions
		WHERE run_id = ? ORDER BY generation ASC, created_at ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []ChampionRecord{}
	for rows.Next() {
		record, err := scanChampion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) BestChampion(ctx context.Context, runID string) (ChampionRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return ChampionRecord{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, run_id, generation, score, genome, created_at FROM champions
		WHERE run_id = ? ORDER BY score DESC, generation ASC LIMIT 1
	`, runID)
	record, err := scanChampion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ChampionRecord{}, false, nil
		}
		return ChampionRecord{}, false, err
	}
	return record, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChampion(row scanner) (ChampionRecord, error) {
	var (
		record    ChampionRecord
		createdAt int64
	)
	if err := row.Scan(&record.ID, &record.RunID, &record.Generation, &record.Score, &record.Genome, &createdAt); err != nil {
		return ChampionRecord{}, err
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	return record, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS champions (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			score REAL NOT NULL,
			genome BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS champions_run ON champions (run_id, generation);
	`)
	if err != nil {
		return fmt.Errorf("create champion tables: %w", err)
	}
	return nil
}
