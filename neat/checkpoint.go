package neat

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/google/uuid"
)

// trainerSaveData holds the parts of a Trainer needed to resume a run. The
// config, fitness function and options are supplied again on load.
type trainerSaveData struct {
	RunID          uuid.UUID
	Generation     int
	Inputs         int
	Outputs        int
	Species        []*Species
	NextSpeciesKey int
	Champion       *Network
	ChampionScore  float64
}

// WriteCheckpoint writes the trainer state to w as gzip-compressed gob.
func (t *Trainer) WriteCheckpoint(w io.Writer) error {
	gz := gzip.NewWriter(w)
	data := trainerSaveData{
		RunID:          t.RunID,
		Generation:     t.Generation,
		Inputs:         t.inputs,
		Outputs:        t.outputs,
		Species:        t.species,
		NextSpeciesKey: t.nextSpeciesKey,
		Champion:       t.champion,
		ChampionScore:  t.championScore,
	}
	if err := gob.NewEncoder(gz).Encode(data); err != nil {
		_ = gz.Close()
		return fmt.Errorf("failed to encode trainer state: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	return nil
}

// SaveCheckpoint saves the trainer state to a file.
func (t *Trainer) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	if err := t.WriteCheckpoint(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint file '%s': %w", filePath, err)
	}
	t.logger.Debug("checkpoint saved", slog.String("path", filePath), slog.Int("generation", t.Generation))
	return nil
}

// ReadCheckpoint restores a trainer from a checkpoint stream written by
// WriteCheckpoint.
func ReadCheckpoint(r io.Reader, config *Config, fitness FitnessFunc, opts ...Option) (*Trainer, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gz.Close()

	var data trainerSaveData
	if err := gob.NewDecoder(gz).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trainer state from checkpoint: %w", err)
	}

	t, err := newTrainer(config, data.Inputs, data.Outputs, fitness, opts)
	if err != nil {
		return nil, err
	}
	t.RunID = data.RunID
	t.Generation = data.Generation
	t.species = data.Species
	t.nextSpeciesKey = data.NextSpeciesKey
	t.champion = data.Champion
	t.championScore = data.ChampionScore
	if t.champion == nil {
		t.championScore = math.Inf(-1)
	}
	for _, sp := range t.species {
		for _, o := range sp.Members {
			if len(o.Network.Nodes) == 0 {
				return nil, fmt.Errorf("checkpoint species %d holds a network without nodes", sp.Key)
			}
		}
	}
	return t, nil
}

// LoadCheckpoint restores a trainer from a checkpoint file.
func LoadCheckpoint(filePath string, config *Config, fitness FitnessFunc, opts ...Option) (*Trainer, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	t, err := ReadCheckpoint(file, config, fitness, opts...)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("checkpoint loaded", slog.String("path", filePath), slog.Int("generation", t.Generation))
	return t, nil
}
