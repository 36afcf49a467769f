package neat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 150, config.Trainer.PopulationSize)
	assert.Equal(t, 3.0, config.Compatibility.Threshold)
	assert.Equal(t, ActivationReLU, config.Network.Activation)
}

func TestLoadINIConfig(t *testing.T) {
	path := writeConfig(t, "trainer.ini", `
[Trainer]
population_size   = 40
cull_percentage   = 0.25
staleness_maximum = 5
workers           = 4
fitness_threshold = 15.5
no_fitness_termination = false

[Breeding]
crossover_probability = 0.5
gene_disable_probability = 0

[Network]
activation = steep_sigmoid ; inline comment
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 40, config.Trainer.PopulationSize)
	assert.Equal(t, 0.25, config.Trainer.CullPercentage)
	assert.Equal(t, 5, config.Trainer.StalenessMaximum)
	assert.Equal(t, 4, config.Trainer.Workers)
	assert.Equal(t, 15.5, config.Trainer.FitnessThreshold)
	assert.False(t, config.Trainer.NoFitnessTermination)
	assert.Equal(t, 0.5, config.Breeding.CrossoverProbability)
	assert.Equal(t, 0.0, config.Breeding.GeneDisableProbability)
	assert.Equal(t, ActivationSteepSigmoid, config.Network.Activation)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Breeding.AddGeneProbability, config.Breeding.AddGeneProbability)
	assert.Equal(t, defaults.Gene, config.Gene)
	assert.Equal(t, defaults.Compatibility, config.Compatibility)
}

func TestLoadYAMLConfig(t *testing.T) {
	path := writeConfig(t, "trainer.yaml", `
trainer:
  population_size: 60
  staleness_maximum: 8
gene:
  weight_mutate_power: 0.5
compatibility:
  threshold: 2.5
network:
  activation: tanh
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60, config.Trainer.PopulationSize)
	assert.Equal(t, 8, config.Trainer.StalenessMaximum)
	assert.Equal(t, 0.5, config.Gene.WeightMutatePower)
	assert.Equal(t, 2.5, config.Compatibility.Threshold)
	assert.Equal(t, ActivationTanh, config.Network.Activation)
	assert.Equal(t, DefaultConfig().Trainer.CullPercentage, config.Trainer.CullPercentage)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"probability above one", "[Breeding]\nadd_node_probability = 1.5\n"},
		{"empty population", "[Trainer]\npopulation_size = 0\n"},
		{"negative coefficient", "[Compatibility]\nweight_coefficient = -1\n"},
		{"unknown activation", "[Network]\nactivation = softmax\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "bad.ini", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(writeConfig(t, "bad.ini", "[Network]\nactivation = softmax\n"))
	assert.True(t, errors.Is(err, ErrUnknownActivation))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestCleanIniString(t *testing.T) {
	assert.Equal(t, "relu", cleanIniString("  relu # default "))
	assert.Equal(t, "tanh", cleanIniString("tanh;"))
	assert.Equal(t, "", cleanIniString("  "))
}
