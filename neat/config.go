package neat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters for the NEAT engine.
type Config struct {
	Trainer       TrainerConfig       `yaml:"trainer"`
	Breeding      BreedingConfig      `yaml:"breeding"`
	Gene          GeneConfig          `yaml:"gene"`
	Compatibility CompatibilityConfig `yaml:"compatibility"`
	Network       NetworkConfig       `yaml:"network"`
}

// TrainerConfig holds the population manager parameters.
type TrainerConfig struct {
	PopulationSize       int     `ini:"population_size" yaml:"population_size"`
	CullPercentage       float64 `ini:"cull_percentage" yaml:"cull_percentage"`
	StalenessMaximum     int     `ini:"staleness_maximum" yaml:"staleness_maximum"`
	Workers              int     `ini:"workers" yaml:"workers"` // <= 1 scores serially
	FitnessThreshold     float64 `ini:"fitness_threshold" yaml:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination" yaml:"no_fitness_termination"`
}

// BreedingConfig holds the probabilities used when a species breeds a child.
// Every gate is sampled independently.
type BreedingConfig struct {
	CrossoverProbability   float64 `ini:"crossover_probability" yaml:"crossover_probability"`
	AddGeneProbability     float64 `ini:"add_gene_probability" yaml:"add_gene_probability"`
	AddNodeProbability     float64 `ini:"add_node_probability" yaml:"add_node_probability"`
	MutateGeneProbability  float64 `ini:"mutate_gene_probability" yaml:"mutate_gene_probability"`
	GeneEnableProbability  float64 `ini:"gene_enable_probability" yaml:"gene_enable_probability"`
	GeneDisableProbability float64 `ini:"gene_disable_probability" yaml:"gene_disable_probability"`
}

// GeneConfig holds the parameters of weight mutation and crossover merging.
type GeneConfig struct {
	WeightResetRate   float64 `ini:"weight_reset_rate" yaml:"weight_reset_rate"`
	WeightMutatePower float64 `ini:"weight_mutate_power" yaml:"weight_mutate_power"`
	WeightMergeRate   float64 `ini:"weight_merge_rate" yaml:"weight_merge_rate"`
}

// CompatibilityConfig holds the speciation distance coefficients.
type CompatibilityConfig struct {
	DisjointCoefficient float64 `ini:"disjoint_coefficient" yaml:"disjoint_coefficient"`
	WeightCoefficient   float64 `ini:"weight_coefficient" yaml:"weight_coefficient"`
	Threshold           float64 `ini:"threshold" yaml:"threshold"`
}

// NetworkConfig holds the phenotype parameters given to new networks.
type NetworkConfig struct {
	Activation string `ini:"activation" yaml:"activation"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Trainer: TrainerConfig{
			PopulationSize:       150,
			CullPercentage:       0.5,
			StalenessMaximum:     15,
			Workers:              1,
			NoFitnessTermination: true,
		},
		Breeding: BreedingConfig{
			CrossoverProbability:   0.25,
			AddGeneProbability:     0.3,
			AddNodeProbability:     0.05,
			MutateGeneProbability:  0.8,
			GeneEnableProbability:  0.05,
			GeneDisableProbability: 0.02,
		},
		Gene: GeneConfig{
			WeightResetRate:   0.1,
			WeightMutatePower: 0.1,
			WeightMergeRate:   0.5,
		},
		Compatibility: CompatibilityConfig{
			DisjointCoefficient: 1.0,
			WeightCoefficient:   0.4,
			Threshold:           3.0,
		},
		Network: NetworkConfig{
			Activation: ActivationReLU,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file, or from a YAML
// file when the path ends in .yaml or .yml. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	var (
		config *Config
		err    error
	)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		config, err = loadYAMLConfig(filePath)
	default:
		config, err = loadINIConfig(filePath)
	}
	if err != nil {
		return nil, err
	}

	config.Network.Activation = cleanIniString(config.Network.Activation)
	if config.Network.Activation == "" {
		config.Network.Activation = ActivationReLU
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadINIConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()
	sections := []struct {
		name   string
		target any
	}{
		{"Trainer", &config.Trainer},
		{"Breeding", &config.Breeding},
		{"Gene", &config.Gene},
		{"Compatibility", &config.Compatibility},
		{"Network", &config.Network},
	}
	for _, s := range sections {
		if !cfg.HasSection(s.name) {
			continue
		}
		if err := cfg.Section(s.name).MapTo(s.target); err != nil {
			return nil, fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}
	return config, nil
}

func loadYAMLConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config file '%s': %w", filePath, err)
	}
	return config, nil
}

// Validate checks that every parameter is within its legal range.
func (c *Config) Validate() error {
	if c.Trainer.PopulationSize <= 0 {
		return fmt.Errorf("config error: population_size must be positive")
	}
	if c.Trainer.CullPercentage < 0 || c.Trainer.CullPercentage > 1 {
		return fmt.Errorf("config error: cull_percentage must be between 0 and 1")
	}
	if c.Trainer.StalenessMaximum < 0 {
		return fmt.Errorf("config error: staleness_maximum cannot be negative")
	}

	probabilities := []struct {
		name  string
		value float64
	}{
		{"crossover_probability", c.Breeding.CrossoverProbability},
		{"add_gene_probability", c.Breeding.AddGeneProbability},
		{"add_node_probability", c.Breeding.AddNodeProbability},
		{"mutate_gene_probability", c.Breeding.MutateGeneProbability},
		{"gene_enable_probability", c.Breeding.GeneEnableProbability},
		{"gene_disable_probability", c.Breeding.GeneDisableProbability},
		{"weight_reset_rate", c.Gene.WeightResetRate},
		{"weight_merge_rate", c.Gene.WeightMergeRate},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("config error: %s must be between 0 and 1", p.name)
		}
	}

	if c.Gene.WeightMutatePower < 0 {
		return fmt.Errorf("config error: weight_mutate_power cannot be negative")
	}
	if c.Compatibility.DisjointCoefficient < 0 {
		return fmt.Errorf("config error: disjoint_coefficient cannot be negative")
	}
	if c.Compatibility.WeightCoefficient < 0 {
		return fmt.Errorf("config error: weight_coefficient cannot be negative")
	}
	if c.Compatibility.Threshold <= 0 {
		return fmt.Errorf("config error: compatibility threshold must be positive")
	}
	if _, err := GetActivation(c.Network.Activation); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
