// Package config loads the settings of the maplabel command from a YAML file and
// MAPLABEL_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bmharper/maplabel"
)

// Config is the file layout. Zero fields keep their defaults.
type Config struct {
	Algorithm string  `yaml:"algorithm"` // greedy, advanced, grasp or genetic
	Index     string  `yaml:"index"`     // packed or rtree
	Rounds    int     `yaml:"rounds"`    // local search rounds of grasp
	Weights   Weights `yaml:"weights"`
	Genetic   Genetic `yaml:"genetic"`
	Font      Font    `yaml:"font"`

	// Bounds is minx, miny, maxx, maxy. Empty means the extent of the input points.
	Bounds []float64 `yaml:"bounds"`
	// Margin grows computed bounds on every side.
	Margin float64 `yaml:"margin"`
}

type Weights struct {
	PositionBias []float64 `yaml:"position_bias"` // eight values in compass order starting at the right
	Position     float64   `yaml:"position"`
	Overlap      float64   `yaml:"overlap"`
	Point        float64   `yaml:"point"`
	Border       float64   `yaml:"border"`
	MaxPenalty   float64   `yaml:"max_penalty"`
}

type Genetic struct {
	Population    int     `yaml:"population"`
	Generations   int     `yaml:"generations"`
	CrossoverRate float64 `yaml:"crossover_rate"`
	MutationRate  float64 `yaml:"mutation_rate"`
	Tournament    int     `yaml:"tournament"`
	Stagnation    int     `yaml:"stagnation"`
	Workers       int     `yaml:"workers"`
	Seed          int64   `yaml:"seed"`
}

// Font selects how label text is measured and drawn.
type Font struct {
	File    string  `yaml:"file"`    // TrueType/OpenType file; empty uses a fixed advance
	Size    float64 `yaml:"size"`    // in points
	Advance float64 `yaml:"advance"` // fixed advance per character as a fraction of the size
	Scale   float64 `yaml:"scale"`   // map units per millimetre of text
}

// Default returns the built-in settings.
func Default() Config {
	opts := maplabel.DefaultOptions()
	gc := maplabel.DefaultGeneticConfig()
	return Config{
		Algorithm: maplabel.AlgoGRASP.String(),
		Index:     opts.Index.String(),
		Rounds:    maplabel.DefaultConfig().Rounds,
		Weights: Weights{
			PositionBias: opts.PositionBias[:],
			Position:     opts.PositionWeight,
			Overlap:      opts.OverlapWeight,
			Point:        opts.PointPenalty,
			Border:       opts.BorderPenalty,
		},
		Genetic: Genetic{
			Population:    gc.PopulationSize,
			Generations:   gc.Generations,
			CrossoverRate: gc.CrossoverRate,
			MutationRate:  gc.MutationRate,
			Tournament:    gc.TournamentSize,
			Stagnation:    gc.Stagnation,
			Workers:       gc.Workers,
			Seed:          gc.Seed,
		},
		Font: Font{
			Size:    10,
			Advance: 0.6,
			Scale:   1,
		},
	}
}

// Load reads path on top of the defaults and applies the environment. An empty path
// skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MAPLABEL_ALGORITHM, MAPLABEL_INDEX, MAPLABEL_ROUNDS,
// MAPLABEL_SEED, MAPLABEL_WORKERS and MAPLABEL_FONT.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("MAPLABEL_ALGORITHM"); v != "" {
		c.Algorithm = v
	}
	if v := getenv("MAPLABEL_INDEX"); v != "" {
		c.Index = v
	}
	if v := getenv("MAPLABEL_FONT"); v != "" {
		c.Font.File = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"MAPLABEL_ROUNDS", &c.Rounds},
		{"MAPLABEL_WORKERS", &c.Genetic.Workers},
	}
	for _, e := range ints {
		if v := getenv(e.name); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: %w", e.name, err)
			}
			*e.dst = n
		}
	}
	if v := getenv("MAPLABEL_SEED"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("MAPLABEL_SEED: %w", err)
		}
		c.Genetic.Seed = n
	}
	return nil
}

// Options converts the weights and index choice into layout options.
func (c *Config) Options() (maplabel.Options, error) {
	opts := maplabel.DefaultOptions()
	kind, err := maplabel.ParseIndexKind(c.Index)
	if err != nil {
		return opts, err
	}
	opts.Index = kind

	w := c.Weights
	if len(w.PositionBias) != 0 {
		if len(w.PositionBias) != maplabel.NumPositions {
			return opts, fmt.Errorf("%w: position_bias needs %d values, got %d",
				maplabel.ErrInvalidOptions, maplabel.NumPositions, len(w.PositionBias))
		}
		copy(opts.PositionBias[:], w.PositionBias)
	}
	opts.PositionWeight = w.Position
	opts.OverlapWeight = w.Overlap
	opts.PointPenalty = w.Point
	opts.BorderPenalty = w.Border
	opts.MaxPenalty = w.MaxPenalty
	return opts, nil
}

// Labeler returns the chosen algorithm and its parameters.
func (c *Config) Labeler() (maplabel.Algorithm, maplabel.Config, error) {
	algo, err := maplabel.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return 0, maplabel.Config{}, err
	}
	g := c.Genetic
	return algo, maplabel.Config{
		Rounds: c.Rounds,
		Genetic: maplabel.GeneticConfig{
			PopulationSize: g.Population,
			Generations:    g.Generations,
			CrossoverRate:  g.CrossoverRate,
			MutationRate:   g.MutationRate,
			TournamentSize: g.Tournament,
			Stagnation:     g.Stagnation,
			Epsilon:        maplabel.DefaultGeneticConfig().Epsilon,
			Workers:        g.Workers,
			Seed:           g.Seed,
		},
	}, nil
}
