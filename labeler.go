package maplabel

import (
	"fmt"
	"strings"
)

// Labeler is a label placement strategy bound to one Layout.
// After Run returns, each point's Label holds the selected position or NoLabel.
type Labeler interface {
	Run() error
}

// Algorithm names a labeling strategy.
type Algorithm int

const (
	AlgoGreedy Algorithm = iota
	AlgoAdvancedGreedy
	AlgoGRASP
	AlgoGenetic
)

var algorithmNames = map[Algorithm]string{
	AlgoGreedy:         "greedy",
	AlgoAdvancedGreedy: "advanced",
	AlgoGRASP:          "grasp",
	AlgoGenetic:        "genetic",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm is the inverse of Algorithm.String.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "advanced-greedy", "advanced_greedy":
		return AlgoAdvancedGreedy, nil
	}
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Config collects the strategy parameters used by New.
type Config struct {
	Rounds  int // local search rounds of GRASP
	Genetic GeneticConfig
}

// DefaultConfig returns the parameters used by the command line tool.
func DefaultConfig() Config {
	return Config{
		Rounds:  10,
		Genetic: DefaultGeneticConfig(),
	}
}

// New returns the labeler implementing algo on l.
func New(l *Layout, algo Algorithm, cfg Config) (Labeler, error) {
	switch algo {
	case AlgoGreedy:
		return NewGreedy(l), nil
	case AlgoAdvancedGreedy:
		return NewAdvancedGreedy(l), nil
	case AlgoGRASP:
		if cfg.Rounds < 0 {
			return nil, fmt.Errorf("%w: %d local search rounds", ErrInvalidOptions, cfg.Rounds)
		}
		return NewGRASP(l, cfg.Rounds), nil
	case AlgoGenetic:
		if err := cfg.Genetic.validate(); err != nil {
			return nil, err
		}
		return NewGenetic(l, cfg.Genetic), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, algo)
}
