package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bmharper/maplabel"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, maplabel.DefaultOptions(), opts)

	algo, lc, err := cfg.Labeler()
	require.NoError(t, err)
	require.Equal(t, maplabel.AlgoGRASP, algo)
	require.Equal(t, maplabel.DefaultConfig(), lc)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maplabel.yaml")
	data := `
algorithm: genetic
index: rtree
weights:
  overlap: 5
  max_penalty: 500
genetic:
  population: 20
  seed: 9
font:
  size: 8
bounds: [0, 0, 100, 50]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 100, 50}, cfg.Bounds)
	require.Equal(t, 8.0, cfg.Font.Size)
	require.Equal(t, 0.6, cfg.Font.Advance) // untouched default

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, maplabel.IndexRTree, opts.Index)
	require.Equal(t, 5.0, opts.OverlapWeight)
	require.Equal(t, 500.0, opts.MaxPenalty)
	require.Equal(t, 1000.0, opts.PointPenalty)

	algo, lc, err := cfg.Labeler()
	require.NoError(t, err)
	require.Equal(t, maplabel.AlgoGenetic, algo)
	require.Equal(t, 20, lc.Genetic.PopulationSize)
	require.Equal(t, int64(9), lc.Genetic.Seed)
	require.Equal(t, 300, lc.Genetic.Generations)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: [1"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MAPLABEL_ALGORITHM": "greedy",
		"MAPLABEL_ROUNDS":    "3",
		"MAPLABEL_SEED":      "42",
		"MAPLABEL_WORKERS":   "2",
		"MAPLABEL_FONT":      "/fonts/DejaVuSans.ttf",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	require.Equal(t, "greedy", cfg.Algorithm)
	require.Equal(t, 3, cfg.Rounds)
	require.Equal(t, int64(42), cfg.Genetic.Seed)
	require.Equal(t, 2, cfg.Genetic.Workers)
	require.Equal(t, "/fonts/DejaVuSans.ttf", cfg.Font.File)

	env["MAPLABEL_ROUNDS"] = "many"
	require.Error(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
}

func TestLoadUsesEnvironment(t *testing.T) {
	t.Setenv("MAPLABEL_ALGORITHM", "advanced")
	cfg, err := Load("")
	require.NoError(t, err)
	algo, _, err := cfg.Labeler()
	require.NoError(t, err)
	require.Equal(t, maplabel.AlgoAdvancedGreedy, algo)
}

func TestInvalidSettings(t *testing.T) {
	cfg := Default()
	cfg.Weights.PositionBias = []float64{1, 2}
	_, err := cfg.Options()
	require.ErrorIs(t, err, maplabel.ErrInvalidOptions)

	cfg = Default()
	cfg.Index = "kdtree"
	_, err = cfg.Options()
	require.Error(t, err)

	cfg = Default()
	cfg.Algorithm = "annealing"
	_, _, err = cfg.Labeler()
	require.ErrorIs(t, err, maplabel.ErrUnknownAlgorithm)
}
