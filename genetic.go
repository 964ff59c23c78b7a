package maplabel

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GeneticConfig holds the parameters of the genetic labeler.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64 // chance that two parents are recombined instead of copied
	MutationRate   float64 // chance per gene to be redrawn
	TournamentSize int

	// Stagnation stops the search once the best fitness has improved by no more than
	// Epsilon over this many generations. Zero disables the check.
	Stagnation int
	Epsilon    float64

	// Workers bounds the goroutines evaluating fitness. Zero uses GOMAXPROCS.
	Workers int
	Seed    int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 100,
		Generations:    300,
		CrossoverRate:  0.8,
		MutationRate:   0.05,
		TournamentSize: 3,
		Stagnation:     30,
		Epsilon:        1e-9,
		Seed:           1,
	}
}

func (c *GeneticConfig) validate() error {
	switch {
	case c.PopulationSize < 2:
		return fmt.Errorf("%w: population size %d", ErrInvalidGeneticConfig, c.PopulationSize)
	case c.Generations < 0:
		return fmt.Errorf("%w: generations %d", ErrInvalidGeneticConfig, c.Generations)
	case !(c.CrossoverRate >= 0 && c.CrossoverRate <= 1):
		return fmt.Errorf("%w: crossover rate %v", ErrInvalidGeneticConfig, c.CrossoverRate)
	case !(c.MutationRate >= 0 && c.MutationRate <= 1):
		return fmt.Errorf("%w: mutation rate %v", ErrInvalidGeneticConfig, c.MutationRate)
	case c.TournamentSize < 1:
		return fmt.Errorf("%w: tournament size %d", ErrInvalidGeneticConfig, c.TournamentSize)
	case c.Stagnation < 0:
		return fmt.Errorf("%w: stagnation window %d", ErrInvalidGeneticConfig, c.Stagnation)
	case !finite(c.Epsilon) || c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidGeneticConfig, c.Epsilon)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidGeneticConfig, c.Workers)
	}
	return nil
}

// chromosome holds one position per labeled point, in Layout.labeled order.
type chromosome struct {
	genes   []Position
	fitness float64
}

func (c chromosome) clone() chromosome {
	return chromosome{genes: append([]Position(nil), c.genes...), fitness: c.fitness}
}

// Genetic searches the space of one-candidate-per-point assignments with a genetic
// algorithm. Fitness is the negated sum, over all genes, of the chosen candidate's unary
// penalty plus its cached overlap with every other chosen candidate.
type Genetic struct {
	layout *Layout
	cfg    GeneticConfig

	cache       *pairwiseCache
	geneOf      []int // point -> gene, -1 without text
	rng         *rand.Rand
	best        chromosome
	generations int
}

// NewGenetic creates a genetic labeler. The config is validated by Run.
func NewGenetic(l *Layout, cfg GeneticConfig) *Genetic {
	return &Genetic{layout: l, cfg: cfg}
}

// BestFitness returns the hall of fame fitness of the last run.
func (g *Genetic) BestFitness() float64 {
	return g.best.fitness
}

// Generations returns the number of generations the last run evolved.
func (g *Genetic) Generations() int {
	return g.generations
}

// Run places the labels. It resets any previous selection.
func (g *Genetic) Run() error {
	if err := g.cfg.validate(); err != nil {
		return err
	}
	l := g.layout
	l.resetLabels()
	g.generations = 0
	g.best = chromosome{fitness: math.Inf(-1)}

	n := len(l.labeled)
	if n == 0 {
		l.setPhase(phaseCommitted)
		return nil
	}

	g.cache = buildPairwise(l)
	g.geneOf = make([]int, len(l.Points))
	for i := range g.geneOf {
		g.geneOf[i] = -1
	}
	for gi, p := range l.labeled {
		g.geneOf[p] = gi
	}
	g.rng = rngFromSeed(g.cfg.Seed)

	pop := g.initPopulation(n)
	if err := g.evaluate(pop); err != nil {
		return err
	}
	g.updateBest(pop)

	history := []float64{g.best.fitness}
	for gen := 0; gen < g.cfg.Generations; gen++ {
		next := make([]chromosome, 0, g.cfg.PopulationSize)
		next = append(next, g.best.clone()) // elitism
		for len(next) < g.cfg.PopulationSize {
			a := g.tournament(pop)
			b := g.tournament(pop)
			if g.rng.Float64() < g.cfg.CrossoverRate {
				g.twoPointCrossover(a.genes, b.genes)
			}
			g.mutate(a.genes)
			next = append(next, a)
			if len(next) < g.cfg.PopulationSize {
				g.mutate(b.genes)
				next = append(next, b)
			}
		}
		pop = next
		if err := g.evaluate(pop); err != nil {
			return err
		}
		g.updateBest(pop)
		g.generations++

		history = append(history, g.best.fitness)
		if k := g.cfg.Stagnation; k > 0 && len(history) > k {
			if history[len(history)-1]-history[len(history)-1-k] <= g.cfg.Epsilon {
				break
			}
		}
	}

	for gi, p := range l.labeled {
		l.Points[p].Label = g.best.genes[gi]
	}
	l.setPhase(phaseCommitted)

	l.log.Debug("genetic done",
		slog.Int("generations", g.generations),
		slog.Float64("fitness", g.best.fitness),
		slog.Int("cached_pairs", g.cache.size))
	return nil
}

// initPopulation seeds one chromosome with the cheapest unary candidate of every point
// and fills the rest at random.
func (g *Genetic) initPopulation(n int) []chromosome {
	l := g.layout
	pop := make([]chromosome, g.cfg.PopulationSize)

	seed := make([]Position, n)
	for gi, p := range l.labeled {
		first := l.first[p]
		best := Position(0)
		for pos := Position(1); pos < NumPositions; pos++ {
			if g.cache.unary[first+int(pos)] < g.cache.unary[first+int(best)] {
				best = pos
			}
		}
		seed[gi] = best
	}
	pop[0] = chromosome{genes: seed}

	for i := 1; i < len(pop); i++ {
		genes := make([]Position, n)
		for j := range genes {
			genes[j] = Position(g.rng.Intn(NumPositions))
		}
		pop[i] = chromosome{genes: genes}
	}
	return pop
}

// fitness only reads the cache and the genes, so it may run concurrently.
func (g *Genetic) fitness(genes []Position) float64 {
	l := g.layout
	total := 0.0
	for gi, p := range l.labeled {
		c := l.first[p] + int(genes[gi])
		total += g.cache.unary[c]
		for _, pc := range g.cache.pairs[c] {
			o := &l.cands[pc.other]
			if genes[g.geneOf[o.Point]] == o.Position {
				total += pc.cost
			}
		}
	}
	return -total
}

// evaluate computes the fitness of every chromosome on a bounded worker pool and
// returns once all of them are done.
func (g *Genetic) evaluate(pop []chromosome) error {
	workers := g.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := range pop {
		eg.Go(func() error {
			pop[i].fitness = g.fitness(pop[i].genes)
			return nil
		})
	}
	return eg.Wait()
}

func (g *Genetic) updateBest(pop []chromosome) {
	for _, c := range pop {
		if c.fitness > g.best.fitness {
			g.best = c.clone()
		}
	}
}

// tournament returns a copy of the fittest of TournamentSize random picks.
func (g *Genetic) tournament(pop []chromosome) chromosome {
	best := &pop[g.rng.Intn(len(pop))]
	for i := 1; i < g.cfg.TournamentSize; i++ {
		c := &pop[g.rng.Intn(len(pop))]
		if c.fitness > best.fitness {
			best = c
		}
	}
	return best.clone()
}

// twoPointCrossover swaps a random segment of genes between a and b.
func (g *Genetic) twoPointCrossover(a, b []Position) {
	n := len(a)
	if n < 2 {
		return
	}
	i := g.rng.Intn(n)
	j := g.rng.Intn(n)
	if i > j {
		i, j = j, i
	}
	for k := i; k <= j; k++ {
		a[k], b[k] = b[k], a[k]
	}
}

// mutate redraws each gene with probability MutationRate.
func (g *Genetic) mutate(genes []Position) {
	for i := range genes {
		if g.rng.Float64() < g.cfg.MutationRate {
			genes[i] = Position(g.rng.Intn(NumPositions))
		}
	}
}

var _ Labeler = (*Genetic)(nil)
