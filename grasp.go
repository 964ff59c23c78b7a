package maplabel

// GRASP builds a configuration with AdvancedGreedy and refines it with LocalSearch.
type GRASP struct {
	greedy *AdvancedGreedy
	search *LocalSearch
}

// NewGRASP creates a GRASP labeler that runs at most rounds local search rounds.
func NewGRASP(l *Layout, rounds int) *GRASP {
	return &GRASP{
		greedy: NewAdvancedGreedy(l),
		search: NewLocalSearch(l, rounds),
	}
}

// Run places the labels. It resets any previous selection.
func (g *GRASP) Run() error {
	if err := g.greedy.Run(); err != nil {
		return err
	}
	return g.search.Run()
}

// History returns the local search statistics of the last run.
func (g *GRASP) History() []RoundStats {
	return g.search.History()
}

var _ Labeler = (*GRASP)(nil)
