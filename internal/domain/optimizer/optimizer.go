// Package optimizer searches a candidate pool for the best-scoring teams of
// a requested size.
//
// The search samples candidate subsets, scores each on every dimension,
// and ranks them. It is a heuristic sampler, not an exhaustive solver.
package optimizer

import (
	"cmp"
	"slices"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/sampler"
	"github.com/okian/teamfit/internal/domain/scoring"
)

// Default optimizer configuration constants.
const (
	DefaultTeamSize = 5
	MaxFormations   = 3
)

// Input is one optimization request. Zero values select the optimizer's
// configured defaults.
type Input struct {
	Candidates []model.Candidate
	// TeamSize <= 0 selects the configured default.
	TeamSize int
	Project  *model.ProjectContext
	// Weights nil selects the configured default.
	Weights *model.Weights
}

// Result holds the ranked formations plus sampling statistics.
type Result struct {
	Formations []model.Formation
	// Sampled counts the subsets that were scored.
	Sampled   int
	Draws     int
	Exhausted bool
}

// Optimizer ranks sampled teams. It holds only immutable configuration and
// is safe for concurrent use.
type Optimizer struct {
	teamSize     int
	weights      model.Weights
	sampleCap    int
	retryCeiling int
	topN         int
	seed         *uint64
}

// New creates an optimizer with configuration options.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		teamSize:     DefaultTeamSize,
		weights:      model.DefaultWeights(),
		sampleCap:    sampler.DefaultCap,
		retryCeiling: sampler.DefaultRetryCeiling,
		topN:         MaxFormations,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// scored pairs a formation with the pool indices it was built from.
type scored struct {
	formation model.Formation
	ids       []string
	indices   []int
}

// Optimize samples teams from the pool, scores them and returns the best
// ones, sorted by score descending. It never fails: an undersized pool
// yields the single all-member team.
func (o *Optimizer) Optimize(in Input) Result {
	size := in.TeamSize
	if size <= 0 {
		size = o.teamSize
	}
	weights := o.weights
	if in.Weights != nil {
		weights = *in.Weights
	}

	opts := []sampler.Option{
		sampler.WithCap(o.sampleCap),
		sampler.WithRetryCeiling(o.retryCeiling),
	}
	if o.seed != nil {
		opts = append(opts, sampler.WithSeed(*o.seed))
	}
	draw := sampler.Indices(len(in.Candidates), size, opts...)

	ranked := make([]scored, 0, len(draw.Subsets))
	for _, idx := range draw.Subsets {
		team := make([]model.Candidate, len(idx))
		ids := make([]string, len(idx))
		for j, p := range idx {
			team[j] = in.Candidates[p]
			ids[j] = in.Candidates[p].ID
		}
		dims, score := scoring.Evaluate(team, in.Project, weights)
		slices.Sort(ids)
		ranked = append(ranked, scored{
			formation: model.Formation{Team: team, Score: score, Dimensions: dims},
			ids:       ids,
			indices:   idx,
		})
	}

	slices.SortStableFunc(ranked, compareScored)

	top := min(o.topN, len(ranked))
	out := make([]model.Formation, top)
	for i := 0; i < top; i++ {
		out[i] = ranked[i].formation
	}
	return Result{
		Formations: out,
		Sampled:    len(draw.Subsets),
		Draws:      draw.Draws,
		Exhausted:  draw.Exhausted,
	}
}

// compareScored orders by score descending, then by sorted member IDs,
// then by pool indices, so equal scores rank deterministically.
func compareScored(a, b scored) int {
	if c := cmp.Compare(b.formation.Score, a.formation.Score); c != 0 {
		return c
	}
	if c := slices.Compare(a.ids, b.ids); c != 0 {
		return c
	}
	return slices.Compare(a.indices, b.indices)
}
