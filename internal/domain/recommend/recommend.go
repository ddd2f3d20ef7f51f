// Package recommend ranks potential teammates for one candidate by scoring
// each pairing on the team compatibility dimensions.
package recommend

import (
	"cmp"
	"slices"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoring"
)

// Defaults for recommendation queries.
const (
	DefaultLimit    = 20
	DefaultMinScore = 60
)

// Query asks for teammates of Target drawn from Pool.
type Query struct {
	Target  model.Candidate
	Pool    []model.Candidate
	Project *model.ProjectContext
	Weights model.Weights
	// Exclude lists IDs never to recommend (e.g. existing team members).
	Exclude []string
	// MinScore drops pairings below this combined score.
	MinScore int
	// Limit caps the result length; <= 0 selects DefaultLimit.
	Limit int
}

// Match is one recommended teammate and the pair's scores.
type Match struct {
	Candidate  model.Candidate  `json:"candidate"`
	Score      int              `json:"score"`
	Dimensions model.Dimensions `json:"dimensions"`
}

// Rank scores every eligible pairing and returns the best, sorted by score
// descending with ties broken by candidate ID.
func Rank(q Query) []Match {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	skip := make(map[string]struct{}, len(q.Exclude)+1)
	skip[q.Target.ID] = struct{}{}
	for _, id := range q.Exclude {
		skip[id] = struct{}{}
	}

	out := make([]Match, 0, len(q.Pool))
	for i := range q.Pool {
		other := q.Pool[i]
		if _, ok := skip[other.ID]; ok {
			continue
		}
		dims, score := scoring.Evaluate([]model.Candidate{q.Target, other}, q.Project, q.Weights)
		if score < q.MinScore {
			continue
		}
		out = append(out, Match{Candidate: other, Score: score, Dimensions: dims})
	}

	slices.SortStableFunc(out, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Candidate.ID, b.Candidate.ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
