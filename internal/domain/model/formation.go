package model

import (
	"fmt"
	"math"
)

// Weights sets the relative influence of each dimension. Weights need not
// sum to one; the combiner normalizes by their sum.
type Weights struct {
	Schedule   float64 `json:"schedule"`
	Skills     float64 `json:"skills"`
	Diversity  float64 `json:"diversity"`
	ProjectFit float64 `json:"projectFit"`
	WorkStyle  float64 `json:"workStyle"`
}

// DefaultWeights returns the weight distribution used when a caller does
// not supply one.
func DefaultWeights() Weights {
	return Weights{
		Schedule:   0.25,
		Skills:     0.25,
		Diversity:  0.20,
		ProjectFit: 0.15,
		WorkStyle:  0.15,
	}
}

// Values returns the weights in dimension order.
func (w Weights) Values() [5]float64 {
	return [5]float64{w.Schedule, w.Skills, w.Diversity, w.ProjectFit, w.WorkStyle}
}

// Validate rejects negative, NaN and infinite weights.
func (w Weights) Validate() error {
	names := [5]string{"schedule", "skills", "diversity", "projectFit", "workStyle"}
	for i, v := range w.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeights, names[i], v)
		}
	}
	return nil
}

// Dimensions holds the five 0..100 dimension scores of a team.
type Dimensions struct {
	Schedule   int `json:"schedule"`
	Skills     int `json:"skills"`
	Diversity  int `json:"diversity"`
	ProjectFit int `json:"projectFit"`
	WorkStyle  int `json:"workStyle"`
}

// Values returns the scores in the same order as Weights.Values.
func (d Dimensions) Values() [5]int {
	return [5]int{d.Schedule, d.Skills, d.Diversity, d.ProjectFit, d.WorkStyle}
}

// DimensionNames lists the dimensions in Values order.
var DimensionNames = [5]string{"schedule", "skills", "diversity", "project_fit", "work_style"}

// Formation is a scored team proposal. It is created fresh per
// optimization call and handed to the caller whole.
type Formation struct {
	Team       []Candidate `json:"team"`
	Score      int         `json:"score"`
	Dimensions Dimensions  `json:"dimensions"`
}

// MemberIDs returns the IDs of the team members in team order.
func (f *Formation) MemberIDs() []string {
	ids := make([]string, len(f.Team))
	for i := range f.Team {
		ids[i] = f.Team[i].ID
	}
	return ids
}
