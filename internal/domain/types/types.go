// Package types contains the request and response shapes shared by the
// service, the HTTP API and the bench harness.
package types

import (
	"github.com/okian/teamfit/internal/domain/availability"
	"github.com/okian/teamfit/internal/domain/model"
)

// OptimizeRequest asks for the best formations from a candidate pool.
type OptimizeRequest struct {
	Candidates []model.Candidate     `json:"candidates"`
	TeamSize   *int                  `json:"teamSize,omitempty"`
	Project    *model.ProjectContext `json:"project,omitempty"`
	Weights    *model.Weights        `json:"weights,omitempty"`
}

// RecommendRequest asks for teammates of Target drawn from Candidates.
type RecommendRequest struct {
	Target     *model.Candidate      `json:"target"`
	Candidates []model.Candidate     `json:"candidates"`
	Project    *model.ProjectContext `json:"project,omitempty"`
	Weights    *model.Weights        `json:"weights,omitempty"`
	MinScore   *int                  `json:"minScore,omitempty"`
	Limit      int                   `json:"limit,omitempty"`
	Exclude    []string              `json:"exclude,omitempty"`
}

// OverlapRequest carries either hour grids or weekly slot lists, one per
// person. Slots win when both are present.
type OverlapRequest struct {
	Availability []model.Availability  `json:"availability,omitempty"`
	Slots        [][]availability.Slot `json:"slots,omitempty"`
}

// OverlapResult is the shared free time of a group.
type OverlapResult struct {
	FreeHours int                   `json:"freeHours"`
	Windows   []availability.Window `json:"windows"`
	Matrix    model.Availability    `json:"matrix"`
}

// Envelope wraps every HTTP response body.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
