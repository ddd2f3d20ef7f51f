package api

import (
	"net/http"

	"github.com/okian/teamfit/internal/domain/types"
)

// RecommendationsHandler handles teammate recommendation requests.
type RecommendationsHandler struct {
	deps         RecommendationDependencies
	maxBodyBytes int64
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, maxBodyBytes int64) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendationsHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.RecommendRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	matches, err := h.deps.Recommend(r.Context(), req)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeOK(w, matches)
}
