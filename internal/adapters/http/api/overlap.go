package api

import (
	"net/http"

	"github.com/okian/teamfit/internal/domain/types"
)

// OverlapHandler handles shared-availability requests.
type OverlapHandler struct {
	deps         OverlapDependencies
	maxBodyBytes int64
}

// NewOverlapHandler creates a new overlap handler.
func NewOverlapHandler(deps OverlapDependencies, maxBodyBytes int64) *OverlapHandler {
	return &OverlapHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePostOverlap handles POST /availability/overlap requests.
func (h *OverlapHandler) HandlePostOverlap(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_overlap"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.OverlapRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	res, err := h.deps.Overlap(r.Context(), req)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeOK(w, res)
}
