package api

import (
	"context"
	"net/http"

	"github.com/okian/teamfit/internal/domain/types"
)

// FormationsHandler handles team formation requests.
type FormationsHandler struct {
	deps         FormationDependencies
	maxBodyBytes int64
}

// NewFormationsHandler creates a new formations handler.
func NewFormationsHandler(deps FormationDependencies, maxBodyBytes int64) *FormationsHandler {
	return &FormationsHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePostFormations handles POST /formations requests. The response
// data is the list of best formations, highest score first.
func (h *FormationsHandler) HandlePostFormations(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_formations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req types.OptimizeRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	res, err := h.deps.Optimize(r.Context(), req)
	if err != nil {
		if r.Context().Err() == context.Canceled {
			// Client went away; nobody reads the response.
			return
		}
		writeFailure(w, Wrap(op, err))
		return
	}
	writeOK(w, res.Formations)
}
