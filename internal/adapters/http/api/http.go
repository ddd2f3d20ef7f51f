// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/teamfit/internal/app"
	"github.com/okian/teamfit/internal/domain/optimizer"
	"github.com/okian/teamfit/internal/domain/recommend"
	"github.com/okian/teamfit/internal/domain/types"
	"github.com/okian/teamfit/pkg/logger"
)

const defaultMaxBodyBytes = 4 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FormationDependencies
	RecommendationDependencies
	OverlapDependencies
}

// FormationDependencies runs team optimizations.
type FormationDependencies interface {
	Optimize(ctx context.Context, req types.OptimizeRequest) (optimizer.Result, error)
}

// RecommendationDependencies ranks teammates.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, req types.RecommendRequest) ([]recommend.Match, error)
}

// OverlapDependencies computes shared availability.
type OverlapDependencies interface {
	Overlap(ctx context.Context, req types.OverlapRequest) (types.OverlapResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler         *HealthHandler
	statsHandler          *StatsHandler
	formationsHandler     *FormationsHandler
	recommendationHandler *RecommendationsHandler
	overlapHandler        *OverlapHandler

	maxBodyBytes int64
	logger       logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxBodyBytes limits the size of JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.formationsHandler = NewFormationsHandler(deps, s.maxBodyBytes)
	s.recommendationHandler = NewRecommendationsHandler(deps, s.maxBodyBytes)
	s.overlapHandler = NewOverlapHandler(deps, s.maxBodyBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/formations", s.wrap(s.formationsHandler.HandlePostFormations, "formations"))
	mux.HandleFunc("/recommendations", s.wrap(s.recommendationHandler.HandlePostRecommendations, "recommendations"))
	mux.HandleFunc("/availability/overlap", s.wrap(s.overlapHandler.HandlePostOverlap, "availability_overlap"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(LoggingMiddleware(MetricsMiddleware(h, endpoint), s.logger))
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	const op = "api.decode"
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return WrapKind(op, ErrBodyTooLarge, fmt.Errorf("limit is %d bytes", tooLarge.Limit))
		}
		if errors.Is(err, io.EOF) {
			return NewKind(op, ErrBadRequest)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	if dec.More() {
		return WrapKind(op, ErrBadRequest, errors.New("trailing data after JSON body"))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, types.Envelope{OK: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, types.Envelope{Error: &types.ErrorBody{Code: code, Message: msg}})
}

// writeFailure maps err to a status and error code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, service.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
