// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/teamfit/internal/adapters/mq/queue"
	workerpool "github.com/okian/teamfit/internal/adapters/mq/worker"
	"github.com/okian/teamfit/internal/domain/availability"
	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/optimizer"
	"github.com/okian/teamfit/internal/domain/recommend"
	"github.com/okian/teamfit/internal/domain/sampler"
	"github.com/okian/teamfit/internal/domain/types"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize      = 1024
	defaultRequestTimeout = 5 * time.Second
	defaultMaxTeamSize    = 20
	defaultMaxCandidates  = 500
	stopTimeout           = 10 * time.Second
)

// Service implements the API dependencies for team formation.
type Service struct {
	mu sync.RWMutex

	// Core components
	optimizer *optimizer.Optimizer
	jobQueue  *jobqueue.InMemoryQueue
	pool      *workerpool.Pool

	// Configuration
	workerCount       int
	queueSize         int
	requestTimeout    time.Duration
	defaultTeamSize   int
	maxTeamSize       int
	maxCandidates     int
	sampleCap         int
	retryCeiling      int
	topFormations     int
	weights           model.Weights
	recommendLimit    int
	recommendMinScore int
	seed              *uint64

	// Counters
	optimized   atomic.Int64
	rejected    atomic.Int64
	timedOut    atomic.Int64
	invalid     atomic.Int64
	recommended atomic.Int64

	// State
	started   bool
	startedAt time.Time
	cancel    context.CancelFunc

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU(),
		queueSize:         defaultQueueSize,
		requestTimeout:    defaultRequestTimeout,
		defaultTeamSize:   optimizer.DefaultTeamSize,
		maxTeamSize:       defaultMaxTeamSize,
		maxCandidates:     defaultMaxCandidates,
		sampleCap:         sampler.DefaultCap,
		retryCeiling:      sampler.DefaultRetryCeiling,
		topFormations:     optimizer.MaxFormations,
		weights:           model.DefaultWeights(),
		recommendLimit:    recommend.DefaultLimit,
		recommendMinScore: recommend.DefaultMinScore,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the optimizer and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting team formation service...")

	optOpts := []optimizer.Option{
		optimizer.WithTeamSize(s.defaultTeamSize),
		optimizer.WithWeights(s.weights),
		optimizer.WithSampleCap(s.sampleCap),
		optimizer.WithRetryCeiling(s.retryCeiling),
		optimizer.WithTopN(s.topFormations),
	}
	if s.seed != nil {
		optOpts = append(optOpts, optimizer.WithSeed(*s.seed))
	}
	s.optimizer = optimizer.New(optOpts...)

	s.jobQueue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))

	// Workers outlive the caller's ctx; they stop on Stop.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s.optimizer)
	s.pool.Start(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "team formation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("sampleCap", s.sampleCap),
		logger.Duration("requestTimeout", s.requestTimeout),
	)

	return nil
}

// Stop drains pending jobs and shuts the worker pool down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping team formation service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "team formation service stopped")
}

// Optimize validates the request, hands it to the worker pool and waits
// for the ranked formations. It fails with ErrBackpressure when the queue
// is full and with ErrTimeout when ctx or the request timeout expires first.
func (s *Service) Optimize(ctx context.Context, req types.OptimizeRequest) (optimizer.Result, error) {
	s.mu.RLock()
	started, q := s.started, s.jobQueue
	s.mu.RUnlock()
	if !started {
		return optimizer.Result{}, ErrNotStarted
	}

	in, err := s.optimizeInput(req)
	if err != nil {
		s.invalid.Add(1)
		metrics.RecordOptimization(metrics.OutcomeInvalid)
		return optimizer.Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	job := jobqueue.NewJob(ctx, uuid.NewString(), in)
	if err := q.Enqueue(ctx, job); err != nil {
		return optimizer.Result{}, s.enqueueError(ctx, job.ID, err)
	}

	select {
	case out := <-job.Done:
		if out.Err != nil {
			return optimizer.Result{}, s.timeout(ctx, job.ID, out.Err)
		}
		s.optimized.Add(1)
		metrics.RecordOptimization(metrics.OutcomeOK)
		return out.Result, nil
	case <-ctx.Done():
		return optimizer.Result{}, s.timeout(ctx, job.ID, ctx.Err())
	}
}

func (s *Service) enqueueError(ctx context.Context, jobID string, err error) error {
	switch {
	case errors.Is(err, jobqueue.ErrFull):
		s.rejected.Add(1)
		metrics.RecordOptimization(metrics.OutcomeBackpressure)
		s.log().Warn(ctx, "optimization rejected, queue full", logger.String("job_id", jobID))
		return fmt.Errorf("%w: %w", ErrBackpressure, err)
	case errors.Is(err, jobqueue.ErrClosed):
		return fmt.Errorf("%w: %w", ErrNotStarted, err)
	default:
		return s.timeout(ctx, jobID, err)
	}
}

func (s *Service) timeout(ctx context.Context, jobID string, cause error) error {
	s.timedOut.Add(1)
	metrics.RecordOptimization(metrics.OutcomeTimeout)
	s.log().Warn(ctx, "optimization did not finish in time",
		logger.String("job_id", jobID),
		logger.Error(cause),
	)
	return fmt.Errorf("%w: %w", ErrTimeout, cause)
}

// optimizeInput validates the request at the boundary and converts it to
// engine input.
func (s *Service) optimizeInput(req types.OptimizeRequest) (optimizer.Input, error) {
	if req.Candidates == nil {
		return optimizer.Input{}, fmt.Errorf("%w: candidates are required", ErrInvalidRequest)
	}
	if err := s.validatePool(req.Candidates); err != nil {
		return optimizer.Input{}, err
	}
	size := s.defaultTeamSize
	if req.TeamSize != nil {
		size = *req.TeamSize
	}
	if size < 1 || size > s.maxTeamSize {
		return optimizer.Input{}, fmt.Errorf("%w: teamSize must be within 1..%d, got %d", ErrInvalidRequest, s.maxTeamSize, size)
	}
	if err := validateWeights(req.Weights); err != nil {
		return optimizer.Input{}, err
	}
	return optimizer.Input{
		Candidates: req.Candidates,
		TeamSize:   size,
		Project:    req.Project,
		Weights:    req.Weights,
	}, nil
}

func (s *Service) validatePool(pool []model.Candidate) error {
	if len(pool) > s.maxCandidates {
		return fmt.Errorf("%w: at most %d candidates per request, got %d", ErrInvalidRequest, s.maxCandidates, len(pool))
	}
	seen := make(map[string]struct{}, len(pool))
	for i := range pool {
		id := pool[i].ID
		if id == "" {
			return fmt.Errorf("%w: candidate %d has no id", ErrInvalidRequest, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate candidate id %q", ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateWeights(w *model.Weights) error {
	if w == nil {
		return nil
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// Recommend ranks teammates for the request's target. It runs inline: a
// pairwise scan is linear in the pool size.
func (s *Service) Recommend(ctx context.Context, req types.RecommendRequest) ([]recommend.Match, error) {
	if req.Target == nil || req.Target.ID == "" {
		return nil, fmt.Errorf("%w: target with an id is required", ErrInvalidRequest)
	}
	if req.Candidates == nil {
		return nil, fmt.Errorf("%w: candidates are required", ErrInvalidRequest)
	}
	if err := s.validatePool(req.Candidates); err != nil {
		return nil, err
	}
	if err := validateWeights(req.Weights); err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}

	q := recommend.Query{
		Target:   *req.Target,
		Pool:     req.Candidates,
		Project:  req.Project,
		Weights:  s.weights,
		Exclude:  req.Exclude,
		MinScore: s.recommendMinScore,
		Limit:    s.recommendLimit,
	}
	if req.Weights != nil {
		q.Weights = *req.Weights
	}
	if req.MinScore != nil {
		q.MinScore = *req.MinScore
	}
	if req.Limit > 0 {
		q.Limit = req.Limit
	}

	matches := recommend.Rank(q)
	s.recommended.Add(int64(len(matches)))
	metrics.RecordRecommendations(len(matches))
	s.log().Debug(ctx, "recommendations ranked",
		logger.String("target", req.Target.ID),
		logger.Int("pool", len(req.Candidates)),
		logger.Int("matches", len(matches)),
	)
	return matches, nil
}

// Overlap computes the group's shared free hours from either hour grids or
// weekly slot lists.
func (s *Service) Overlap(_ context.Context, req types.OverlapRequest) (types.OverlapResult, error) {
	grids := req.Availability
	if len(req.Slots) > 0 {
		grids = make([]model.Availability, len(req.Slots))
		for i, slots := range req.Slots {
			g, err := availability.FromSlots(slots)
			if err != nil {
				return types.OverlapResult{}, fmt.Errorf("%w: person %d: %w", ErrInvalidRequest, i, err)
			}
			grids[i] = g
		}
	}
	if len(grids) == 0 {
		return types.OverlapResult{}, fmt.Errorf("%w: availability or slots are required", ErrInvalidRequest)
	}

	common := availability.Common(grids)
	windows := availability.Windows(common)
	if windows == nil {
		windows = []availability.Window{}
	}
	return types.OverlapResult{
		FreeHours: availability.FreeHours(common),
		Windows:   windows,
		Matrix:    common,
	}, nil
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"defaultTeamSize": s.defaultTeamSize,
		"maxTeamSize":     s.maxTeamSize,
		"sampleCap":       s.sampleCap,
		"optimizations":   s.optimized.Load(),
		"rejected":        s.rejected.Load(),
		"timeouts":        s.timedOut.Load(),
		"invalid":         s.invalid.Load(),
		"recommendations": s.recommended.Load(),
	}

	if s.started {
		stats["queueLength"] = s.jobQueue.Len(context.Background())
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	return stats
}
