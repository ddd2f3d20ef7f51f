package service

import (
	"time"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of optimizer workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending optimization jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithRequestTimeout bounds how long Optimize waits for a worker.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithTeamSizes sets the default team size and the largest accepted one.
func WithTeamSizes(defaultSize, maxSize int) Option {
	return func(s *Service) {
		if defaultSize > 0 && maxSize >= defaultSize {
			s.defaultTeamSize = defaultSize
			s.maxTeamSize = maxSize
		}
	}
}

// WithMaxCandidates caps the pool size accepted per request.
func WithMaxCandidates(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithSampling tunes the combination sampler.
func WithSampling(sampleCap, retryCeiling int) Option {
	return func(s *Service) {
		if sampleCap > 0 {
			s.sampleCap = sampleCap
		}
		if retryCeiling > 0 {
			s.retryCeiling = retryCeiling
		}
	}
}

// WithTopFormations sets how many formations Optimize returns.
func WithTopFormations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topFormations = n
		}
	}
}

// WithWeights sets the default dimension weights.
func WithWeights(w model.Weights) Option {
	return func(s *Service) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// WithRecommendDefaults sets the default result limit and minimum score for
// recommendations.
func WithRecommendDefaults(limit, minScore int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.recommendLimit = limit
		}
		s.recommendMinScore = minScore
	}
}

// WithSeed makes sampling reproducible. Intended for tests.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = &seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
