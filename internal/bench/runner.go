// Package bench drives a running teamfit service with random candidate
// pools and checks every formation response it gets back.
package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/teamfit/internal/domain/types"
	"github.com/okian/teamfit/pkg/logger"
)

const percent = 100

// Stats holds run statistics.
type Stats struct {
	Requests     int
	Succeeded    int
	Backpressure int
	TimedOut     int
	Failed       int
	Violations   int

	MaxLatency   time.Duration
	TotalLatency time.Duration
	Duration     time.Duration

	// FirstViolation is kept for the report.
	FirstViolation error
}

// SuccessRate is the share of requests that came back verified, in percent.
func (s *Stats) SuccessRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Requests) * percent
}

// Throughput is requests per second over the whole run.
func (s *Stats) Throughput() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Requests) / s.Duration.Seconds()
}

// Run checks the service health, then sends cfg.Requests optimization
// requests with cfg.Workers in flight and verifies each response. It
// returns ErrVerification when any response broke an invariant.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("bench")
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting teamfit bench",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Int("poolSize", cfg.Pool.Size),
		logger.Int("teamSize", cfg.Pool.TeamSize),
	)
	if err := client.Health(ctx); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var (
		mu    sync.Mutex
		stats = &Stats{}
	)
	record := func(f func(*Stats)) {
		mu.Lock()
		f(stats)
		mu.Unlock()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Requests; i++ {
		g.Go(func() error {
			pool := NewGenerator(cfg.Pool, seed+uint64(i)).Pool()
			teamSize := cfg.Pool.TeamSize
			resp, err := client.PostFormations(gctx, types.OptimizeRequest{
				Candidates: pool,
				TeamSize:   &teamSize,
				Project:    cfg.Pool.Project,
			})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				record(func(s *Stats) { s.Requests++; s.Failed++ })
				log.Debug(gctx, "request failed", logger.Int("request", i), logger.Error(err))
				return nil
			}

			var verr error
			if resp.Status == http.StatusOK {
				verr = VerifyFormations(resp.Body, pool, teamSize)
			}
			record(func(s *Stats) {
				s.Requests++
				s.TotalLatency += resp.Elapsed
				s.MaxLatency = max(s.MaxLatency, resp.Elapsed)
				switch {
				case resp.Status == http.StatusOK && verr == nil:
					s.Succeeded++
				case resp.Status == http.StatusOK:
					s.Violations++
					if s.FirstViolation == nil {
						s.FirstViolation = verr
					}
				case resp.Status == http.StatusTooManyRequests:
					s.Backpressure++
				case resp.Status == http.StatusGatewayTimeout:
					s.TimedOut++
				default:
					s.Failed++
				}
			})
			if verr != nil {
				log.Warn(gctx, "invalid formations", logger.Int("request", i), logger.Error(verr))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("bench interrupted: %w", err)
	}
	stats.Duration = time.Since(start)

	report(ctx, log, stats)
	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d responses, first: %w", ErrVerification, stats.Violations, stats.FirstViolation)
	}
	return stats, nil
}

// report logs the final statistics.
func report(ctx context.Context, log logger.Logger, s *Stats) {
	var avg time.Duration
	if s.Requests > 0 {
		avg = s.TotalLatency / time.Duration(s.Requests)
	}
	log.Info(ctx, "final statistics",
		logger.Int("requests", s.Requests),
		logger.Int("succeeded", s.Succeeded),
		logger.Int("backpressure", s.Backpressure),
		logger.Int("timedOut", s.TimedOut),
		logger.Int("failed", s.Failed),
		logger.Int("violations", s.Violations),
		logger.Duration("avgLatency", avg),
		logger.Duration("maxLatency", s.MaxLatency),
		logger.Duration("duration", s.Duration),
		logger.Float64("successRate", s.SuccessRate()),
		logger.Float64("requestsPerSecond", s.Throughput()),
	)
}
