// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and the environment on top of New().
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/optimizer"
	"github.com/okian/teamfit/internal/domain/recommend"
	"github.com/okian/teamfit/internal/domain/sampler"
)

// Weights mirrors model.Weights with koanf keys.
type Weights struct {
	Schedule   float64 `koanf:"schedule"`
	Skills     float64 `koanf:"skills"`
	Diversity  float64 `koanf:"diversity"`
	ProjectFit float64 `koanf:"project_fit"`
	WorkStyle  float64 `koanf:"work_style"`
}

// Model converts the configured weights to the engine type.
func (w Weights) Model() model.Weights {
	return model.Weights{
		Schedule:   w.Schedule,
		Skills:     w.Skills,
		Diversity:  w.Diversity,
		ProjectFit: w.ProjectFit,
		WorkStyle:  w.WorkStyle,
	}
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory optimization job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of optimizer workers.
	WorkerCount int `koanf:"worker_count"`

	// RequestTimeoutMS bounds how long a caller waits for a formation result.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// MaxBodyBytes limits HTTP request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	DefaultTeamSize int `koanf:"default_team_size"`
	MaxTeamSize     int `koanf:"max_team_size"`

	// MaxCandidates caps the pool size accepted per request.
	MaxCandidates int `koanf:"max_candidates"`

	// SampleCap and RetryCeiling tune the combination sampler.
	SampleCap    int `koanf:"sample_cap"`
	RetryCeiling int `koanf:"retry_ceiling"`

	// TopFormations is how many formations are returned (1..3).
	TopFormations int `koanf:"top_formations"`

	RecommendLimit    int `koanf:"recommend_limit"`
	RecommendMinScore int `koanf:"recommend_min_score"`

	Weights Weights `koanf:"weights"`
}

// New creates a Config populated with defaults.
func New() *Config {
	w := model.DefaultWeights()
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		QueueSize:         1_024,
		WorkerCount:       runtime.NumCPU(),
		RequestTimeoutMS:  5_000,
		MaxBodyBytes:      4 << 20,
		DefaultTeamSize:   optimizer.DefaultTeamSize,
		MaxTeamSize:       20,
		MaxCandidates:     500,
		SampleCap:         sampler.DefaultCap,
		RetryCeiling:      sampler.DefaultRetryCeiling,
		TopFormations:     optimizer.MaxFormations,
		RecommendLimit:    recommend.DefaultLimit,
		RecommendMinScore: recommend.DefaultMinScore,
		Weights: Weights{
			Schedule:   w.Schedule,
			Skills:     w.Skills,
			Diversity:  w.Diversity,
			ProjectFit: w.ProjectFit,
			WorkStyle:  w.WorkStyle,
		},
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.RequestTimeoutMS < 1:
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes < 1:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.DefaultTeamSize < 1 || c.MaxTeamSize < 1:
		return fmt.Errorf("%w: team sizes must be positive", ErrInvalidConfig)
	case c.DefaultTeamSize > c.MaxTeamSize:
		return fmt.Errorf("%w: default_team_size %d exceeds max_team_size %d", ErrInvalidConfig, c.DefaultTeamSize, c.MaxTeamSize)
	case c.MaxCandidates < 1:
		return fmt.Errorf("%w: max_candidates must be positive", ErrInvalidConfig)
	case c.SampleCap < 1 || c.SampleCap > sampler.HardCap:
		return fmt.Errorf("%w: sample_cap must be within 1..%d", ErrInvalidConfig, sampler.HardCap)
	case c.RetryCeiling < 1:
		return fmt.Errorf("%w: retry_ceiling must be positive", ErrInvalidConfig)
	case c.TopFormations < 1 || c.TopFormations > optimizer.MaxFormations:
		return fmt.Errorf("%w: top_formations must be within 1..%d", ErrInvalidConfig, optimizer.MaxFormations)
	case c.RecommendLimit < 1:
		return fmt.Errorf("%w: recommend_limit must be positive", ErrInvalidConfig)
	}
	if err := c.Weights.Model().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
