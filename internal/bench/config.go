package bench

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/okian/teamfit/internal/domain/model"
)

// Defaults for a bench run.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultRequests = 200
	DefaultPoolSize = 30
	DefaultTeamSize = 5
	DefaultTimeout  = 30 * time.Second
)

// Config holds configuration for a bench run.
type Config struct {
	BaseURL  string        `yaml:"baseURL"`
	Requests int           `yaml:"requests"`
	Workers  int           `yaml:"workers"`
	Timeout  time.Duration `yaml:"timeout"`
	Seed     uint64        `yaml:"seed"`
	Verbose  bool          `yaml:"verbose"`

	Pool Scenario `yaml:"pool"`
}

// Scenario describes the candidate pools sent with every request.
type Scenario struct {
	Size      int                   `yaml:"size"`
	TeamSize  int                   `yaml:"teamSize"`
	Faculties []string              `yaml:"faculties"`
	Skills    []string              `yaml:"skills"`
	Interests []string              `yaml:"interests"`
	Project   *model.ProjectContext `yaml:"project"`
}

// DefaultConfig returns a runnable configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Requests: DefaultRequests,
		Workers:  4,
		Timeout:  DefaultTimeout,
		Pool: Scenario{
			Size:      DefaultPoolSize,
			TeamSize:  DefaultTeamSize,
			Faculties: []string{"engineering", "design", "business", "science", "arts"},
			Skills:    []string{"go", "frontend", "ml", "ux", "pitching", "data"},
			Interests: []string{"climate", "health", "education", "fintech", "games"},
		},
	}
}

// LoadScenario overlays the YAML file at path on top of cfg.
func LoadScenario(path string, cfg Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrScenario, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrScenario, path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: baseURL is required", ErrScenario)
	case c.Requests <= 0:
		return fmt.Errorf("%w: requests must be positive", ErrScenario)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrScenario)
	case c.Pool.Size < 0:
		return fmt.Errorf("%w: pool size must not be negative", ErrScenario)
	case c.Pool.TeamSize <= 0:
		return fmt.Errorf("%w: teamSize must be positive", ErrScenario)
	case len(c.Pool.Faculties) == 0:
		return fmt.Errorf("%w: at least one faculty is required", ErrScenario)
	}
	return nil
}
