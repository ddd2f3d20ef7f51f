package optimizer

import "github.com/okian/teamfit/internal/domain/model"

// Option applies a configuration option to the Optimizer.
type Option func(*Optimizer)

// WithTeamSize sets the default team size.
func WithTeamSize(size int) Option {
	return func(o *Optimizer) {
		if size > 0 {
			o.teamSize = size
		}
	}
}

// WithWeights sets the default dimension weights.
func WithWeights(w model.Weights) Option {
	return func(o *Optimizer) {
		if w.Validate() == nil {
			o.weights = w
		}
	}
}

// WithSampleCap sets how many distinct subsets are scored per call.
func WithSampleCap(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.sampleCap = n
		}
	}
}

// WithRetryCeiling bounds the sampler's total draws per call.
func WithRetryCeiling(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.retryCeiling = n
		}
	}
}

// WithTopN sets how many formations are returned, between 1 and MaxFormations.
func WithTopN(n int) Option {
	return func(o *Optimizer) {
		if n > 0 && n <= MaxFormations {
			o.topN = n
		}
	}
}

// WithSeed makes sampling reproducible.
func WithSeed(seed uint64) Option {
	return func(o *Optimizer) {
		o.seed = &seed
	}
}
