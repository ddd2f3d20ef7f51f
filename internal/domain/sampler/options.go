package sampler

import "math/rand/v2"

// Option applies a configuration option to a sampling call.
type Option func(*config)

// WithCap sets the maximum number of distinct subsets returned. Values
// below one fall back to DefaultCap; values above HardCap are clamped.
func WithCap(n int) Option {
	return func(c *config) {
		switch {
		case n < 1:
			c.cap = DefaultCap
		case n > HardCap:
			c.cap = HardCap
		default:
			c.cap = n
		}
	}
}

// WithRetryCeiling bounds the total number of draws, duplicates included.
func WithRetryCeiling(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.retryCeiling = n
		}
	}
}

// WithSeed makes the call reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithSource draws from src. The source must not be shared with other
// concurrent calls.
func WithSource(src rand.Source) Option {
	return func(c *config) {
		if src != nil {
			c.source = src
		}
	}
}
