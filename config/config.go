// Package config holds the explicit, per-invocation configuration threaded
// through every compilation pass, replacing process-wide globals.
//
// Config is built with a functional-options idiom (the same shape as
// GraphOption/EdgeOption in lvlath's core package, BuilderOption in
// lvlath's builder package): a struct, a slice of Option funcs
// applied in order, and a constructor that seeds sensible defaults before
// applying them.
package config

import "os"

// FormatVersion is written into the ".valid" sentinel stored beside every
// cached artifact (see cache.Cache). A mismatch against a cached
// artifact's sentinel forces regeneration.
const FormatVersion = 1

// Option configures a Config before it is handed to the compilation
// passes. As a rule, option constructors never panic and ignore nil
// inputs.
type Option func(*Config)

// Config is the per-invocation configuration threaded through the DFT
// rewriter, node-automata library, sync-rule composer, modularizer, and
// back-end adapters. A Config is built once per compilation and treated
// as read-only afterwards; it carries no mutable shared state.
type Config struct {
	// ArtifactRoot is the cache directory root.
	ArtifactRoot string

	// DefaultErrorBound is the approximation error epsilon used by
	// approximate back-end adapters when a query does not specify one.
	DefaultErrorBound float64

	// WarnAsError promotes warnings to a non-zero exit status.
	WarnAsError bool

	// CheckerEnv maps a back-end name ("mrmc", "imca", "storm") to the
	// environment variable that locates its installation.
	CheckerEnv map[string]string
}

// New returns a Config seeded with defaults, then applies opts in order.
// Later options override earlier ones.
func New(opts ...Option) *Config {
	cfg := &Config{
		ArtifactRoot:      "." + string(os.PathSeparator) + "dftcache",
		DefaultErrorBound: 1e-6,
		CheckerEnv: map[string]string{
			"mrmc":  "MRMC",
			"imca":  "IMCA",
			"storm": "STORM",
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithArtifactRoot overrides the cache directory root.
func WithArtifactRoot(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.ArtifactRoot = path
		}
	}
}

// WithDefaultErrorBound overrides the default approximation error bound.
func WithDefaultErrorBound(eps float64) Option {
	return func(c *Config) {
		if eps > 0 {
			c.DefaultErrorBound = eps
		}
	}
}

// WithWarnAsError promotes warnings to errors for exit-status purposes.
func WithWarnAsError() Option {
	return func(c *Config) { c.WarnAsError = true }
}

// WithCheckerEnvVar overrides the environment variable used to locate a
// named back-end's installation.
func WithCheckerEnvVar(backend, envVar string) Option {
	return func(c *Config) {
		if backend == "" || envVar == "" {
			return
		}
		if c.CheckerEnv == nil {
			c.CheckerEnv = make(map[string]string)
		}
		c.CheckerEnv[backend] = envVar
	}
}

// FromEnvironment returns an Option that seeds ArtifactRoot from the
// ARTIFACT_ROOT environment variable. This is the only place in the
// module environment lookups are permitted; passes downstream of startup
// must not consult the environment directly.
func FromEnvironment() Option {
	return func(c *Config) {
		if root, ok := os.LookupEnv("ARTIFACT_ROOT"); ok && root != "" {
			c.ArtifactRoot = root
		}
	}
}
