// Package config holds the run configuration for an mftcat invocation and
// the functional options used to build one.
package config

import "github.com/go-logr/logr"

// Config controls one pipeline run: which outputs are produced and how.
type Config struct {
	InputPath string

	CSVOutput      string
	BodyfileOutput string
	JSONOutput     string
	L2TOutput      string

	BodyfileFullPath bool
	BodyfileStdInfo  bool

	ComputeHashes bool
	Debug         bool
	Workers       int

	Logger   logr.Logger
	Progress ProgressFunc
}

// ProgressFunc is called periodically during ingestion with the number of
// records decoded so far.
type ProgressFunc func(recordsDecoded int)

// Option mutates a Config under construction.
type Option func(*Config)

// New builds a Config from the required input path and any options,
// applying defaults for fields no option touches.
func New(inputPath string, opts ...Option) *Config {
	c := &Config{
		InputPath: inputPath,
		Workers:   1,
		Logger:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCSVOutput enables the CSV report at path.
func WithCSVOutput(path string) Option {
	return func(c *Config) { c.CSVOutput = path }
}

// WithBodyfileOutput enables the bodyfile report at path.
func WithBodyfileOutput(path string) Option {
	return func(c *Config) { c.BodyfileOutput = path }
}

// WithJSONOutput enables the JSON lines report at path.
func WithJSONOutput(path string) Option {
	return func(c *Config) { c.JSONOutput = path }
}

// WithL2TOutput enables the L2T-CSV report at path.
func WithL2TOutput(path string) Option {
	return func(c *Config) { c.L2TOutput = path }
}

// WithBodyfileFullPath selects the fully resolved path over the short name
// in bodyfile rows.
func WithBodyfileFullPath(full bool) Option {
	return func(c *Config) { c.BodyfileFullPath = full }
}

// WithBodyfileStdInfo selects STANDARD_INFORMATION timestamps over
// FILE_NAME ones in bodyfile rows.
func WithBodyfileStdInfo(std bool) Option {
	return func(c *Config) { c.BodyfileStdInfo = std }
}

// WithComputeHashes adds MD5/SHA-256/SHA-512/CRC-32 of each raw record to
// every output row.
func WithComputeHashes(enabled bool) Option {
	return func(c *Config) { c.ComputeHashes = enabled }
}

// WithDebug sets Config.Debug. It does not change logging verbosity by
// itself; that is fixed by the logger passed to WithLogger (see
// diag.NewLogger).
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

// WithWorkers sets the decode-stage worker pool size. Values below 1 are
// treated as 1.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n < 1 {
			n = 1
		}
		c.Workers = n
	}
}

// WithLogger sets Config.Logger (logr.Discard() by default). pipeline.Run
// does not log through it.
func WithLogger(l logr.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithProgress registers a callback invoked as records are decoded.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Config) { c.Progress = fn }
}
