// Package ntfscat is the library entry point for parsing an $MFT image,
// analogous to the teacher tool's own Recover functions: a single call
// plus a handful of functional options, with no dependency on cmd/mftcat's
// flag struct. cmd/mftcat and cmd/mftcat-tui both go through this package
// rather than calling internal/pipeline directly, so non-CLI callers have
// the same surface the two shipped binaries use.
package ntfscat

import (
	"context"

	"github.com/shubham/mftcat/internal/config"
	"github.com/shubham/mftcat/internal/pipeline"
)

// Option configures a Run call. It's an alias for config.Option so the two
// packages share one set of With* constructors instead of two parallel
// ones that would drift.
type Option = config.Option

// Output and behavior options, re-exported from internal/config so callers
// never need to import it directly.
var (
	WithCSVOutput        = config.WithCSVOutput
	WithBodyfileOutput   = config.WithBodyfileOutput
	WithJSONOutput       = config.WithJSONOutput
	WithL2TOutput        = config.WithL2TOutput
	WithBodyfileFullPath = config.WithBodyfileFullPath
	WithBodyfileStdInfo  = config.WithBodyfileStdInfo
	WithComputeHashes    = config.WithComputeHashes
	WithDebug            = config.WithDebug
	WithWorkers          = config.WithWorkers
	WithLogger           = config.WithLogger
	WithProgress         = config.WithProgress
)

// Run parses the $MFT image at inputPath and writes whichever reports opts
// enabled, following the pipeline described in internal/pipeline: stream,
// decode, resolve paths, emit. It returns once the run completes, is
// cancelled via ctx, or fails outright.
func Run(ctx context.Context, inputPath string, opts ...Option) (pipeline.Stats, error) {
	cfg := config.New(inputPath, opts...)
	return pipeline.Run(ctx, cfg)
}
