package diag

import (
	"io"

	"github.com/go-logr/logr"
)

// NewLogger builds a ready-to-use logr.Logger. verbosity 0 only prints
// Info(0)/Error calls; debug raises it to 1.
func NewLogger(w io.Writer, debug bool) logr.Logger {
	verbosity := 0
	if debug {
		verbosity = 1
	}
	return logr.New(NewSink(w, verbosity))
}
