// Package diag provides a logr.LogSink for mftcat's human-facing
// diagnostics, colored by severity the way a terminal forensic tool
// typically is.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
)

var (
	infoColor  = color.New(color.FgGreen).SprintFunc()
	debugColor = color.New(color.FgCyan).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
)

// Sink implements logr.LogSink. V(0) is ordinary progress output; V(1)+ is
// debug detail gated on the configured verbosity.
type Sink struct {
	writer    io.Writer
	verbosity int
	name      string
	values    []interface{}
	mu        *sync.Mutex
}

// NewSink creates a Sink writing to w (os.Stdout if nil) at the given
// verbosity ceiling.
func NewSink(w io.Writer, verbosity int) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{writer: w, verbosity: verbosity, mu: &sync.Mutex{}}
}

func (s *Sink) Init(info logr.RuntimeInfo) {}

func (s *Sink) Enabled(level int) bool { return level <= s.verbosity }

func (s *Sink) Info(level int, msg string, keysAndValues ...interface{}) {
	if !s.Enabled(level) {
		return
	}
	label := infoColor("[INFO]")
	if level > 0 {
		label = debugColor("[DEBUG]")
	}
	s.write(label, msg, keysAndValues)
}

func (s *Sink) Error(err error, msg string, keysAndValues ...interface{}) {
	all := append(append([]interface{}{}, keysAndValues...), "error", err)
	s.write(errorColor("[ERROR]"), msg, all)
}

func (s *Sink) write(label, msg string, kv []interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := append(append([]interface{}{}, s.values...), kv...)
	if s.name != "" {
		fmt.Fprintf(s.writer, "%s %s: %s", label, s.name, msg)
	} else {
		fmt.Fprintf(s.writer, "%s %s", label, msg)
	}
	for i := 0; i+1 < len(all); i += 2 {
		fmt.Fprintf(s.writer, " %v=%v", all[i], all[i+1])
	}
	fmt.Fprintln(s.writer)
}

func (s *Sink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return &Sink{
		writer:    s.writer,
		verbosity: s.verbosity,
		name:      s.name,
		values:    append(append([]interface{}{}, s.values...), keysAndValues...),
		mu:        s.mu,
	}
}

func (s *Sink) WithName(name string) logr.LogSink {
	newName := name
	if s.name != "" {
		newName = s.name + "." + name
	}
	return &Sink{
		writer:    s.writer,
		verbosity: s.verbosity,
		name:      newName,
		values:    append([]interface{}{}, s.values...),
		mu:        s.mu,
	}
}

func (s *Sink) V(level int) logr.LogSink {
	// logr applies V() by adding to the call's level at the Info call
	// site, not here; Sink doesn't need a distinct branch, it just reuses
	// the same writer/verbosity under the level check in Info.
	return s
}

var _ logr.LogSink = (*Sink)(nil)
