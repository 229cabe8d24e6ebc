package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSinkRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.V(1).Info("hidden debug detail")
	if buf.Len() != 0 {
		t.Fatalf("expected debug output suppressed at default verbosity, got %q", buf.String())
	}

	logger.Info("visible info", "records", 5)
	if !strings.Contains(buf.String(), "visible info") || !strings.Contains(buf.String(), "records=5") {
		t.Fatalf("missing expected info output, got %q", buf.String())
	}
}

func TestSinkDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)
	logger.V(1).Info("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug output at debug verbosity, got %q", buf.String())
	}
}

func TestSinkError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Error(errors.New("boom"), "decode failed")
	if !strings.Contains(buf.String(), "decode failed") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("missing expected error output, got %q", buf.String())
	}
}

func TestSinkWithNameAndValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false).WithName("pipeline").WithValues("run", 1)
	logger.Info("starting")
	out := buf.String()
	if !strings.Contains(out, "pipeline") || !strings.Contains(out, "run=1") {
		t.Fatalf("missing name/values in output, got %q", out)
	}
}
