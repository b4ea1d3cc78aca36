package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerSilentUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Info("hidden", map[string]interface{}{"k": "v"})
	l.Error("hidden", errors.New("x"), nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestStdLoggerWritesFieldsInOrder(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.Warn("generation failed", map[string]interface{}{"model": "llama3.2", "backend": "ollama"})
	l.Error("save history", errors.New("disk full"), nil)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, `msg="generation failed"`) {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Index(out, "backend=ollama") > strings.Index(out, "model=llama3.2") {
		t.Fatalf("fields not sorted: %q", out)
	}
	if !strings.Contains(out, `error="disk full"`) {
		t.Fatalf("error not recorded: %q", out)
	}
}
