package ai

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeRunner creates a fake model runner script that behaves like
// `ollama run <model> <prompt>`.
func writeRunner(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell runner scripts are not supported on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "fake-ollama")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write runner: %v", err)
	}
	return path
}

func TestCommandGeneratorPassesModelAndPrompt(t *testing.T) {
	runner := writeRunner(t, `printf '%s|%s|%s' "$1" "$2" "$3"`)
	gen := NewCommandGenerator(runner, "llama3.2")

	out, err := gen.Generate(context.Background(), "multi\nline prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "run|llama3.2|multi\nline prompt" {
		t.Fatalf("Generate() = %q", out)
	}
}

func TestCommandGeneratorKeepsOutputUntrimmed(t *testing.T) {
	runner := writeRunner(t, `printf '\n  SELECT 1;  \n\n'`)
	out, err := NewCommandGenerator(runner, "m").Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "\n  SELECT 1;  \n\n" {
		t.Fatalf("Generate() = %q", out)
	}
}

func TestCommandGeneratorNonZeroExit(t *testing.T) {
	runner := writeRunner(t, `echo "model not found" >&2; exit 3`)
	_, err := NewCommandGenerator(runner, "m").Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error on non-zero exit")
	}
	if !strings.Contains(err.Error(), "code 3") || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("error = %v", err)
	}
}

func TestCommandGeneratorLaunchFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-runner")
	_, err := NewCommandGenerator(missing, "m").Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("expected launch failure")
	}
}

func TestCommandGeneratorName(t *testing.T) {
	if got := NewCommandGenerator("/usr/local/bin/ollama", "m").Name(); got != "ollama" {
		t.Fatalf("Name() = %q", got)
	}
}
