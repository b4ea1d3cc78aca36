package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doeshing/sqai-go/internal/ports"
)

// CommandGenerator runs `<binary> run <model> <prompt>` and returns its
// standard output verbatim.
type CommandGenerator struct {
	binary string
	model  string
}

// NewCommandGenerator builds a generator around an external model runner.
func NewCommandGenerator(binary, model string) *CommandGenerator {
	return &CommandGenerator{binary: binary, model: model}
}

// Name reports the runner executable, e.g. "ollama".
func (g *CommandGenerator) Name() string {
	return filepath.Base(g.binary)
}

// Generate blocks until the process exits. A non-zero exit is a failure even
// when the process wrote to stdout.
func (g *CommandGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	c := exec.CommandContext(ctx, g.binary, "run", g.model, prompt)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if detail := strings.TrimSpace(stderr.String()); detail != "" {
				return "", fmt.Errorf("%s exited with code %d: %s", g.Name(), exitErr.ExitCode(), detail)
			}
			return "", fmt.Errorf("%s exited with code %d", g.Name(), exitErr.ExitCode())
		}
		return "", err
	}
	return stdout.String(), nil
}

var _ ports.TextGenerator = (*CommandGenerator)(nil)
