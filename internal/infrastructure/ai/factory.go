// Package ai provides the text generation backends and the invoker that
// calls them.
//
// Two backends are supported:
//   - command: runs an external model runner (`ollama run <model> <prompt>`)
//     and captures its standard output
//   - http: posts the prompt to an Ollama-compatible /api/generate endpoint
//
// The Invoker resolves a model identifier to a backend, performs exactly one
// call and converts every failure into a domain.GenerationResult.
package ai

import (
	"fmt"
	"net/http"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/ports"
)

// Factory creates generators from model definitions.
// It maintains a single HTTP client shared across HTTP generators.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new generator factory with a configured HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
	}
}

// ForModel builds the generator for a model definition, wrapped in a retry
// policy when the definition asks for one.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.TextGenerator, error) {
	var gen ports.TextGenerator
	switch model.GetBackend() {
	case domain.BackendCommand:
		gen = NewCommandGenerator(model.GetBinary(), model.GetModelID())
	case domain.BackendHTTP:
		gen = NewHTTPGenerator(model.GetEndpoint(), model.GetModelID(), f.httpClient)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", model.Backend)
	}

	if model.Retries <= 0 {
		return gen, nil
	}
	delay := time.Duration(0)
	if model.RetryDelay != "" {
		parsed, err := time.ParseDuration(model.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("model %s retry_delay: %w", model.Name, err)
		}
		delay = parsed
	}
	return WithRetry(gen, model.Retries, delay), nil
}

var _ ports.GeneratorFactory = (*Factory)(nil)
