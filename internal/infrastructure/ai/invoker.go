package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/ports"
)

// Invoker resolves a model identifier and performs one generation call.
type Invoker struct {
	Factory ports.GeneratorFactory
	Models  []domain.ModelDefinition
	Logger  ports.Logger
	Metrics ports.Metrics
}

// NewInvoker creates an invoker over the configured model definitions.
func NewInvoker(factory ports.GeneratorFactory, models []domain.ModelDefinition, log ports.Logger, metrics ports.Metrics) *Invoker {
	return &Invoker{Factory: factory, Models: models, Logger: log, Metrics: metrics}
}

// Resolve returns the definition named modelID. Unknown identifiers are
// treated as a model for the default command backend, so `--model mistral`
// works without a config entry.
func (i *Invoker) Resolve(modelID string) domain.ModelDefinition {
	for _, model := range i.Models {
		if model.Name == modelID {
			return model
		}
	}
	if modelID == "" && len(i.Models) > 0 {
		return i.Models[0]
	}
	return domain.ModelDefinition{Name: modelID, Backend: domain.BackendCommand, ModelID: modelID}
}

// Invoke sends prompt to the backend for modelID and returns its complete
// output verbatim. It never returns an error or panics: failures to build
// the generator, launch it, or complete the call all come back as a failed
// GenerationResult whose message embeds the cause.
func (i *Invoker) Invoke(ctx context.Context, prompt string, modelID string) (result domain.GenerationResult) {
	model := i.Resolve(modelID)
	backend := model.GetBackend()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = domain.GenerationFailure(fmt.Sprintf("panic during generation: %v", r))
		}
		result.Model = model.GetModelID()
		result.Backend = backend
		i.observe(result, time.Since(start))
	}()

	if i.Factory == nil {
		return domain.GenerationFailure("no generator factory configured")
	}
	gen, err := i.Factory.ForModel(model)
	if err != nil {
		return domain.GenerationFailure(err.Error())
	}
	backend = gen.Name()

	i.debug("calling generator", map[string]interface{}{
		"backend":      backend,
		"model":        model.GetModelID(),
		"prompt_bytes": len(prompt),
	})

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return domain.GenerationFailure(err.Error())
	}
	return domain.GenerationSuccess(text)
}

func (i *Invoker) observe(result domain.GenerationResult, elapsed time.Duration) {
	if i.Metrics != nil {
		i.Metrics.ObserveGeneration(result.Backend, result.OK, elapsed)
	}
	if i.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"backend":    result.Backend,
		"model":      result.Model,
		"elapsed_ms": elapsed.Milliseconds(),
	}
	if result.OK {
		fields["response_bytes"] = len(result.Text)
		i.Logger.Info("generation finished", fields)
		return
	}
	fields["error"] = result.Err
	i.Logger.Warn("generation failed", fields)
}

func (i *Invoker) debug(msg string, fields map[string]interface{}) {
	if i.Logger != nil {
		i.Logger.Debug(msg, fields)
	}
}

var _ ports.Invoker = (*Invoker)(nil)
