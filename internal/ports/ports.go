// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The prompt builder and response extractor are pure
// and need no port; everything that talks to a process, a database or a file
// does, so that the query pipeline can be exercised with stubs.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.sqai/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// TextGenerator is a text generation backend: prompt in, text out.
// Implementations wrap a local model runner, a hosted API, or a test double.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFactory builds generators from model definitions.
type GeneratorFactory interface {
	ForModel(domain.ModelDefinition) (TextGenerator, error)
}

// Invoker performs exactly one generation call and never fails outward:
// every failure is reported through the returned result.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, modelID string) domain.GenerationResult
}

// SchemaSource produces the textual schema description injected into prompts.
type SchemaSource interface {
	Describe(ctx context.Context) (string, error)
}

// SchemaCache stores schema descriptions between runs.
type SchemaCache interface {
	Get(key string) (domain.SchemaSnapshot, bool, error)
	Set(domain.SchemaSnapshot) error
}

// GlossarySource produces the metric definitions injected into prompts.
type GlossarySource interface {
	Load(ctx context.Context) (string, error)
}

// QueryExecutor runs extracted SQL against the configured database.
type QueryExecutor interface {
	Run(ctx context.Context, query string, maxRows int) (domain.ResultSet, error)
}

// HistoryRepository persists questions that produced successful queries.
type HistoryRepository interface {
	Save(ctx context.Context, record domain.HistoryRecord) error
	Records(ctx context.Context, limit int, search string) ([]domain.HistoryRecord, error)
	Clear(ctx context.Context) error
	ExportJSON(ctx context.Context, dest string) error
	Path() string
}

// Metrics records pipeline outcomes.
type Metrics interface {
	ObserveGeneration(backend string, ok bool, elapsed time.Duration)
	ObserveExtraction(layout string)
	ObserveExecution(ok bool, rows int)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
