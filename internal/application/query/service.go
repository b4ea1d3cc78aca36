package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/extract"
	"github.com/doeshing/sqai-go/internal/ports"
	"github.com/doeshing/sqai-go/internal/prompt"
)

// DiagnosticPrefix starts the explanation returned when generation fails.
const DiagnosticPrefix = "Error calling"

// ErrNoSQL reports a response from which no SQL statement could be extracted.
var ErrNoSQL = errors.New("no SQL statement found in the model response")

// ErrSchemaUnavailable wraps failures describing the database schema.
var ErrSchemaUnavailable = errors.New("describe schema")

// ExecutionError wraps a failure running extracted SQL. The response that
// produced the SQL is still returned alongside it.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return "Error executing SQL: " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Service orchestrates the query lifecycle end-to-end.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Schema         ports.SchemaSource
	Glossary       ports.GlossarySource
	Invoker        ports.Invoker
	Executor       ports.QueryExecutor
	History        ports.HistoryRepository
	Metrics        ports.Metrics
	Logger         ports.Logger
}

// Translate runs the core pipeline: build the prompt, make one generation
// call and extract SQL and explanation. It never fails; a failed call comes
// back with empty SQL and an explanation starting with DiagnosticPrefix.
func (s *Service) Translate(ctx context.Context, builder *prompt.Builder, question, schema, glossary, modelID string) domain.QueryResponse {
	if builder == nil {
		builder = prompt.New()
	}
	text := builder.Build(question, schema, glossary)
	resp := domain.QueryResponse{Question: question, Prompt: text}

	result := s.Invoker.Invoke(ctx, text, modelID)
	resp.Model = result.Model
	resp.Backend = result.Backend
	if !result.OK {
		resp.GenerationFailed = true
		resp.RawResponse = result.Err
		resp.Explanation = fmt.Sprintf("%s %s via %s: %s", DiagnosticPrefix, result.Model, result.Backend, result.Err)
		return resp
	}

	layout := extract.Classify(result.Text)
	resp.RawResponse = result.Text
	resp.Layout = layout.String()
	ext := extract.Response(result.Text)
	resp.SQL = ext.SQL
	resp.Explanation = ext.Explanation
	if s.Metrics != nil {
		s.Metrics.ObserveExtraction(resp.Layout)
	}
	return resp
}

// Ask answers one question against the configured database.
//
// Generation failures are not errors: the returned response carries the
// diagnostic explanation and GenerationFailed. Errors are reserved for
// collaborators that could not run (config, schema, glossary) and for SQL
// that failed to execute.
func (s *Service) Ask(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.ConfigProvider == nil || s.Schema == nil || s.Glossary == nil || s.Invoker == nil {
		return domain.QueryResponse{}, errors.New("query.Service dependencies not satisfied")
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("load config: %w", err)
	}

	schema, err := s.Schema.Describe(ctx)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("%w: %w", ErrSchemaUnavailable, err)
	}
	glossary, err := s.Glossary.Load(ctx)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("load glossary: %w", err)
	}

	modelID := PickModel(cfg, req.ModelOverride)
	builder := prompt.New(prompt.WithDialect(cfg.Preferences.Dialect))
	resp := s.Translate(ctx, builder, req.Question, schema, glossary, modelID)
	if resp.GenerationFailed || req.DryRun {
		return resp, nil
	}
	if resp.SQL == "" {
		return resp, ErrNoSQL
	}
	if s.Executor == nil {
		return resp, nil
	}

	maxRows := req.MaxRows
	if maxRows == 0 {
		maxRows = cfg.Preferences.MaxRows
	}
	result, err := s.Executor.Run(ctx, resp.SQL, maxRows)
	if s.Metrics != nil {
		s.Metrics.ObserveExecution(err == nil, len(result.Rows))
	}
	if err != nil {
		s.logWarn("query execution failed", map[string]interface{}{"error": err.Error()})
		return resp, &ExecutionError{Err: err}
	}
	resp.Result = &result

	if s.History != nil && cfg.History.Enabled {
		record := domain.HistoryRecord{
			Timestamp: time.Now(),
			Question:  req.Question,
			SQL:       resp.SQL,
			Model:     resp.Model,
			RowCount:  len(result.Rows),
		}
		if err := s.History.Save(ctx, record); err != nil {
			s.logWarn("history save failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return resp, nil
}

// Prompt returns the prompt Ask would send for question, without calling a
// backend.
func (s *Service) Prompt(ctx context.Context, question string) (string, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	schema, err := s.Schema.Describe(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSchemaUnavailable, err)
	}
	glossary, err := s.Glossary.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load glossary: %w", err)
	}
	return prompt.New(prompt.WithDialect(cfg.Preferences.Dialect)).Build(question, schema, glossary), nil
}

// PickModel returns the model identifier to use for a request.
func PickModel(cfg domain.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.Preferences.DefaultModel != "" {
		return cfg.Preferences.DefaultModel
	}
	if len(cfg.Models) > 0 {
		return cfg.Models[0].Name
	}
	return ""
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, fields)
	}
}
