package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if cfg.Preferences.DefaultModel != "" {
		if !cfg.HasModel(cfg.Preferences.DefaultModel) {
			return fmt.Errorf("default model %s not found in models list", cfg.Preferences.DefaultModel)
		}
	}
	seen := make(map[string]bool, len(cfg.Models))
	for _, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return err
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s declared twice", model.Name)
		}
		seen[model.Name] = true
	}
	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}
	if cfg.Preferences.MaxRows < 0 {
		return fmt.Errorf("preferences.max_rows must be >= 0")
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	return nil
}

func validateModel(model domain.ModelDefinition) error {
	if model.Name == "" {
		return errors.New("models[].name must be set")
	}
	switch model.GetBackend() {
	case domain.BackendCommand, domain.BackendHTTP:
	default:
		return fmt.Errorf("model %s: backend must be command|http, got %s", model.Name, model.Backend)
	}
	if model.Retries < 0 {
		return fmt.Errorf("model %s: retries must be >= 0", model.Name)
	}
	if model.RetryDelay != "" {
		if _, err := time.ParseDuration(model.RetryDelay); err != nil {
			return fmt.Errorf("model %s: retry_delay invalid: %w", model.Name, err)
		}
	}
	return nil
}

func validateDatabase(db domain.DatabaseSettings) error {
	switch db.Driver {
	case "", domain.DriverMySQL, domain.DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be mysql|postgres, got %s", db.Driver)
	}
	if db.SchemaCacheTTL != "" {
		if _, err := time.ParseDuration(db.SchemaCacheTTL); err != nil {
			return fmt.Errorf("database.schema_cache_ttl invalid: %w", err)
		}
	}
	return nil
}
