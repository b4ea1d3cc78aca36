package config

import (
	"strings"
	"testing"

	"github.com/doeshing/sqai-go/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "local"},
		Models:      []domain.ModelDefinition{{Name: "local", ModelID: "llama3.2"}},
		Database:    domain.DatabaseSettings{Driver: domain.DriverMySQL},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "no models", mutate: func(c *domain.Config) { c.Models = nil }, wantErr: "at least one model"},
		{name: "unknown default", mutate: func(c *domain.Config) { c.Preferences.DefaultModel = "gone" }, wantErr: "not found"},
		{name: "bad backend", mutate: func(c *domain.Config) { c.Models[0].Backend = "grpc" }, wantErr: "backend must be"},
		{name: "bad retry delay", mutate: func(c *domain.Config) { c.Models[0].RetryDelay = "later" }, wantErr: "retry_delay"},
		{name: "negative retries", mutate: func(c *domain.Config) { c.Models[0].Retries = -1 }, wantErr: "retries"},
		{name: "duplicate model", mutate: func(c *domain.Config) { c.Models = append(c.Models, c.Models[0]) }, wantErr: "twice"},
		{name: "bad driver", mutate: func(c *domain.Config) { c.Database.Driver = "oracle" }, wantErr: "database.driver"},
		{name: "bad cache ttl", mutate: func(c *domain.Config) { c.Database.SchemaCacheTTL = "soon" }, wantErr: "schema_cache_ttl"},
		{name: "unnamed model", mutate: func(c *domain.Config) {
			c.Preferences.DefaultModel = ""
			c.Models[0].Name = ""
		}, wantErr: "name must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
