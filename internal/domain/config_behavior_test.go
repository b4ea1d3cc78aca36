package domain_test

import (
	"testing"

	"github.com/doeshing/sqai-go/internal/domain"
)

func sampleConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "local"},
		Models: []domain.ModelDefinition{
			{Name: "local", ModelID: "llama3.2"},
			{Name: "coder", Backend: domain.BackendHTTP, ModelID: "sqlcoder"},
		},
	}
}

func TestConfig_AddModel(t *testing.T) {
	cfg := sampleConfig()
	if err := cfg.AddModel(domain.ModelDefinition{Name: "mistral"}); err != nil {
		t.Fatalf("AddModel() error = %v", err)
	}
	if !cfg.HasModel("mistral") {
		t.Fatal("model not added")
	}
	if err := cfg.AddModel(domain.ModelDefinition{Name: "local"}); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestConfig_RemoveModel(t *testing.T) {
	tests := []struct {
		name        string
		remove      string
		wantErr     bool
		wantDefault string
		wantCount   int
	}{
		{name: "non-default model", remove: "coder", wantDefault: "local", wantCount: 1},
		{name: "default model promotes next", remove: "local", wantDefault: "coder", wantCount: 1},
		{name: "unknown model", remove: "gone", wantErr: true, wantDefault: "local", wantCount: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			err := cfg.RemoveModel(tt.remove)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RemoveModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Preferences.DefaultModel != tt.wantDefault {
				t.Errorf("DefaultModel = %q, want %q", cfg.Preferences.DefaultModel, tt.wantDefault)
			}
			if len(cfg.Models) != tt.wantCount {
				t.Errorf("len(Models) = %d, want %d", len(cfg.Models), tt.wantCount)
			}
		})
	}

	cfg := domain.Config{Preferences: domain.Preferences{DefaultModel: "only"}, Models: []domain.ModelDefinition{{Name: "only"}}}
	if err := cfg.RemoveModel("only"); err != nil {
		t.Fatal(err)
	}
	if cfg.Preferences.DefaultModel != "" {
		t.Fatalf("DefaultModel = %q after removing last model", cfg.Preferences.DefaultModel)
	}
}

func TestConfig_SetDefaultModel(t *testing.T) {
	cfg := sampleConfig()
	if err := cfg.SetDefaultModel("coder"); err != nil {
		t.Fatalf("SetDefaultModel() error = %v", err)
	}
	if cfg.Preferences.DefaultModel != "coder" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
	if err := cfg.SetDefaultModel("missing"); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestModelDefinitionDefaults(t *testing.T) {
	var m domain.ModelDefinition
	if m.GetBackend() != domain.BackendCommand || m.GetBinary() != "ollama" ||
		m.GetEndpoint() != domain.DefaultOllamaEndpoint || m.GetModelID() != domain.DefaultGeneratorModel {
		t.Fatalf("zero-value defaults = %s %s %s %s", m.GetBackend(), m.GetBinary(), m.GetEndpoint(), m.GetModelID())
	}
	m.Name = "mistral"
	if m.GetModelID() != "mistral" {
		t.Fatalf("GetModelID() = %q, want name fallback", m.GetModelID())
	}
}
