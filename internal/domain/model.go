// Package domain defines core entities and value objects for SQAI.
//
// This file contains the text generation backend definitions. A model
// definition names a backend (an external command or an HTTP endpoint) and
// the model it should run, so the prompt format never has to change when the
// backend does.
package domain

// Backend kinds accepted in ModelDefinition.Backend.
const (
	BackendCommand = "command"
	BackendHTTP    = "http"
)

// Defaults for the command backend.
const (
	DefaultGeneratorBinary = "ollama"
	DefaultGeneratorModel  = "llama3.2"
	DefaultOllamaEndpoint  = "http://localhost:11434"
)

// ModelDefinition describes a generation backend declared in the config file.
type ModelDefinition struct {
	Name    string `yaml:"name"`
	Backend string `yaml:"backend"`
	// Binary is the executable run by the command backend ("ollama" by default).
	Binary string `yaml:"binary,omitempty"`
	// Endpoint is the base URL of the HTTP backend.
	Endpoint string `yaml:"endpoint,omitempty"`
	ModelID  string `yaml:"model_id"`
	// Retries is the number of additional attempts after a failed call.
	Retries    int    `yaml:"retries,omitempty"`
	RetryDelay string `yaml:"retry_delay,omitempty"`
}

// GetBackend returns the backend kind with default fallback.
func (m ModelDefinition) GetBackend() string {
	if m.Backend == "" {
		return BackendCommand
	}
	return m.Backend
}

// GetBinary returns the command backend executable with default fallback.
func (m ModelDefinition) GetBinary() string {
	if m.Binary == "" {
		return DefaultGeneratorBinary
	}
	return m.Binary
}

// GetEndpoint returns the HTTP backend base URL with default fallback.
func (m ModelDefinition) GetEndpoint() string {
	if m.Endpoint == "" {
		return DefaultOllamaEndpoint
	}
	return m.Endpoint
}

// GetModelID returns the model to run, falling back to the definition name.
func (m ModelDefinition) GetModelID() string {
	if m.ModelID != "" {
		return m.ModelID
	}
	if m.Name != "" {
		return m.Name
	}
	return DefaultGeneratorModel
}
