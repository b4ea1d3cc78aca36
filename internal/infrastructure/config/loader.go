package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/sqai-go/assets"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/pkg/filesystem"
	"github.com/doeshing/sqai-go/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "SQAI_CONFIG"

// FileLoader loads YAML configuration from ~/.sqai/config.yaml (overridable via SQAI_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Parse decodes YAML config and fills defaults.
func Parse(data []byte) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Default returns the embedded default configuration.
func Default() domain.Config {
	cfg, err := Parse(assets.DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// Marshal renders cfg as YAML.
func Marshal(cfg domain.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Save writes cfg to the config file.
func (l *FileLoader) Save(cfg domain.Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, domain.SecureFilePermissions)
}

// Backup copies the current config file next to itself with a timestamp
// suffix and returns the backup path.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read config for backup: %w", err)
	}
	dest := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(dest, data, domain.SecureFilePermissions); err != nil {
		return "", fmt.Errorf("write config backup: %w", err)
	}
	return dest, nil
}

// Reset overwrites the config file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	if err := writeDefault(l.Path()); err != nil {
		return domain.Config{}, err
	}
	return Default(), nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = domain.DefaultTimeoutSeconds
	}
	if cfg.Preferences.MaxRows == 0 {
		cfg.Preferences.MaxRows = domain.DefaultMaxRows
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = domain.DriverMySQL
	}
	if cfg.Preferences.Dialect == "" {
		cfg.Preferences.Dialect = dialectFor(cfg.Database.Driver)
	}
	if cfg.Glossary.Path == "" {
		cfg.Glossary.Path = filepath.Join(filesystem.AppDir(), "kpi_definitions.md")
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(filesystem.AppDir(), "history", "history.db")
	}
	cfg.Glossary.Path = filesystem.ExpandPath(cfg.Glossary.Path)
	cfg.History.Path = filesystem.ExpandPath(cfg.History.Path)
	cfg.Metrics.Textfile = filesystem.ExpandPath(cfg.Metrics.Textfile)
	return cfg
}

func dialectFor(driver string) string {
	if driver == domain.DriverPostgres {
		return "PostgreSQL"
	}
	return "MySQL"
}

// ResolveDSN returns the configured DSN, preferring the environment variable
// named by dsn_env.
func ResolveDSN(db domain.DatabaseSettings) string {
	if db.DSNEnv != "" {
		if value := os.Getenv(db.DSNEnv); value != "" {
			return value
		}
	}
	return db.DSN
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
