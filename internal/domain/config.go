package domain

// Config mirrors ~/.sqai/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Database            DatabaseSettings  `yaml:"database"`
	Glossary            GlossarySettings  `yaml:"glossary"`
	History             HistorySettings   `yaml:"history"`
	Metrics             MetricsSettings   `yaml:"metrics"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	Dialect        string `yaml:"dialect"`
	TimeoutSeconds int    `yaml:"timeout"`
	MaxRows        int    `yaml:"max_rows"`
	AutoExecute    bool   `yaml:"auto_execute"`
}

// DatabaseSettings describes the database questions are asked against.
type DatabaseSettings struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	DSNEnv string `yaml:"dsn_env"`
	// Schema is the database (MySQL) or schema (PostgreSQL) to describe.
	// Empty means the connection default.
	Schema string `yaml:"schema"`
	// SchemaCacheTTL keeps described schemas on disk for this long ("0" disables).
	SchemaCacheTTL string `yaml:"schema_cache_ttl"`
}

// GlossarySettings points at the metric definitions document.
type GlossarySettings struct {
	Path string `yaml:"path"`
}

// HistorySettings controls the query history store.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsSettings configures the Prometheus textfile written after each run.
type MetricsSettings struct {
	Textfile string `yaml:"textfile"`
}
