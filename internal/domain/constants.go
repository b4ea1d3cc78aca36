package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultTimeoutSeconds bounds a whole ask run, generation included
	DefaultTimeoutSeconds = 120
	// DefaultPingTimeout is how long a database ping may take
	DefaultPingTimeout = 5 * time.Second
	// DefaultHTTPClientTimeout is the timeout for HTTP generation requests
	DefaultHTTPClientTimeout = 5 * time.Minute
	// DefaultSchemaCacheTTL is how long a described schema is reused
	DefaultSchemaCacheTTL = time.Hour
	// DefaultModelTestTimeout bounds `models test`
	DefaultModelTestTimeout = 60 * time.Second
)

// Limit constants
const (
	// DefaultMaxRows is the default number of result rows kept for display
	DefaultMaxRows = 200
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// HistoryQuestionWidth is where history listings truncate questions
	HistoryQuestionWidth = 50
	// DefaultSchemaCacheEntries bounds the number of cached schema snapshots
	DefaultSchemaCacheEntries = 20
)

// Database drivers accepted in DatabaseSettings.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// ClockFormat is used for compact history listings
	ClockFormat = "15:04:05"
)
