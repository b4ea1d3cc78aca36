package domain

import "time"

// SchemaSnapshot is a cached schema description for one database.
type SchemaSnapshot struct {
	Key       string    `json:"key"`
	Driver    string    `json:"driver"`
	Database  string    `json:"database"`
	DDL       string    `json:"ddl"`
	CreatedAt time.Time `json:"created_at"`
}
