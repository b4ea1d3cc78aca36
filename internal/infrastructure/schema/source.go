package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/ports"
)

type foreignKey struct {
	column    string
	refTable  string
	refColumn string
}

// formatForeignKeys renders keys as lines appended after a table's DDL.
// No keys renders nothing.
func formatForeignKeys(keys []foreignKey) string {
	if len(keys) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, fk := range keys {
		fmt.Fprintf(&b, "  , FOREIGN KEY (%s) REFERENCES %s(%s)\n", fk.column, fk.refTable, fk.refColumn)
	}
	return b.String()
}

// ForDriver picks the describer for the configured driver.
func ForDriver(db *sql.DB, settings domain.DatabaseSettings) (ports.SchemaSource, error) {
	switch settings.Driver {
	case "", domain.DriverMySQL:
		return NewMySQLDDL(db, settings.Schema), nil
	case domain.DriverPostgres:
		return NewPostgresListing(db, settings.Schema), nil
	default:
		return nil, fmt.Errorf("no schema describer for driver %q", settings.Driver)
	}
}

// Cached serves descriptions from cache, falling back to next on a miss.
// Cache failures are never fatal; the source is simply asked again.
type Cached struct {
	next     ports.SchemaSource
	cache    ports.SchemaCache
	key      string
	settings domain.DatabaseSettings
	refresh  bool
}

// NewCached wraps next. With refresh set the cache is written but never read.
func NewCached(next ports.SchemaSource, cache ports.SchemaCache, key string, settings domain.DatabaseSettings, refresh bool) *Cached {
	return &Cached{next: next, cache: cache, key: key, settings: settings, refresh: refresh}
}

// Describe implements ports.SchemaSource.
func (c *Cached) Describe(ctx context.Context) (string, error) {
	if !c.refresh {
		if snap, ok, err := c.cache.Get(c.key); err == nil && ok {
			return snap.DDL, nil
		}
	}
	ddl, err := c.next.Describe(ctx)
	if err != nil {
		return "", err
	}
	_ = c.cache.Set(domain.SchemaSnapshot{
		Key:      c.key,
		Driver:   c.settings.Driver,
		Database: c.settings.Schema,
		DDL:      ddl,
	})
	return ddl, nil
}

var _ ports.SchemaSource = (*Cached)(nil)
