package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doeshing/sqai-go/internal/ports"
)

const (
	postgresColumns = `SELECT table_name, column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = $1
ORDER BY table_name, ordinal_position`

	postgresForeignKeys = `SELECT kcu.table_name, kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1
ORDER BY kcu.table_name, kcu.ordinal_position`
)

// PostgresListing describes a PostgreSQL schema as synthesized CREATE TABLE
// statements built from information_schema, since PostgreSQL has no
// SHOW CREATE TABLE.
type PostgresListing struct {
	db     *sql.DB
	schema string
}

// NewPostgresListing describes schema ("public" when empty).
func NewPostgresListing(db *sql.DB, schema string) *PostgresListing {
	if schema == "" {
		schema = "public"
	}
	return &PostgresListing{db: db, schema: schema}
}

type pgTable struct {
	name    string
	columns []string
}

// Describe implements ports.SchemaSource.
func (p *PostgresListing) Describe(ctx context.Context) (string, error) {
	tables, err := p.columns(ctx)
	if err != nil {
		return "", err
	}
	keys, err := p.foreignKeys(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		ddl := "CREATE TABLE " + table.name + " (\n  " + strings.Join(table.columns, ",\n  ") + "\n)"
		parts = append(parts, ddl+formatForeignKeys(keys[table.name]))
	}
	return strings.Join(parts, "\n"), nil
}

func (p *PostgresListing) columns(ctx context.Context) ([]pgTable, error) {
	rows, err := p.db.QueryContext(ctx, postgresColumns, p.schema)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()
	var tables []pgTable
	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return nil, err
		}
		if len(tables) == 0 || tables[len(tables)-1].name != table {
			tables = append(tables, pgTable{name: table})
		}
		def := column + " " + dataType
		if nullable == "NO" {
			def += " NOT NULL"
		}
		last := &tables[len(tables)-1]
		last.columns = append(last.columns, def)
	}
	return tables, rows.Err()
}

func (p *PostgresListing) foreignKeys(ctx context.Context) (map[string][]foreignKey, error) {
	rows, err := p.db.QueryContext(ctx, postgresForeignKeys, p.schema)
	if err != nil {
		return nil, fmt.Errorf("list foreign keys: %w", err)
	}
	defer rows.Close()
	keys := make(map[string][]foreignKey)
	for rows.Next() {
		var table string
		var fk foreignKey
		if err := rows.Scan(&table, &fk.column, &fk.refTable, &fk.refColumn); err != nil {
			return nil, err
		}
		keys[table] = append(keys[table], fk)
	}
	return keys, rows.Err()
}

var _ ports.SchemaSource = (*PostgresListing)(nil)
