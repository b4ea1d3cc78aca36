// Package schema describes the target database as text for prompting.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doeshing/sqai-go/internal/ports"
)

const mysqlForeignKeys = `SELECT CONSTRAINT_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND REFERENCED_TABLE_NAME IS NOT NULL
ORDER BY ORDINAL_POSITION`

// MySQLDDL describes a MySQL database as its CREATE TABLE statements, each
// followed by its foreign keys.
type MySQLDDL struct {
	db       *sql.DB
	database string
}

// NewMySQLDDL describes database, or the connection default when empty.
func NewMySQLDDL(db *sql.DB, database string) *MySQLDDL {
	return &MySQLDDL{db: db, database: database}
}

// Describe implements ports.SchemaSource.
func (m *MySQLDDL) Describe(ctx context.Context) (string, error) {
	database := m.database
	if database == "" {
		if err := m.db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&database); err != nil {
			return "", fmt.Errorf("resolve current database: %w", err)
		}
	}

	tables, err := m.tables(ctx)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		var name, ddl string
		if err := m.db.QueryRowContext(ctx, "SHOW CREATE TABLE "+quoteIdent(table)).Scan(&name, &ddl); err != nil {
			return "", fmt.Errorf("show create table %s: %w", table, err)
		}
		keys, err := m.foreignKeys(ctx, database, table)
		if err != nil {
			return "", err
		}
		parts = append(parts, ddl+formatForeignKeys(keys))
	}
	return strings.Join(parts, "\n"), nil
}

func (m *MySQLDDL) tables(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("show tables: %w", err)
	}
	defer rows.Close()
	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (m *MySQLDDL) foreignKeys(ctx context.Context, database, table string) ([]foreignKey, error) {
	rows, err := m.db.QueryContext(ctx, mysqlForeignKeys, database, table)
	if err != nil {
		return nil, fmt.Errorf("foreign keys for %s: %w", table, err)
	}
	defer rows.Close()
	var keys []foreignKey
	for rows.Next() {
		var constraint string
		var fk foreignKey
		if err := rows.Scan(&constraint, &fk.column, &fk.refTable, &fk.refColumn); err != nil {
			return nil, err
		}
		keys = append(keys, fk)
	}
	return keys, rows.Err()
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

var _ ports.SchemaSource = (*MySQLDDL)(nil)
