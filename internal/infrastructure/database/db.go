// Package database opens the target database and runs generated queries.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/doeshing/sqai-go/internal/domain"
)

// ErrNoDSN is returned when neither the config nor the environment supply a DSN.
var ErrNoDSN = errors.New("database dsn is required (set database.dsn or the variable named by database.dsn_env)")

// DriverName maps a configured driver to its database/sql driver name.
func DriverName(driver string) (string, error) {
	switch driver {
	case "", domain.DriverMySQL:
		return "mysql", nil
	case domain.DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open returns a handle for driver and dsn. No connection is made until the
// handle is first used, so commands that never touch the database still
// work when it is unreachable.
func Open(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}
	name, err := DriverName(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(time.Minute)
	return db, nil
}

// Ping verifies connectivity within domain.DefaultPingTimeout.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, domain.DefaultPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	return nil
}
