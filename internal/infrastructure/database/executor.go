package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/ports"
)

// Executor runs queries and renders every value as text.
type Executor struct {
	db *sql.DB
}

// NewExecutor wraps db.
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Run executes query and collects at most maxRows rows. maxRows <= 0 means
// no limit. Truncated is set when more rows were available.
func (e *Executor) Run(ctx context.Context, query string, maxRows int) (domain.ResultSet, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return domain.ResultSet{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.ResultSet{}, err
	}
	result := domain.ResultSet{Columns: columns}

	values := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if maxRows > 0 && len(result.Rows) >= maxRows {
			result.Truncated = true
			break
		}
		if err := rows.Scan(pointers...); err != nil {
			return domain.ResultSet{}, err
		}
		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.ResultSet{}, err
	}
	return result, nil
}

// FormatValue renders a scanned driver value for display.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format(domain.TimestampFormat)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// WriteCSV writes result with a header row.
func WriteCSV(w io.Writer, result domain.ResultSet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(result.Columns); err != nil {
		return err
	}
	if err := writer.WriteAll(result.Rows); err != nil {
		return err
	}
	return writer.Error()
}

var _ ports.QueryExecutor = (*Executor)(nil)
