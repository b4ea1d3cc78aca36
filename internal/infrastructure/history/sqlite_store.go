package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/ports"
)

// Timestamps are stored as fixed-width UTC strings so lexical order is
// chronological order.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the history database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		question TEXT NOT NULL,
		sql_text TEXT NOT NULL,
		model TEXT,
		row_count INTEGER
	);`)
	return err
}

// Save inserts a new record, assigning an ID and timestamp when missing.
func (s *SQLiteStore) Save(ctx context.Context, record domain.HistoryRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO queries
		(id, timestamp, question, sql_text, model, row_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(storedTimeFormat),
		record.Question,
		record.SQL,
		record.Model,
		record.RowCount,
	)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Records returns history entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(ctx context.Context, limit int, search string) ([]domain.HistoryRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, question, sql_text, model, row_count FROM queries")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE question LIKE ? OR sql_text LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY timestamp DESC, rowid DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()
	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts string
		var model sql.NullString
		var rowCount sql.NullInt64
		if err := rows.Scan(&rec.ID, &ts, &rec.Question, &rec.SQL, &model, &rowCount); err != nil {
			return nil, err
		}
		if t, err := time.Parse(storedTimeFormat, ts); err == nil {
			rec.Timestamp = t.Local()
		}
		rec.Model = model.String
		rec.RowCount = int(rowCount.Int64)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM queries")
	return err
}

// ExportJSON writes the query table to a jsonl file.
func (s *SQLiteStore) ExportJSON(ctx context.Context, dest string) error {
	records, err := s.Records(ctx, 0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
