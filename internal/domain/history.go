package domain

import "time"

// HistoryRecord captures a question that produced an executed query.
type HistoryRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	SQL       string    `json:"sql"`
	Model     string    `json:"model"`
	RowCount  int       `json:"row_count"`
}
