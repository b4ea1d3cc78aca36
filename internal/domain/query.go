package domain

// QueryRequest captures a natural-language question from the CLI.
type QueryRequest struct {
	Question      string
	ModelOverride string
	DryRun        bool
	MaxRows       int
}

// Extraction is the SQL and explanation recovered from generated text.
// Empty strings mean "no match", not an error.
type Extraction struct {
	SQL         string
	Explanation string
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	Question    string
	Prompt      string
	Model       string
	Backend     string
	SQL         string
	Explanation string
	RawResponse string
	// Layout names the fence layout the SQL was extracted from.
	Layout           string
	GenerationFailed bool
	Result           *ResultSet
}

// ResultSet holds rows returned by an executed query, rendered as text.
type ResultSet struct {
	Columns   []string
	Rows      [][]string
	Truncated bool
}
