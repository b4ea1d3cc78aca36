// Package prompt assembles the instruction block sent to the generation backend.
//
// The template is fixed: a role statement, formatting rules, then the
// question, schema and metric glossary interpolated in that order, ending
// with a dangling ```sql opener so the backend continues straight into SQL.
// Inputs are interpolated verbatim. Nothing is escaped, so adversarial text
// in any of them can steer the backend.
package prompt

import (
	"bytes"
	"strings"
	"text/template"
)

// DefaultDialect is the SQL dialect named in the instructions.
const DefaultDialect = "MySQL"

// Fence is the markdown code fence delimiter.
const Fence = "```"

var promptTemplate = template.Must(template.New("prompt").Parse(strings.Join([]string{
	"### Instructions:",
	"You are a SQL expert assistant that helps convert natural language queries into SQL.",
	"Adhere to these rules:",
	"- **Deliberately go through the question and database schema word by word** to appropriately answer the question",
	"- **Use Table Aliases** to prevent ambiguity. For example, `SELECT table1.col1, table2.col1 FROM table1 JOIN table2 ON table1.id = table2.id`.",
	"- When creating a ratio, always cast the numerator as float",
	"- When the question refers to a metric, compute it exactly as the metric definitions describe",
	"- After the query, close the code block and add a line starting with `Explanation:` describing what the query does",
	"",
	"### Input:",
	`Convert this question into a valid {{.Dialect}} query: "{{.Question}}"`,
	"",
	"Given the following {{.Dialect}} database schema:",
	"{{.Schema}}",
	"",
	"And the following metric definitions:",
	"{{.Glossary}}",
	"",
	"### Response:",
	"Based on your instructions, here is the SQL query I have generated to answer the question:",
	Fence + "sql",
	"",
}, "\n")))

type templateData struct {
	Dialect  string
	Question string
	Schema   string
	Glossary string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithDialect names a different SQL dialect in the instructions.
func WithDialect(dialect string) Option {
	return func(b *Builder) {
		if dialect != "" {
			b.dialect = dialect
		}
	}
}

// Builder renders prompts. It holds no per-call state and is safe for
// concurrent use.
type Builder struct {
	dialect string
}

// New creates a Builder for the default dialect unless overridden.
func New(opts ...Option) *Builder {
	b := &Builder{dialect: DefaultDialect}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dialect returns the dialect named in rendered prompts.
func (b *Builder) Dialect() string {
	return b.dialect
}

// Build renders the prompt. Same inputs always give the same bytes.
func (b *Builder) Build(question, schema, glossary string) string {
	var buf bytes.Buffer
	// Execute only fails on writer errors and bytes.Buffer never returns one.
	_ = promptTemplate.Execute(&buf, templateData{
		Dialect:  b.dialect,
		Question: question,
		Schema:   schema,
		Glossary: glossary,
	})
	return buf.String()
}

// Build renders a prompt with the default dialect.
func Build(question, schema, glossary string) string {
	return New().Build(question, schema, glossary)
}
