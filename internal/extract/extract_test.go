package extract

import (
	"strings"
	"testing"

	"github.com/doeshing/sqai-go/internal/domain"
)

func TestSQL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "tagged block keeps interior indentation",
			raw: "\nHere is the SQL query:\n\n```sql\nSELECT customer_id, SUM(amount) as total\n" +
				"            FROM orders\n            GROUP BY customer_id;\n```\n\nThis query groups orders by customer.\n",
			want: "SELECT customer_id, SUM(amount) as total\n            FROM orders\n            GROUP BY customer_id;",
		},
		{
			name: "generic block",
			raw:  "\nHere is the query:\n\n```\nSELECT * FROM customers WHERE name LIKE '%John%';\n```\n\nEnd of response.\n",
			want: "SELECT * FROM customers WHERE name LIKE '%John%';",
		},
		{
			name: "generic fallback with prose around",
			raw:  "prefix ```\nSELECT 1;\n``` suffix",
			want: "SELECT 1;",
		},
		{
			name: "unterminated tagged opener keeps tag token",
			raw:  "Here is the start ```sql SELECT * FROM",
			want: "sql SELECT * FROM",
		},
		{
			name: "no fences",
			raw:  "This is just a plain text response without any code blocks.",
			want: "",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "tagged block wins over an earlier generic block",
			raw:  "```\nnot sql\n```\nthen ```sql\nSELECT 2;\n```",
			want: "SELECT 2;",
		},
		{
			name: "untagged continuation yields the segment after the first fence",
			raw:  "SELECT f.title FROM film f LIMIT 5;\n```\nExplanation: lists five films.",
			want: "Explanation: lists five films.",
		},
		{
			name: "second tagged opener closes the first block",
			raw:  "```sql A ```sql B ```",
			want: "A",
		},
		{
			name: "tag token is case sensitive",
			raw:  "```SQL\nSELECT 3;\n```",
			want: "SQL\nSELECT 3;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SQL(tt.raw); got != tt.want {
				t.Fatalf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLIgnoresSurroundingProseLength(t *testing.T) {
	block := "```sql\n  SELECT a.actor_id\n  FROM actor a;\n```"
	for _, n := range []int{0, 1, 100, 10000} {
		prose := strings.Repeat("lorem ipsum ", n)
		if got := SQL(prose + block + prose); got != "SELECT a.actor_id\n  FROM actor a;" {
			t.Fatalf("SQL() with %d words of prose = %q", n, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Layout
	}{
		{"```sql\nSELECT 1;\n```", LayoutTagged},
		{"```sql SELECT", LayoutGeneric},
		{"```sql A ```sql B ```", LayoutTagged},
		{"```\nSELECT 1;\n```", LayoutGeneric},
		{"plain", LayoutNone},
		{"", LayoutNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.raw); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestExplanation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "marker takes precedence over fences",
			raw:  "```sql\nSELECT 1;\n```\nfirst\n```\nsecond\n```\nExplanation: uses ```inline``` code\n```",
			want: "uses inline code",
		},
		{
			name: "everything after the first marker",
			raw:  "Explanation: one.\nExplanation: two.",
			want: "one.\nExplanation: two.",
		},
		{
			name: "third segment fallback",
			raw:  "```sql\nSELECT 1;\n```\n  This returns one.  \n",
			want: "This returns one.",
		},
		{
			name: "single fence echoes input",
			raw:  "only ``` one fence",
			want: "only ``` one fence",
		},
		{
			name: "plain text echoes input",
			raw:  "  no structure here  ",
			want: "  no structure here  ",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Explanation(tt.raw); got != tt.want {
				t.Fatalf("Explanation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponse(t *testing.T) {
	got := Response("```sql\nSELECT COUNT(*) FROM rental;\n```\nExplanation: counts rentals.")
	want := domain.Extraction{SQL: "SELECT COUNT(*) FROM rental;", Explanation: "counts rentals."}
	if got != want {
		t.Fatalf("Response() = %+v, want %+v", got, want)
	}
}

func TestResponseWithoutFence(t *testing.T) {
	got := Response("I cannot answer that.")
	want := domain.Extraction{Explanation: "I cannot answer that."}
	if got != want {
		t.Fatalf("Response() = %+v, want %+v", got, want)
	}
}
