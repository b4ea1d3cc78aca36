package prompt

import (
	"strings"
	"testing"
)

func TestBuildIsDeterministic(t *testing.T) {
	inputs := []struct {
		question, schema, glossary string
	}{
		{"Show me the top 5 most profitable movies", "CREATE TABLE film (film_id INT);", "## Revenue\n- MRR"},
		{"", "", ""},
		{"quote \" and {{.Schema}}", "```", "Explanation: not a real one"},
	}

	for _, in := range inputs {
		first := Build(in.question, in.schema, in.glossary)
		second := Build(in.question, in.schema, in.glossary)
		if first != second {
			t.Fatalf("Build() not deterministic for %+v", in)
		}
	}
}

func TestBuildInterpolatesInOrder(t *testing.T) {
	got := Build("QUESTION-MARK", "SCHEMA-MARK", "GLOSSARY-MARK")

	q := strings.Index(got, "QUESTION-MARK")
	s := strings.Index(got, "SCHEMA-MARK")
	g := strings.Index(got, "GLOSSARY-MARK")
	if q < 0 || s < 0 || g < 0 {
		t.Fatalf("missing interpolation in prompt:\n%s", got)
	}
	if !(q < s && s < g) {
		t.Fatalf("interpolation order = question@%d schema@%d glossary@%d", q, s, g)
	}
}

func TestBuildEndsWithOpenSQLFence(t *testing.T) {
	got := Build("q", "s", "g")
	if !strings.HasSuffix(strings.TrimRight(got, "\n"), Fence+"sql") {
		t.Fatalf("prompt should end with an open sql fence, got tail %q", got[len(got)-20:])
	}
	if strings.Count(got, Fence) != 1 {
		t.Fatalf("template should contain exactly one fence, got %d", strings.Count(got, Fence))
	}
}

func TestBuildPassesInputsVerbatim(t *testing.T) {
	schema := "CREATE TABLE `payment` (\n  `amount` decimal(5,2)\n)\n  , FOREIGN KEY (customer_id) REFERENCES customer(customer_id)\n"
	got := Build("<b>&amp;", schema, "")
	if !strings.Contains(got, schema) {
		t.Fatal("schema was altered during interpolation")
	}
	if !strings.Contains(got, `"<b>&amp;"`) {
		t.Fatal("question was escaped during interpolation")
	}
}

func TestBuildIncludesFormattingRules(t *testing.T) {
	got := Build("q", "s", "g")
	for _, rule := range []string{"Use Table Aliases", "cast the numerator as float", "valid MySQL query"} {
		if !strings.Contains(got, rule) {
			t.Errorf("prompt missing rule %q", rule)
		}
	}
}

func TestWithDialect(t *testing.T) {
	b := New(WithDialect("PostgreSQL"))
	if b.Dialect() != "PostgreSQL" {
		t.Fatalf("Dialect() = %q", b.Dialect())
	}
	got := b.Build("q", "s", "g")
	if !strings.Contains(got, "valid PostgreSQL query") || strings.Contains(got, "MySQL") {
		t.Fatalf("dialect not applied:\n%s", got)
	}

	if New(WithDialect("")).Dialect() != DefaultDialect {
		t.Fatal("empty dialect should keep the default")
	}
}
