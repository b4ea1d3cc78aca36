// Package extract recovers a SQL statement and an explanation from free-form
// generated text.
//
// Both extractors are total: they never fail. A missing SQL block yields an
// empty string; a missing explanation yields the input unchanged.
package extract

import (
	"strings"

	"github.com/doeshing/sqai-go/internal/domain"
)

const (
	fence             = "```"
	sqlOpener         = fence + "sql"
	explanationMarker = "Explanation:"
)

// Layout describes which fence arrangement SQL extraction matched.
type Layout int

const (
	// LayoutNone means the text has no fence at all.
	LayoutNone Layout = iota
	// LayoutTagged means a ```sql opener with a closing fence after it.
	LayoutTagged
	// LayoutGeneric means fences exist but no terminated ```sql block does.
	// This includes an unterminated ```sql opener, whose extracted text then
	// keeps the "sql" tag as a prefix.
	LayoutGeneric
)

func (l Layout) String() string {
	switch l {
	case LayoutTagged:
		return "tagged"
	case LayoutGeneric:
		return "generic"
	default:
		return "none"
	}
}

// Classify reports the fence layout of raw.
func Classify(raw string) Layout {
	if open := strings.Index(raw, sqlOpener); open >= 0 &&
		strings.Contains(raw[open+len(sqlOpener):], fence) {
		return LayoutTagged
	}
	if strings.Contains(raw, fence) {
		return LayoutGeneric
	}
	return LayoutNone
}

// SQL returns the first fenced SQL statement in raw, whitespace-trimmed.
// Interior indentation and newlines are kept as generated.
func SQL(raw string) string {
	switch Classify(raw) {
	case LayoutTagged:
		body := raw[strings.Index(raw, sqlOpener)+len(sqlOpener):]
		return strings.TrimSpace(body[:strings.Index(body, fence)])
	case LayoutGeneric:
		// Any fence guarantees at least two segments.
		return strings.TrimSpace(strings.Split(raw, fence)[1])
	default:
		return ""
	}
}

// Explanation returns everything after the first "Explanation:" marker with
// fence delimiters removed. Without a marker it falls back to the text after
// the second fence, and failing that returns raw unchanged.
func Explanation(raw string) string {
	if _, after, ok := strings.Cut(raw, explanationMarker); ok {
		return strings.TrimSpace(strings.ReplaceAll(after, fence, ""))
	}
	if segments := strings.Split(raw, fence); len(segments) > 2 {
		return strings.TrimSpace(segments[2])
	}
	return raw
}

// Response runs both extractors.
func Response(raw string) domain.Extraction {
	return domain.Extraction{SQL: SQL(raw), Explanation: Explanation(raw)}
}
