package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/sqai-go/internal/domain"
)

// QuestionStatistic represents how often a question was asked
type QuestionStatistic struct {
	Question string
	Count    int
}

// HistoryStatistics summarizes a slice of history records
type HistoryStatistics struct {
	Entries      int
	TotalRows    int
	ModelCounts  map[string]int
	TopQuestions []QuestionStatistic
}

// AnalyzeHistory computes statistics over records, keeping the top N questions
func AnalyzeHistory(records []domain.HistoryRecord, top int) HistoryStatistics {
	stats := HistoryStatistics{
		Entries:     len(records),
		ModelCounts: make(map[string]int),
	}
	frequency := make(map[string]int)
	for _, rec := range records {
		stats.TotalRows += rec.RowCount
		stats.ModelCounts[rec.Model]++
		frequency[normalizeQuestion(rec.Question)]++
	}
	stats.TopQuestions = CalculateTopQuestions(frequency, top)
	return stats
}

// AverageRows returns the mean row count, or zero for no entries
func (s HistoryStatistics) AverageRows() float64 {
	if s.Entries == 0 {
		return 0
	}
	return float64(s.TotalRows) / float64(s.Entries)
}

// CalculateTopQuestions returns the top N most frequently asked questions
// If limit is 0 or negative, returns all questions
func CalculateTopQuestions(frequency map[string]int, limit int) []QuestionStatistic {
	stats := make([]QuestionStatistic, 0, len(frequency))
	for question, count := range frequency {
		stats = append(stats, QuestionStatistic{Question: question, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Question < stats[j].Question
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

func normalizeQuestion(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
