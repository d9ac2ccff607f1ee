// Package statistics summarizes a learner's vocabulary progress.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

// LanguageStatistics holds the mastery breakdown of one target language
type LanguageStatistics struct {
	Language vocabulary.Language
	vocabulary.Stats
	MasteredPercent int
}

// PeriodStatistics holds activity for a month, e.g. "2025-01"
type PeriodStatistics struct {
	Period   string
	NewWords int // words added in the period
	Reviewed int // words whose latest review falls in the period
}

type Summary struct {
	Languages       []LanguageStatistics
	Periods         []PeriodStatistics
	Total           vocabulary.Stats
	MasteredPercent int
}

type periodData struct {
	newWords int
	reviewed int
}

// Summarize computes per-language counts and monthly activity.
// year and month filter the periods only; 0 means no filter.
func Summarize(words []vocabulary.Word, year, month int) Summary {
	byLanguage := make(map[vocabulary.Language][]vocabulary.Word)
	periods := make(map[string]*periodData)

	for _, w := range words {
		byLanguage[w.Language] = append(byLanguage[w.Language], w)

		if created := w.CreatedAt; !created.IsZero() && matchesFilter(created.Year(), int(created.Month()), year, month) {
			ensurePeriodExists(periods, created.Year(), int(created.Month())).newWords++
		}
		if reviewed := w.LastReviewedAt; reviewed != nil && matchesFilter(reviewed.Year(), int(reviewed.Month()), year, month) {
			ensurePeriodExists(periods, reviewed.Year(), int(reviewed.Month())).reviewed++
		}
	}

	summary := Summary{
		Languages: []LanguageStatistics{},
		Total:     vocabulary.CountLevels(words),
	}
	summary.MasteredPercent = percent(summary.Total.Mastered, summary.Total.Total())

	for _, language := range vocabulary.Languages() {
		list, ok := byLanguage[language]
		if !ok {
			continue
		}
		stats := vocabulary.CountLevels(list)
		summary.Languages = append(summary.Languages, LanguageStatistics{
			Language:        language,
			Stats:           stats,
			MasteredPercent: percent(stats.Mastered, stats.Total()),
		})
	}

	summary.Periods = make([]PeriodStatistics, 0, len(periods))
	for period, data := range periods {
		summary.Periods = append(summary.Periods, PeriodStatistics{
			Period:   period,
			NewWords: data.newWords,
			Reviewed: data.reviewed,
		})
	}
	// Newest first
	sort.Slice(summary.Periods, func(i, j int) bool {
		return summary.Periods[i].Period > summary.Periods[j].Period
	})
	return summary
}

func ensurePeriodExists(periods map[string]*periodData, year, month int) *periodData {
	period := fmt.Sprintf("%d-%02d", year, month)
	if periods[period] == nil {
		periods[period] = &periodData{}
	}
	return periods[period]
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
