package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

// ExamAggregate sums the scores of every subject of a simulado.
type ExamAggregate struct {
	Acertos    int     `json:"acertos"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Stats are recomputed from the current state on every call.
type Stats struct {
	Percentage          float64       `json:"percentage"`
	SuggestedDifficulty string        `json:"suggested_difficulty"`
	Exam                ExamAggregate `json:"exam"`
}

func Percentage(acertos, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(acertos) / float64(total) * 100
}

func ClassifyDifficulty(pct float64) string {
	switch {
	case pct >= 80:
		return models.DifficultyEasy
	case pct < 60:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

// parseCount reads a score typed as text. Anything that is not a
// non-negative integer counts as zero.
func parseCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func ExamTotals(scores map[string]models.ExamScoreEntry) ExamAggregate {
	var agg ExamAggregate
	for _, s := range scores {
		agg.Acertos += parseCount(s.Acertos)
		agg.Total += parseCount(s.Total)
	}
	agg.Percentage = Percentage(agg.Acertos, agg.Total)
	return agg
}

// DistributeMinutes splits totalMinutes across subjects proportionally to
// their question totals. Each share is rounded on its own and never drops
// below one minute, so the sum may differ slightly from totalMinutes.
// Subjects with a zero total get no share.
func DistributeMinutes(totalMinutes int, totals map[string]int) map[string]int {
	aggregate := 0
	for _, t := range totals {
		if t > 0 {
			aggregate += t
		}
	}

	shares := make(map[string]int, len(totals))
	if aggregate == 0 {
		return shares
	}

	for subject, t := range totals {
		if t <= 0 {
			continue
		}
		share := int(math.Round(float64(totalMinutes) * float64(t) / float64(aggregate)))
		if share < 1 {
			share = 1
		}
		shares[subject] = share
	}
	return shares
}
