package stats

import (
	"fmt"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

// Compute derives totals and per-level percentages from aggregate counts.
// Percentages are formatted to one decimal digit; when the total is zero every
// percentage is the literal "0.0". Input order is preserved.
func Compute(counts []domain.LevelCount) domain.Stats {
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	levelStats := make([]domain.LevelStat, len(counts))
	for i, c := range counts {
		percentage := "0.0"
		if total > 0 {
			percentage = fmt.Sprintf("%.1f", float64(c.Count)/float64(total)*100)
		}
		levelStats[i] = domain.LevelStat{
			Level:      c.Level,
			Count:      c.Count,
			Percentage: percentage,
		}
	}

	return domain.Stats{Total: total, Stats: levelStats}
}
