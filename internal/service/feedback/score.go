package feedback

import (
	"fmt"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

// Score is 100 minus the severity penalties of all corrections, clamped to [0, 100].
func Score(corrections []domain.Correction) int {
	penalty := 0
	for _, c := range corrections {
		penalty += c.Severity.Penalty()
	}
	return min(100, max(0, 100-penalty))
}

// Summary picks the verdict line by the most severe correction present.
func Summary(corrections []domain.Correction) string {
	counts := domain.CountSeverities(corrections)
	switch {
	case counts.Errors > 0:
		return fmt.Sprintf("Found %d grammar %s to fix.", counts.Errors, plural(counts.Errors, "error", "errors"))
	case counts.Warnings > 0:
		return "Good! A few improvements suggested."
	case counts.Suggestions > 0:
		return "Excellent! Just some minor style suggestions."
	default:
		return "Great job!"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
