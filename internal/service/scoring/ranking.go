package scoring

import (
	"context"
	"sort"
	"strings"
)

// Rank orders scores best-first and assigns 1-based ranks in place. Ordering
// is by average star rating descending; exact ties fall back to total score
// descending, then project name ascending, so repeated aggregations of the
// same data always produce the same order.
func Rank(scores []ProjectScore) []ProjectScore {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].AverageScore != scores[j].AverageScore {
			return scores[i].AverageScore > scores[j].AverageScore
		}
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].Name < scores[j].Name
	})

	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// FilterByProgram keeps only scores whose program name matches (case
// insensitive). Filtering happens before ranking so a program view gets a
// contiguous 1..n ranking of its own cohort.
func FilterByProgram(scores []ProjectScore, program string) []ProjectScore {
	if program == "" {
		return scores
	}

	filtered := make([]ProjectScore, 0, len(scores))
	for _, s := range scores {
		if strings.EqualFold(s.Program, program) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Dashboard aggregates, optionally filters to one program, and ranks. This is
// the read path behind the live results view.
func (s *Service) Dashboard(ctx context.Context, program string) ([]ProjectScore, error) {
	scores, err := s.Aggregate(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(FilterByProgram(scores, program)), nil
}
