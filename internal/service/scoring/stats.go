package scoring

import (
	"context"

	"github.com/startup-demoday/jurado/internal/apierr"
)

// JudgeStats summarizes overall evaluation progress across the event.
//
// CompletedJudges counts judges who evaluated every project on every
// question; a judge with partial coverage of even one project does not count.
type JudgeStats struct {
	TotalJudges      int   `json:"total_judges"`
	TotalProjects    int   `json:"total_projects"`
	TotalQuestions   int   `json:"total_questions"`
	TotalEvaluations int64 `json:"total_evaluations"`
	MaxPossible      int   `json:"max_possible"`
	CompletedJudges  int   `json:"completed_judges"`
	IncompleteJudges int   `json:"incomplete_judges"`
}

// Stats computes event-wide judge progress counters.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) Stats(ctx context.Context) (*JudgeStats, error) {
	judgeCount, err := s.judgeRepo.CountAll()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count judges")
	}

	projectCount, err := s.projectRepo.CountAll()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count projects")
	}

	questionCount, err := s.questRepo.CountAll()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count questions")
	}

	evalCount, err := s.evalRepo.CountAll()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count evaluations")
	}

	progress, err := s.evalRepo.ProgressByJudge()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to compute judge progress")
	}

	stats := &JudgeStats{
		TotalJudges:      int(judgeCount),
		TotalProjects:    int(projectCount),
		TotalQuestions:   int(questionCount),
		TotalEvaluations: evalCount,
		MaxPossible:      int(projectCount) * int(questionCount),
	}

	required := int64(projectCount) * int64(questionCount)
	for _, p := range progress {
		if required > 0 && p.ProjectsEvaluated == projectCount && p.TotalEvaluations == required {
			stats.CompletedJudges++
		}
	}
	stats.IncompleteJudges = stats.TotalJudges - stats.CompletedJudges

	return stats, nil
}
