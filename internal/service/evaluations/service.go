// Package evaluations records judge scores with clamping, rounding and
// last-write-wins semantics.
package evaluations

import (
	"context"
	"math"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/repository"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// EvaluationRepository interface for evaluation persistence.
type EvaluationRepository interface {
	Upsert(evaluation *models.Evaluation) (*models.Evaluation, error)
	List(filter repository.Filter) ([]models.Evaluation, error)
}

// JudgeRepository interface for judge reads.
type JudgeRepository interface {
	GetByID(id string) (*models.Judge, error)
}

// ProjectRepository interface for project reads.
type ProjectRepository interface {
	GetByID(id string) (*models.Project, error)
}

// QuestionRepository interface for question reads.
type QuestionRepository interface {
	GetByID(id string) (*models.Question, error)
}

// Service validates and records evaluations.
type Service struct {
	evalRepo    EvaluationRepository
	judgeRepo   JudgeRepository
	projectRepo ProjectRepository
	questRepo   QuestionRepository
	log         *logger.Logger
}

// NewService creates a new evaluation service with concrete repository types.
func NewService(
	evalRepo *repository.EvaluationRepository,
	judgeRepo *repository.JudgeRepository,
	projectRepo *repository.ProjectRepository,
	questRepo *repository.QuestionRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		evalRepo:    evalRepo,
		judgeRepo:   judgeRepo,
		projectRepo: projectRepo,
		questRepo:   questRepo,
		log:         log,
	}
}

// NewServiceWithInterfaces creates a new evaluation service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	evalRepo EvaluationRepository,
	judgeRepo JudgeRepository,
	projectRepo ProjectRepository,
	questRepo QuestionRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		evalRepo:    evalRepo,
		judgeRepo:   judgeRepo,
		projectRepo: projectRepo,
		questRepo:   questRepo,
		log:         log,
	}
}

// NormalizeScore clamps a raw score into the 1-5 star range and rounds it to
// two decimals. Out-of-range submissions are corrected, not rejected: judges
// use sliders that occasionally report values just outside the range.
func NormalizeScore(raw float64) float64 {
	clamped := math.Min(math.Max(raw, models.MinScore), models.MaxScore)
	return math.Round(clamped*100) / 100
}

// Record stores one score for a (judge, project, question) triple. A repeated
// submission for the same triple replaces the previous score in place; the
// later write wins.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) Record(ctx context.Context, judgeID, projectID, questionID string, rawScore float64) (*models.Evaluation, error) {
	if math.IsNaN(rawScore) || math.IsInf(rawScore, 0) {
		return nil, apierr.Constraint("score must be a finite number")
	}
	if judgeID == "" || projectID == "" || questionID == "" {
		return nil, apierr.Constraint("judge, project and question are required")
	}

	judge, err := s.judgeRepo.GetByID(judgeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apierr.NotFound("judge %s not found", judgeID)
		}
		return nil, apierr.Upstream(err, "failed to load judge")
	}
	if judge.IsDisabled() {
		return nil, apierr.Constraint("judge %s is disabled", judgeID)
	}

	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apierr.NotFound("project %s not found", projectID)
		}
		return nil, apierr.Upstream(err, "failed to load project")
	}

	if _, err := s.questRepo.GetByID(questionID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apierr.NotFound("question %s not found", questionID)
		}
		return nil, apierr.Upstream(err, "failed to load question")
	}

	evaluation := &models.Evaluation{
		JudgeID:    judgeID,
		ProjectID:  projectID,
		QuestionID: questionID,
		Score:      NormalizeScore(rawScore),
	}

	stored, err := s.evalRepo.Upsert(evaluation)
	if err != nil {
		return nil, apierr.Upstream(err, "failed to store evaluation")
	}

	s.log.Debug().
		Str("judge_id", judgeID).
		Str("project_id", projectID).
		Str("question_id", questionID).
		Float64("score", stored.Score).
		Msg("Recorded evaluation")

	return stored, nil
}

// List returns evaluations, optionally narrowed to one judge and/or project.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) List(ctx context.Context, judgeID, projectID string) ([]models.Evaluation, error) {
	evaluations, err := s.evalRepo.List(repository.Filter{
		JudgeID:   judgeID,
		ProjectID: projectID,
	})
	if err != nil {
		return nil, apierr.Upstream(err, "failed to list evaluations")
	}
	return evaluations, nil
}
