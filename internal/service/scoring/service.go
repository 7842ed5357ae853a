// Package scoring aggregates raw judge evaluations into weighted project
// scores and live rankings.
package scoring

import (
	"context"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/config"
	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/repository"
	"github.com/startup-demoday/jurado/internal/service/questions"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// ProjectRepository interface for project reads.
type ProjectRepository interface {
	List() ([]models.Project, error)
	CountAll() (int64, error)
}

// EvaluationRepository interface for evaluation reads.
type EvaluationRepository interface {
	ListScored() ([]models.Evaluation, error)
	CountAll() (int64, error)
	ProgressByJudge() ([]repository.JudgeProgress, error)
}

// QuestionRepository interface for question reads.
type QuestionRepository interface {
	List() ([]models.Question, error)
	CountAll() (int64, error)
}

// JudgeRepository interface for judge reads.
type JudgeRepository interface {
	CountAll() (int64, error)
}

// BlockAverage is the mean star rating (1-5) for one thematic block of a
// project.
type BlockAverage struct {
	BlockName string  `json:"block_name"`
	Average   float64 `json:"average"`
}

// ProjectScore is the aggregated scoring summary for one project.
//
// AverageScore stays on the 1-5 star scale and drives ranking so projects
// remain comparable across programs with different point budgets.
// TotalScore is the average rescaled onto the program's point budget.
// EvaluationCount is the number of judges who answered every applicable
// question; TotalEvaluations is the raw row count.
type ProjectScore struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Team                 string         `json:"team"`
	TeamDescription      string         `json:"team_description"`
	Program              string         `json:"program"`
	TotalScore           float64        `json:"total_score"`
	AverageScore         float64        `json:"average_score"`
	MaxPossibleScore     float64        `json:"max_possible_score"`
	CompletionPercentage float64        `json:"completion_percentage"`
	EvaluationCount      int            `json:"evaluation_count"`
	TotalEvaluations     int            `json:"total_evaluations"`
	TotalJudges          int            `json:"total_judges"`
	BlockAverages        []BlockAverage `json:"block_averages"`
	Rank                 int            `json:"rank"`
}

// Service computes project scores from the current store snapshot. Every
// call re-reads and re-aggregates; rankings are never persisted.
type Service struct {
	projectRepo ProjectRepository
	evalRepo    EvaluationRepository
	questRepo   QuestionRepository
	judgeRepo   JudgeRepository
	cfg         config.ScoringConfig
	log         *logger.Logger
}

// NewService creates a new scoring service with concrete repository types.
func NewService(
	projectRepo *repository.ProjectRepository,
	evalRepo *repository.EvaluationRepository,
	questRepo *repository.QuestionRepository,
	judgeRepo *repository.JudgeRepository,
	cfg config.ScoringConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		projectRepo: projectRepo,
		evalRepo:    evalRepo,
		questRepo:   questRepo,
		judgeRepo:   judgeRepo,
		cfg:         cfg,
		log:         log,
	}
}

// NewServiceWithInterfaces creates a new scoring service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	projectRepo ProjectRepository,
	evalRepo EvaluationRepository,
	questRepo QuestionRepository,
	judgeRepo JudgeRepository,
	cfg config.ScoringConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		projectRepo: projectRepo,
		evalRepo:    evalRepo,
		questRepo:   questRepo,
		judgeRepo:   judgeRepo,
		cfg:         cfg,
		log:         log,
	}
}

// programBudget is the point budget and question count of one program.
type programBudget struct {
	maxScore      float64
	questionCount int
}

// Aggregate recomputes every project's score from the current evaluations.
// The queries run independently; the result reflects an eventually consistent
// snapshot that self-corrects on the next poll.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) Aggregate(ctx context.Context) ([]ProjectScore, error) {
	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to load projects")
	}

	evaluations, err := s.evalRepo.ListScored()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to load evaluations")
	}

	allQuestions, err := s.questRepo.List()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to load questions")
	}

	judgeCount, err := s.judgeRepo.CountAll()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count judges")
	}

	weighted := s.useWeightedRegime(allQuestions)
	budgets := buildProgramBudgets(allQuestions)

	byProject := make(map[string][]models.Evaluation, len(projects))
	for _, e := range evaluations {
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	scores := make([]ProjectScore, 0, len(projects))
	for i := range projects {
		project := &projects[i]
		scores = append(scores, s.scoreProject(
			project,
			byProject[project.ID],
			allQuestions,
			budgets,
			weighted,
			int(judgeCount),
			len(allQuestions),
		))
	}

	s.log.Debug().
		Int("projects", len(scores)).
		Int("evaluations", len(evaluations)).
		Bool("weighted", weighted).
		Msg("Aggregated project scores")

	return scores, nil
}

// useWeightedRegime picks the scoring formula for this aggregation pass. The
// check is store-wide: a single dataset never mixes regimes.
func (s *Service) useWeightedRegime(allQuestions []models.Question) bool {
	switch s.cfg.Mode {
	case config.ScoringModeWeighted:
		return true
	case config.ScoringModeLegacy:
		return false
	default:
		for _, q := range allQuestions {
			if q.Weight != nil {
				return true
			}
		}
		return false
	}
}

// buildProgramBudgets sums question weights per program name. Questions with
// a dangling or missing program reference are grouped under the empty name.
func buildProgramBudgets(allQuestions []models.Question) map[string]programBudget {
	budgets := make(map[string]programBudget)
	for _, q := range allQuestions {
		name := ""
		if q.Program != nil {
			name = q.Program.Name
		}
		b := budgets[name]
		if q.Weight != nil {
			b.maxScore += *q.Weight
		}
		b.questionCount++
		budgets[name] = b
	}
	return budgets
}

// scoreProject aggregates one project. A project with zero evaluations still
// yields a renderable all-zero score.
func (s *Service) scoreProject(
	project *models.Project,
	evaluations []models.Evaluation,
	allQuestions []models.Question,
	budgets map[string]programBudget,
	weighted bool,
	totalJudges int,
	totalQuestionCount int,
) ProjectScore {
	score := ProjectScore{
		ID:               project.ID,
		Name:             project.Name,
		Program:          project.ProgramName(),
		TotalJudges:      totalJudges,
		TotalEvaluations: len(evaluations),
		BlockAverages:    []BlockAverage{},
	}
	if project.Team != nil {
		score.Team = project.Team.Name
		score.TeamDescription = project.Team.Description
	}

	// Average star rating (1-5).
	var sum float64
	for _, e := range evaluations {
		sum += e.Score
	}
	if len(evaluations) > 0 {
		score.AverageScore = sum / float64(len(evaluations))
	}

	if weighted {
		// The per-question weights define the program's ceiling, not a
		// per-answer multiplier: the star average is treated as a fraction
		// of maximum quality and rescaled onto the point budget.
		budget, ok := budgets[score.Program]
		if ok && budget.maxScore > 0 {
			score.MaxPossibleScore = budget.maxScore
		} else {
			score.MaxPossibleScore = s.cfg.FallbackMaxScore
		}
		score.TotalScore = score.AverageScore / models.MaxScore * score.MaxPossibleScore
	} else if totalQuestionCount > 0 {
		// Legacy datasets without weights: completion-discounted raw average.
		score.MaxPossibleScore = float64(totalQuestionCount) * models.MaxScore
		score.TotalScore = score.AverageScore * float64(len(evaluations)) / float64(totalQuestionCount)
	}

	applicable := questions.ApplicableCount(project, allQuestions)
	score.EvaluationCount = countFullJudges(evaluations, applicable)
	if totalJudges > 0 {
		score.CompletionPercentage = float64(score.EvaluationCount) / float64(totalJudges) * 100
	}

	score.BlockAverages = blockAverages(evaluations)

	return score
}

// countFullJudges counts judges whose evaluation count for this project
// covers every applicable question.
func countFullJudges(evaluations []models.Evaluation, applicableQuestions int) int {
	if applicableQuestions == 0 {
		return 0
	}

	perJudge := make(map[string]int)
	for _, e := range evaluations {
		perJudge[e.JudgeID]++
	}

	full := 0
	for _, count := range perJudge {
		if count >= applicableQuestions {
			full++
		}
	}
	return full
}

// blockAverages computes the mean star rating per block name. Evaluations
// whose block name did not survive the join are skipped; the literal strings
// "null" and "undefined" appear in historical data from a buggy client and
// are treated the same way.
func blockAverages(evaluations []models.Evaluation) []BlockAverage {
	type acc struct {
		total float64
		count int
	}

	byBlock := make(map[string]*acc)
	order := make([]string, 0)

	for _, e := range evaluations {
		if e.Question == nil || e.Question.Block == nil {
			continue
		}
		name := e.Question.Block.Name
		if name == "" || name == "null" || name == "undefined" {
			continue
		}
		a, ok := byBlock[name]
		if !ok {
			a = &acc{}
			byBlock[name] = a
			order = append(order, name)
		}
		a.total += e.Score
		a.count++
	}

	averages := make([]BlockAverage, 0, len(order))
	for _, name := range order {
		a := byBlock[name]
		averages = append(averages, BlockAverage{
			BlockName: name,
			Average:   a.total / float64(a.count),
		})
	}
	return averages
}
