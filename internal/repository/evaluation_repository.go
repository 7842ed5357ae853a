package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/startup-demoday/jurado/internal/models"
)

// EvaluationRepository handles evaluation database operations.
type EvaluationRepository struct {
	db *DB
}

// NewEvaluationRepository creates a new evaluation repository.
func NewEvaluationRepository(db *DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Upsert inserts an evaluation or, when a row already exists for the same
// (judge, project, question) triple, replaces its score in place. The
// database's conflict resolution is the serialization point for a judge
// double-submitting the same question concurrently.
func (r *EvaluationRepository) Upsert(evaluation *models.Evaluation) (*models.Evaluation, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "judge_id"},
			{Name: "project_id"},
			{Name: "question_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(evaluation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert evaluation: %w", err)
	}

	// Re-read by the natural key so the returned row carries the stored ID
	// and timestamps regardless of whether the insert or the update path ran.
	return r.GetByTriple(evaluation.JudgeID, evaluation.ProjectID, evaluation.QuestionID)
}

// GetByTriple retrieves the evaluation for a (judge, project, question)
// triple with display relations preloaded.
func (r *EvaluationRepository) GetByTriple(judgeID, projectID, questionID string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.
		Preload("Judge").
		Preload("Project").
		Preload("Project.Team").
		Preload("Question").
		Where("judge_id = ? AND project_id = ? AND question_id = ?", judgeID, projectID, questionID).
		First(&evaluation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &evaluation, nil
}

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	JudgeID   string
	ProjectID string
}

// List retrieves evaluations joined with judge/project/question/block display
// fields, ordered by block order then question order.
func (r *EvaluationRepository) List(filter Filter) ([]models.Evaluation, error) {
	query := r.db.
		Select("evaluations.*").
		Preload("Judge").
		Preload("Project").
		Preload("Project.Team").
		Preload("Question").
		Preload("Question.Block").
		Joins("LEFT JOIN questions ON questions.id = evaluations.question_id").
		Joins("LEFT JOIN blocks ON blocks.id = questions.block_id").
		Order("blocks.display_order ASC, questions.display_order ASC")

	if filter.JudgeID != "" {
		query = query.Where("evaluations.judge_id = ?", filter.JudgeID)
	}
	if filter.ProjectID != "" {
		query = query.Where("evaluations.project_id = ?", filter.ProjectID)
	}

	var evaluations []models.Evaluation
	if err := query.Find(&evaluations).Error; err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evaluations, nil
}

// ListScored retrieves every evaluation whose question and block joins still
// resolve, with both preloaded. Rows referencing deleted questions or blocks
// are excluded here so aggregation never sees dangling references.
func (r *EvaluationRepository) ListScored() ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.
		Select("evaluations.*").
		Preload("Question").
		Preload("Question.Block").
		Joins("INNER JOIN questions ON questions.id = evaluations.question_id").
		Joins("INNER JOIN blocks ON blocks.id = questions.block_id").
		Where("evaluations.score IS NOT NULL").
		Find(&evaluations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scored evaluations: %w", err)
	}
	return evaluations, nil
}

// CountAll returns the total number of evaluation rows.
func (r *EvaluationRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Evaluation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}
	return count, nil
}

// JudgeProgress summarizes one judge's recorded evaluations across all
// projects.
type JudgeProgress struct {
	JudgeID           string
	ProjectsEvaluated int64
	TotalEvaluations  int64
}

// ProgressByJudge returns per-judge evaluation counts, including judges with
// no evaluations at all.
func (r *EvaluationRepository) ProgressByJudge() ([]JudgeProgress, error) {
	var progress []JudgeProgress
	err := r.db.Model(&models.Judge{}).
		Select("judges.id as judge_id, COUNT(DISTINCT evaluations.project_id) as projects_evaluated, COUNT(evaluations.id) as total_evaluations").
		Joins("LEFT JOIN evaluations ON evaluations.judge_id = judges.id").
		Group("judges.id").
		Scan(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute judge progress: %w", err)
	}
	return progress, nil
}

// DeleteAll clears every evaluation row. Used only by the admin reseed path.
func (r *EvaluationRepository) DeleteAll() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Evaluation{}).Error; err != nil {
		return fmt.Errorf("failed to clear evaluations: %w", err)
	}
	return nil
}

// RepairScoreConstraint reasserts the 1-5 star range check on the score
// column. Deployments that predate the star-scale migration can carry a
// stale constraint plus out-of-range rows; this drops the constraint, clamps
// the rows and re-adds the check. Idempotent, postgres-only (the check is
// declarative in other dialects' test schemas), intended to run once at
// startup after migrations.
func (r *EvaluationRepository) RepairScoreConstraint() error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`ALTER TABLE evaluations DROP CONSTRAINT IF EXISTS evaluations_score_check`).Error; err != nil {
			return fmt.Errorf("failed to drop score constraint: %w", err)
		}

		err := tx.Exec(`
			UPDATE evaluations
			SET score = CASE
				WHEN score > 5.0 THEN 5.0
				WHEN score < 1.0 THEN 1.0
				ELSE score
			END
			WHERE score > 5.0 OR score < 1.0`).Error
		if err != nil {
			return fmt.Errorf("failed to clamp out-of-range scores: %w", err)
		}

		err = tx.Exec(`
			ALTER TABLE evaluations
			ADD CONSTRAINT evaluations_score_check
			CHECK (score >= 1.0 AND score <= 5.0)`).Error
		if err != nil {
			return fmt.Errorf("failed to reassert score constraint: %w", err)
		}

		return nil
	})
}
