package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/models"
)

// QuestionRepository handles question-related database operations.
type QuestionRepository struct {
	db *DB
}

// NewQuestionRepository creates a new question repository.
func NewQuestionRepository(db *DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create creates a new question.
func (r *QuestionRepository) Create(question *models.Question) error {
	if err := r.db.Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// GetByID retrieves a question by ID with its block and program preloaded.
func (r *QuestionRepository) GetByID(id string) (*models.Question, error) {
	var question models.Question
	err := r.db.Preload("Block").Preload("Program").
		First(&question, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get question %s: %w", id, err)
	}
	return &question, nil
}

// List retrieves all questions with blocks and programs, ordered by program
// name, block order, then question order.
func (r *QuestionRepository) List() ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Select("questions.*").
		Preload("Block").Preload("Program").
		Joins("LEFT JOIN blocks ON blocks.id = questions.block_id").
		Joins("LEFT JOIN programs ON programs.id = questions.program_id").
		Order("programs.name ASC, blocks.display_order ASC, questions.display_order ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// Update updates a question.
func (r *QuestionRepository) Update(question *models.Question) error {
	if err := r.db.Save(question).Error; err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return nil
}

// Delete deletes a question by ID. Evaluations referencing it become
// orphaned and are excluded from aggregation by the defensive join filter.
func (r *QuestionRepository) Delete(id string) error {
	result := r.db.Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAll returns the total number of questions.
func (r *QuestionRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// AnyWeighted reports whether at least one question carries a weight. Used to
// select the scoring regime when the configured mode is "auto".
func (r *QuestionRepository) AnyWeighted() (bool, error) {
	var count int64
	err := r.db.Model(&models.Question{}).
		Where("weight IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check question weights: %w", err)
	}
	return count > 0, nil
}
