package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/models"
)

// JudgeRepository handles judge-related database operations.
type JudgeRepository struct {
	db *DB
}

// NewJudgeRepository creates a new judge repository.
func NewJudgeRepository(db *DB) *JudgeRepository {
	return &JudgeRepository{db: db}
}

// Create creates a new judge.
func (r *JudgeRepository) Create(judge *models.Judge) error {
	if err := r.db.Create(judge).Error; err != nil {
		return fmt.Errorf("failed to create judge: %w", err)
	}
	return nil
}

// GetByID retrieves a judge by ID.
func (r *JudgeRepository) GetByID(id string) (*models.Judge, error) {
	var judge models.Judge
	if err := r.db.First(&judge, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get judge %s: %w", id, err)
	}
	return &judge, nil
}

// GetByToken retrieves a judge by access token. Legacy data stores revoked
// tokens with the DISABLED_ prefix, so the lookup also matches the prefixed
// form; the caller decides whether the judge may actually enter.
func (r *JudgeRepository) GetByToken(token string) (*models.Judge, error) {
	var judge models.Judge
	err := r.db.
		Where("token = ? OR token = ?", token, models.DisabledTokenPrefix+token).
		First(&judge).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get judge by token: %w", err)
	}
	return &judge, nil
}

// List retrieves all judges ordered by category then name.
func (r *JudgeRepository) List() ([]models.Judge, error) {
	var judges []models.Judge
	if err := r.db.Order("category ASC, name ASC").Find(&judges).Error; err != nil {
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}
	return judges, nil
}

// Update updates a judge.
func (r *JudgeRepository) Update(judge *models.Judge) error {
	if err := r.db.Save(judge).Error; err != nil {
		return fmt.Errorf("failed to update judge: %w", err)
	}
	return nil
}

// Delete deletes a judge by ID.
func (r *JudgeRepository) Delete(id string) error {
	result := r.db.Delete(&models.Judge{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete judge %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAll returns the total number of judges.
func (r *JudgeRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Judge{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count judges: %w", err)
	}
	return count, nil
}

// DisableAll revokes every active judge and returns how many were affected.
func (r *JudgeRepository) DisableAll() (int64, error) {
	result := r.db.Model(&models.Judge{}).
		Where("status = ?", models.JudgeStatusActive).
		Update("status", models.JudgeStatusDisabled)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to disable judges: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountDisabled returns the number of revoked judges, counting both the
// status column and legacy prefixed tokens.
func (r *JudgeRepository) CountDisabled() (int64, error) {
	var count int64
	err := r.db.Model(&models.Judge{}).
		Where("status = ? OR token LIKE ?", models.JudgeStatusDisabled, models.DisabledTokenPrefix+"%").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count disabled judges: %w", err)
	}
	return count, nil
}
