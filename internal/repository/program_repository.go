package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/models"
)

// ProgramRepository handles program-related database operations.
type ProgramRepository struct {
	db *DB
}

// NewProgramRepository creates a new program repository.
func NewProgramRepository(db *DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create creates a new program.
func (r *ProgramRepository) Create(program *models.Program) error {
	if err := r.db.Create(program).Error; err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// GetByID retrieves a program by ID.
func (r *ProgramRepository) GetByID(id string) (*models.Program, error) {
	var program models.Program
	if err := r.db.First(&program, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get program %s: %w", id, err)
	}
	return &program, nil
}

// List retrieves all programs ordered by name.
func (r *ProgramRepository) List() ([]models.Program, error) {
	var programs []models.Program
	if err := r.db.Order("name ASC").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, nil
}

// Update updates a program.
func (r *ProgramRepository) Update(program *models.Program) error {
	if err := r.db.Save(program).Error; err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	return nil
}

// Delete deletes a program by ID. Blocks, questions and projects referencing
// it are left in place; readers resolve the dangling reference to "no
// program".
func (r *ProgramRepository) Delete(id string) error {
	result := r.db.Delete(&models.Program{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete program %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is a gorm record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation. Requires
// the connection to be opened with TranslateError.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
