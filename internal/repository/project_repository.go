package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/models"
)

// ProjectRepository handles project and team database operations.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project.
func (r *ProjectRepository) Create(project *models.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project with program and team preloaded.
func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Program").Preload("Team").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return &project, nil
}

// List retrieves all projects with programs and teams, newest first.
func (r *ProjectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Program").Preload("Team").
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update updates a project.
func (r *ProjectRepository) Update(project *models.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Delete deletes a project by ID.
func (r *ProjectRepository) Delete(id string) error {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAll returns the total number of projects.
func (r *ProjectRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// TeamRepository handles team database operations.
type TeamRepository struct {
	db *DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team.
func (r *TeamRepository) Create(team *models.Team) error {
	if err := r.db.Create(team).Error; err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID retrieves a team by ID.
func (r *TeamRepository) GetByID(id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return &team, nil
}

// List retrieves all teams ordered by name.
func (r *TeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Order("name ASC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// Update updates a team.
func (r *TeamRepository) Update(team *models.Team) error {
	if err := r.db.Save(team).Error; err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

// Delete deletes a team by ID.
func (r *TeamRepository) Delete(id string) error {
	result := r.db.Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete team %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
