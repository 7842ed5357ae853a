package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/models"
)

// BlockRepository handles block-related database operations.
type BlockRepository struct {
	db *DB
}

// NewBlockRepository creates a new block repository.
func NewBlockRepository(db *DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create creates a new block.
func (r *BlockRepository) Create(block *models.Block) error {
	if err := r.db.Create(block).Error; err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

// GetByID retrieves a block by ID.
func (r *BlockRepository) GetByID(id string) (*models.Block, error) {
	var block models.Block
	if err := r.db.Preload("Program").First(&block, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get block %s: %w", id, err)
	}
	return &block, nil
}

// List retrieves all blocks sorted ascending by display order.
func (r *BlockRepository) List() ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.Preload("Program").
		Order("display_order ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}

// Update updates a block.
func (r *BlockRepository) Update(block *models.Block) error {
	if err := r.db.Save(block).Error; err != nil {
		return fmt.Errorf("failed to update block: %w", err)
	}
	return nil
}

// Delete deletes a block by ID.
func (r *BlockRepository) Delete(id string) error {
	result := r.db.Delete(&models.Block{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete block %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
