package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// LensRepository handles database operations for Lens entities
type LensRepository struct {
	DB *gorm.DB
}

// NewLensRepository creates a new instance of LensRepository
func NewLensRepository(db *gorm.DB) *LensRepository {
	return &LensRepository{DB: db}
}

// Create inserts a new lens record
func (r *LensRepository) Create(lens *models.Lens) error {
	if err := r.DB.Create(lens).Error; err != nil {
		return fmt.Errorf("failed to create lens %s: %w", lens.Name, err)
	}
	return nil
}

// ListAll retrieves all lenses in insertion order
func (r *LensRepository) ListAll() ([]models.Lens, error) {
	var lenses []models.Lens
	if err := r.DB.Order("rowid").Find(&lenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list lenses: %w", err)
	}
	return lenses, nil
}

// GetByID retrieves a lens by its ID
func (r *LensRepository) GetByID(id string) (*models.Lens, error) {
	var lens models.Lens
	err := r.DB.Where("id = ?", id).First(&lens).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lens %s: %w", id, err)
	}
	return &lens, nil
}

// Update replaces all stored fields of an existing lens
func (r *LensRepository) Update(lens *models.Lens) error {
	result := r.DB.Model(&models.Lens{}).Where("id = ?", lens.ID).Updates(map[string]interface{}{
		"name":             lens.Name,
		"max_aperture":     lens.MaxAperture,
		"focal_length":     lens.FocalLength,
		"min_focal_length": lens.MinFocalLength,
		"max_focal_length": lens.MaxFocalLength,
		"updated_at":       lens.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update lens %s: %w", lens.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes a lens by its ID
func (r *LensRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Lens{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete lens %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
