package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// FilmRollRepository handles database operations for FilmRoll entities
type FilmRollRepository struct {
	DB *gorm.DB
}

// NewFilmRollRepository creates a new instance of FilmRollRepository
func NewFilmRollRepository(db *gorm.DB) *FilmRollRepository {
	return &FilmRollRepository{DB: db}
}

// Create inserts a new film roll record
func (r *FilmRollRepository) Create(roll *models.FilmRoll) error {
	if err := r.DB.Create(roll).Error; err != nil {
		return fmt.Errorf("failed to create film roll %s: %w", roll.Name, err)
	}
	return nil
}

// ListAll retrieves all film rolls in insertion order
func (r *FilmRollRepository) ListAll() ([]models.FilmRoll, error) {
	var rolls []models.FilmRoll
	if err := r.DB.Order("rowid").Find(&rolls).Error; err != nil {
		return nil, fmt.Errorf("failed to list film rolls: %w", err)
	}
	return rolls, nil
}

// GetByID retrieves a film roll by its ID
func (r *FilmRollRepository) GetByID(id string) (*models.FilmRoll, error) {
	var roll models.FilmRoll
	err := r.DB.Where("id = ?", id).First(&roll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get film roll %s: %w", id, err)
	}
	return &roll, nil
}

// Update replaces all stored fields of an existing film roll
func (r *FilmRollRepository) Update(roll *models.FilmRoll) error {
	result := r.DB.Model(&models.FilmRoll{}).Where("id = ?", roll.ID).Updates(map[string]interface{}{
		"name":             roll.Name,
		"iso":              roll.ISO,
		"total_exposures":  roll.TotalExposures,
		"camera_id":        roll.CameraID,
		"camera_name":      roll.CameraName,
		"current_exposure": roll.CurrentExposure,
		"updated_at":       roll.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update film roll %s: %w", roll.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes a film roll by its ID. Exposure cascade is handled by
// the catalog layer so both backends behave identically.
func (r *FilmRollRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.FilmRoll{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete film roll %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
