package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// ExposureRepository handles database operations for Exposure entities
type ExposureRepository struct {
	DB *gorm.DB
}

// NewExposureRepository creates a new instance of ExposureRepository
func NewExposureRepository(db *gorm.DB) *ExposureRepository {
	return &ExposureRepository{DB: db}
}

// Create inserts a new exposure record
func (r *ExposureRepository) Create(exposure *models.Exposure) error {
	if err := r.DB.Create(exposure).Error; err != nil {
		return fmt.Errorf("failed to create exposure #%d on roll %s: %w", exposure.ExposureNumber, exposure.FilmRollID, err)
	}
	return nil
}

// ListByRoll retrieves a roll's exposures ordered by exposure number
func (r *ExposureRepository) ListByRoll(rollID string) ([]models.Exposure, error) {
	var exposures []models.Exposure
	err := r.DB.Where("film_roll_id = ?", rollID).Order("exposure_number ASC").Find(&exposures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exposures for roll %s: %w", rollID, err)
	}
	return exposures, nil
}

// GetByID retrieves an exposure by its ID
func (r *ExposureRepository) GetByID(id string) (*models.Exposure, error) {
	var exposure models.Exposure
	err := r.DB.Where("id = ?", id).First(&exposure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exposure %s: %w", id, err)
	}
	return &exposure, nil
}

// Update replaces the mutable fields of an existing exposure
func (r *ExposureRepository) Update(exposure *models.Exposure) error {
	result := r.DB.Model(&models.Exposure{}).Where("id = ?", exposure.ID).Updates(map[string]interface{}{
		"aperture":        exposure.Aperture,
		"shutter_speed":   exposure.ShutterSpeed,
		"additional_info": exposure.AdditionalInfo,
		"latitude":        exposure.Latitude,
		"longitude":       exposure.Longitude,
		"captured_at":     exposure.CapturedAt,
		"lens_id":         exposure.LensID,
		"lens_name":       exposure.LensName,
		"focal_length":    exposure.FocalLength,
		"image_data":      exposure.ImageData,
		"thumbnail_path":  exposure.ThumbnailPath,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update exposure %s: %w", exposure.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes an exposure by its ID
func (r *ExposureRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Exposure{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete exposure %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
