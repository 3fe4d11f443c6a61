package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// CameraRepository handles database operations for Camera entities
type CameraRepository struct {
	DB *gorm.DB
}

// NewCameraRepository creates a new instance of CameraRepository
func NewCameraRepository(db *gorm.DB) *CameraRepository {
	return &CameraRepository{DB: db}
}

// Create inserts a new camera record
func (r *CameraRepository) Create(camera *models.Camera) error {
	if err := r.DB.Create(camera).Error; err != nil {
		return fmt.Errorf("failed to create camera %s %s: %w", camera.Make, camera.Model, err)
	}
	return nil
}

// ListAll retrieves all cameras in insertion order
func (r *CameraRepository) ListAll() ([]models.Camera, error) {
	var cameras []models.Camera
	if err := r.DB.Order("rowid").Find(&cameras).Error; err != nil {
		return nil, fmt.Errorf("failed to list cameras: %w", err)
	}
	return cameras, nil
}

// GetByID retrieves a camera by its ID
func (r *CameraRepository) GetByID(id string) (*models.Camera, error) {
	var camera models.Camera
	err := r.DB.Where("id = ?", id).First(&camera).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get camera %s: %w", id, err)
	}
	return &camera, nil
}

// Update replaces all stored fields of an existing camera
func (r *CameraRepository) Update(camera *models.Camera) error {
	result := r.DB.Model(&models.Camera{}).Where("id = ?", camera.ID).Updates(map[string]interface{}{
		"make":              camera.Make,
		"model":             camera.Model,
		"default_lens_id":   camera.DefaultLensID,
		"default_lens_name": camera.DefaultLensName,
		"updated_at":        camera.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update camera %s: %w", camera.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes a camera by its ID
func (r *CameraRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Camera{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete camera %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
