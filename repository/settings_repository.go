package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// SettingsRepository handles the singleton settings and app state rows
type SettingsRepository struct {
	DB *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get retrieves the singleton settings row
func (r *SettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.DB.Where("id = ?", models.SettingsID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Put upserts the singleton settings row
func (r *SettingsRepository) Put(settings *models.Settings) error {
	settings.ID = models.SettingsID
	err := r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetAppState retrieves the singleton app state row
func (r *SettingsRepository) GetAppState() (*models.AppState, error) {
	var state models.AppState
	err := r.DB.Where("id = ?", models.AppStateID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get app state: %w", err)
	}
	return &state, nil
}

// PutAppState upserts the singleton app state row
func (r *SettingsRepository) PutAppState(state *models.AppState) error {
	state.ID = models.AppStateID
	err := r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(state).Error
	if err != nil {
		return fmt.Errorf("failed to save app state: %w", err)
	}
	return nil
}
