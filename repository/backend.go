package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// GormBackend aggregates the per-entity repositories into the primary
// catalog.Backend implementation.
type GormBackend struct {
	DB        *gorm.DB
	Cameras   *CameraRepository
	Lenses    *LensRepository
	FilmRolls *FilmRollRepository
	Exposures *ExposureRepository
	Settings  *SettingsRepository
}

// compile-time interface check
var _ catalog.Backend = (*GormBackend)(nil)

// NewGormBackend creates the primary backend over an initialized GORM
// database handle.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{
		DB:        db,
		Cameras:   NewCameraRepository(db),
		Lenses:    NewLensRepository(db),
		FilmRolls: NewFilmRollRepository(db),
		Exposures: NewExposureRepository(db),
		Settings:  NewSettingsRepository(db),
	}
}

func (g *GormBackend) ListCameras() ([]models.Camera, error)       { return g.Cameras.ListAll() }
func (g *GormBackend) GetCamera(id string) (*models.Camera, error) { return g.Cameras.GetByID(id) }
func (g *GormBackend) CreateCamera(camera *models.Camera) error    { return g.Cameras.Create(camera) }
func (g *GormBackend) UpdateCamera(camera *models.Camera) error    { return g.Cameras.Update(camera) }
func (g *GormBackend) DeleteCamera(id string) error                { return g.Cameras.Delete(id) }

func (g *GormBackend) ListLenses() ([]models.Lens, error)      { return g.Lenses.ListAll() }
func (g *GormBackend) GetLens(id string) (*models.Lens, error) { return g.Lenses.GetByID(id) }
func (g *GormBackend) CreateLens(lens *models.Lens) error      { return g.Lenses.Create(lens) }
func (g *GormBackend) UpdateLens(lens *models.Lens) error      { return g.Lenses.Update(lens) }
func (g *GormBackend) DeleteLens(id string) error              { return g.Lenses.Delete(id) }

func (g *GormBackend) ListFilmRolls() ([]models.FilmRoll, error)       { return g.FilmRolls.ListAll() }
func (g *GormBackend) GetFilmRoll(id string) (*models.FilmRoll, error) { return g.FilmRolls.GetByID(id) }
func (g *GormBackend) CreateFilmRoll(roll *models.FilmRoll) error      { return g.FilmRolls.Create(roll) }
func (g *GormBackend) UpdateFilmRoll(roll *models.FilmRoll) error      { return g.FilmRolls.Update(roll) }
func (g *GormBackend) DeleteFilmRoll(id string) error                  { return g.FilmRolls.Delete(id) }

func (g *GormBackend) ListExposures(rollID string) ([]models.Exposure, error) {
	return g.Exposures.ListByRoll(rollID)
}
func (g *GormBackend) GetExposure(id string) (*models.Exposure, error) { return g.Exposures.GetByID(id) }
func (g *GormBackend) CreateExposure(exposure *models.Exposure) error  { return g.Exposures.Create(exposure) }
func (g *GormBackend) UpdateExposure(exposure *models.Exposure) error  { return g.Exposures.Update(exposure) }
func (g *GormBackend) DeleteExposure(id string) error                  { return g.Exposures.Delete(id) }

func (g *GormBackend) GetSettings() (*models.Settings, error)      { return g.Settings.Get() }
func (g *GormBackend) PutSettings(settings *models.Settings) error { return g.Settings.Put(settings) }
func (g *GormBackend) GetAppState() (*models.AppState, error)      { return g.Settings.GetAppState() }
func (g *GormBackend) PutAppState(state *models.AppState) error    { return g.Settings.PutAppState(state) }

// Counts returns per-collection record counts for migration
// verification.
func (g *GormBackend) Counts() (catalog.Counts, error) {
	var counts catalog.Counts
	if err := g.DB.Model(&models.Camera{}).Count(&counts.Cameras).Error; err != nil {
		return catalog.Counts{}, fmt.Errorf("failed to count cameras: %w", err)
	}
	if err := g.DB.Model(&models.Lens{}).Count(&counts.Lenses).Error; err != nil {
		return catalog.Counts{}, fmt.Errorf("failed to count lenses: %w", err)
	}
	if err := g.DB.Model(&models.FilmRoll{}).Count(&counts.FilmRolls).Error; err != nil {
		return catalog.Counts{}, fmt.Errorf("failed to count film rolls: %w", err)
	}
	if err := g.DB.Model(&models.Exposure{}).Count(&counts.Exposures).Error; err != nil {
		return catalog.Counts{}, fmt.Errorf("failed to count exposures: %w", err)
	}
	return counts, nil
}

// Close releases the underlying connection pool.
func (g *GormBackend) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	return sqlDB.Close()
}
