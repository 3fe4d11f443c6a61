package catalog

import "github.com/filmlog-app/filmlogbackend/models"

// Counts holds per-collection record counts, used by the migration
// routine's verification pass.
type Counts struct {
	Cameras   int64
	Lenses    int64
	FilmRolls int64
	Exposures int64
}

// Total returns the number of records across all entity collections.
func (c Counts) Total() int64 {
	return c.Cameras + c.Lenses + c.FilmRolls + c.Exposures
}

// Backend abstracts one storage mechanism behind the catalogue. Two
// implementations exist: the primary GORM/SQLite backend (repository
// package) and the legacy JSON-file backend (filestore package).
//
// Backends perform plain record storage only; validation, ID generation,
// exposure numbering, snapshots and cascades all live in Store so the two
// backends cannot drift apart semantically. List methods return records
// in insertion order. Lookups of absent IDs return ErrNotFound.
type Backend interface {
	ListCameras() ([]models.Camera, error)
	GetCamera(id string) (*models.Camera, error)
	CreateCamera(camera *models.Camera) error
	UpdateCamera(camera *models.Camera) error
	DeleteCamera(id string) error

	ListLenses() ([]models.Lens, error)
	GetLens(id string) (*models.Lens, error)
	CreateLens(lens *models.Lens) error
	UpdateLens(lens *models.Lens) error
	DeleteLens(id string) error

	ListFilmRolls() ([]models.FilmRoll, error)
	GetFilmRoll(id string) (*models.FilmRoll, error)
	CreateFilmRoll(roll *models.FilmRoll) error
	UpdateFilmRoll(roll *models.FilmRoll) error
	DeleteFilmRoll(id string) error

	ListExposures(rollID string) ([]models.Exposure, error)
	GetExposure(id string) (*models.Exposure, error)
	CreateExposure(exposure *models.Exposure) error
	UpdateExposure(exposure *models.Exposure) error
	DeleteExposure(id string) error

	GetSettings() (*models.Settings, error)
	PutSettings(settings *models.Settings) error

	GetAppState() (*models.AppState, error)
	PutAppState(state *models.AppState) error

	Counts() (Counts, error)
	Close() error
}
