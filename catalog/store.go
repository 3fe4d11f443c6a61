package catalog

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filmlog-app/filmlogbackend/models"
)

// Mode identifies which backend the store currently treats as the source
// of truth.
type Mode int

const (
	ModePrimary Mode = iota
	ModeFallback
)

func (m Mode) String() string {
	if m == ModeFallback {
		return "fallback"
	}
	return "primary"
}

// Store is the catalogue's local data layer. It owns a primary backend
// and a legacy fallback backend and hides which one is in use: when a
// primary operation fails with a storage error, the same logical
// operation is retried against the fallback and the store latches into
// fallback mode for the rest of the session. Only a verified migration
// switches it back (see MigrateLegacy).
//
// All cross-collection rules live here rather than in the backends:
// validation, ID generation, exposure numbering, snapshot-on-write and
// cascade deletes behave identically regardless of which backend holds
// the data.
type Store struct {
	mu       sync.Mutex
	primary  Backend
	fallback Backend
	mode     Mode
}

// New creates a Store over the given backends. Either backend may be nil
// when it could not be opened; if both are nil the catalogue is unusable
// and ErrStorageUnavailable is returned.
func New(primary, fallback Backend) (*Store, error) {
	if primary == nil && fallback == nil {
		return nil, ErrStorageUnavailable
	}
	s := &Store{primary: primary, fallback: fallback}
	if primary == nil {
		log.Printf("catalog: no primary backend, starting in fallback mode")
		s.mode = ModeFallback
	}
	return s, nil
}

// Mode reports which backend is currently authoritative.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Close releases both backends.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	if s.primary != nil {
		firstErr = s.primary.Close()
	}
	if s.fallback != nil {
		if err := s.fallback.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// run executes one logical operation against the active backend,
// switching to the fallback on a storage failure. Caller errors
// (ErrNotFound, ValidationError) pass through without a switch. Must be
// called with s.mu held.
func (s *Store) run(op func(Backend) error) error {
	if s.mode == ModePrimary {
		err := op(s.primary)
		if err == nil || !isStorageError(err) {
			return err
		}
		if s.fallback == nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		log.Printf("catalog: primary backend failed (%v), switching to fallback for this session", err)
		s.mode = ModeFallback
	}
	err := op(s.fallback)
	if isStorageError(err) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

func newID() string {
	return uuid.NewString()
}

// --- cameras ---

func (s *Store) ListCameras() ([]models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cameras []models.Camera
	err := s.run(func(b Backend) error {
		var opErr error
		cameras, opErr = b.ListCameras()
		return opErr
	})
	return cameras, err
}

func (s *Store) GetCamera(id string) (*models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var camera *models.Camera
	err := s.run(func(b Backend) error {
		var opErr error
		camera, opErr = b.GetCamera(id)
		return opErr
	})
	return camera, err
}

// CreateCamera validates and persists a new camera. The generated ID and
// timestamps are filled in; any caller-supplied ID is discarded. When a
// default lens is referenced, its display name is snapshotted onto the
// record.
func (s *Store) CreateCamera(camera *models.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateCamera(camera); err != nil {
		return err
	}
	now := time.Now().Unix()
	camera.ID = newID()
	camera.CreatedAt = now
	camera.UpdatedAt = now
	return s.run(func(b Backend) error {
		if err := snapshotDefaultLens(b, camera); err != nil {
			return err
		}
		return b.CreateCamera(camera)
	})
}

// UpdateCamera replaces the stored camera with the given record. The
// creation timestamp is preserved and the default-lens snapshot is
// refreshed against the current lens record.
func (s *Store) UpdateCamera(camera *models.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateCamera(camera); err != nil {
		return err
	}
	return s.run(func(b Backend) error {
		existing, err := b.GetCamera(camera.ID)
		if err != nil {
			return err
		}
		camera.CreatedAt = existing.CreatedAt
		camera.UpdatedAt = time.Now().Unix()
		if err := snapshotDefaultLens(b, camera); err != nil {
			return err
		}
		return b.UpdateCamera(camera)
	})
}

// DeleteCamera removes a camera. Film rolls referencing it keep their
// snapshotted camera name but have the reference nulled so no roll
// points at a deleted ID.
func (s *Store) DeleteCamera(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(func(b Backend) error {
		if _, err := b.GetCamera(id); err != nil {
			return err
		}
		rolls, err := b.ListFilmRolls()
		if err != nil {
			return err
		}
		for i := range rolls {
			if rolls[i].CameraID != nil && *rolls[i].CameraID == id {
				rolls[i].CameraID = nil
				if err := b.UpdateFilmRoll(&rolls[i]); err != nil {
					return err
				}
			}
		}
		return b.DeleteCamera(id)
	})
}

func validateCamera(camera *models.Camera) error {
	if camera.Make == "" {
		return validationErrorf("make", "required")
	}
	if camera.Model == "" {
		return validationErrorf("model", "required")
	}
	return nil
}

func snapshotDefaultLens(b Backend, camera *models.Camera) error {
	if camera.DefaultLensID == nil {
		camera.DefaultLensName = nil
		return nil
	}
	lens, err := b.GetLens(*camera.DefaultLensID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return validationErrorf("default_lens_id", "lens %s does not exist", *camera.DefaultLensID)
		}
		return err
	}
	name := lens.DisplayName()
	camera.DefaultLensName = &name
	return nil
}

// --- lenses ---

func (s *Store) ListLenses() ([]models.Lens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lenses []models.Lens
	err := s.run(func(b Backend) error {
		var opErr error
		lenses, opErr = b.ListLenses()
		return opErr
	})
	return lenses, err
}

func (s *Store) GetLens(id string) (*models.Lens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lens *models.Lens
	err := s.run(func(b Backend) error {
		var opErr error
		lens, opErr = b.GetLens(id)
		return opErr
	})
	return lens, err
}

func (s *Store) CreateLens(lens *models.Lens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateLens(lens); err != nil {
		return err
	}
	now := time.Now().Unix()
	lens.ID = newID()
	lens.CreatedAt = now
	lens.UpdatedAt = now
	return s.run(func(b Backend) error {
		return b.CreateLens(lens)
	})
}

func (s *Store) UpdateLens(lens *models.Lens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateLens(lens); err != nil {
		return err
	}
	return s.run(func(b Backend) error {
		existing, err := b.GetLens(lens.ID)
		if err != nil {
			return err
		}
		lens.CreatedAt = existing.CreatedAt
		lens.UpdatedAt = time.Now().Unix()
		return b.UpdateLens(lens)
	})
}

// DeleteLens removes a lens. Exposures keep their snapshotted lens name
// and focal length (recorded settings are historical facts, not live
// references); cameras and the settings row lose the dangling ID but
// keep the snapshotted name.
func (s *Store) DeleteLens(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(func(b Backend) error {
		if _, err := b.GetLens(id); err != nil {
			return err
		}
		rolls, err := b.ListFilmRolls()
		if err != nil {
			return err
		}
		for i := range rolls {
			exposures, err := b.ListExposures(rolls[i].ID)
			if err != nil {
				return err
			}
			for j := range exposures {
				if exposures[j].LensID != nil && *exposures[j].LensID == id {
					exposures[j].LensID = nil
					if err := b.UpdateExposure(&exposures[j]); err != nil {
						return err
					}
				}
			}
		}
		cameras, err := b.ListCameras()
		if err != nil {
			return err
		}
		for i := range cameras {
			if cameras[i].DefaultLensID != nil && *cameras[i].DefaultLensID == id {
				cameras[i].DefaultLensID = nil
				if err := b.UpdateCamera(&cameras[i]); err != nil {
					return err
				}
			}
		}
		settings, err := getOrInitSettings(b)
		if err != nil {
			return err
		}
		if settings.LastLensID != nil && *settings.LastLensID == id {
			settings.LastLensID = nil
			if err := b.PutSettings(settings); err != nil {
				return err
			}
		}
		return b.DeleteLens(id)
	})
}

func validateLens(lens *models.Lens) error {
	if lens.Name == "" {
		return validationErrorf("name", "required")
	}
	if !models.IsValidAperture(lens.MaxAperture) {
		return validationErrorf("max_aperture", "%q is not a recognized aperture stop", lens.MaxAperture)
	}
	prime := lens.FocalLength != nil
	zoom := lens.MinFocalLength != nil || lens.MaxFocalLength != nil
	switch {
	case prime && zoom:
		return validationErrorf("focal_length", "a lens has either a single focal length or a range, not both")
	case !prime && !zoom:
		return validationErrorf("focal_length", "either a focal length or a focal-length range is required")
	case prime:
		if *lens.FocalLength <= 0 {
			return validationErrorf("focal_length", "must be positive")
		}
	default:
		if lens.MinFocalLength == nil || lens.MaxFocalLength == nil {
			return validationErrorf("focal_length", "a focal-length range needs both min and max")
		}
		if *lens.MinFocalLength <= 0 || *lens.MaxFocalLength <= *lens.MinFocalLength {
			return validationErrorf("focal_length", "range must satisfy 0 < min < max")
		}
	}
	return nil
}

// --- film rolls ---

func (s *Store) ListFilmRolls() ([]models.FilmRoll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rolls []models.FilmRoll
	err := s.run(func(b Backend) error {
		var opErr error
		rolls, opErr = b.ListFilmRolls()
		return opErr
	})
	return rolls, err
}

func (s *Store) GetFilmRoll(id string) (*models.FilmRoll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var roll *models.FilmRoll
	err := s.run(func(b Backend) error {
		var opErr error
		roll, opErr = b.GetFilmRoll(id)
		return opErr
	})
	return roll, err
}

// CreateFilmRoll validates and persists a new roll. A referenced camera
// must exist and has its display name snapshotted onto the roll.
func (s *Store) CreateFilmRoll(roll *models.FilmRoll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateFilmRoll(roll); err != nil {
		return err
	}
	now := time.Now().Unix()
	roll.ID = newID()
	roll.CurrentExposure = 0
	roll.CreatedAt = now
	roll.UpdatedAt = now
	return s.run(func(b Backend) error {
		if err := snapshotCamera(b, roll); err != nil {
			return err
		}
		return b.CreateFilmRoll(roll)
	})
}

func (s *Store) UpdateFilmRoll(roll *models.FilmRoll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateFilmRoll(roll); err != nil {
		return err
	}
	return s.run(func(b Backend) error {
		existing, err := b.GetFilmRoll(roll.ID)
		if err != nil {
			return err
		}
		// the exposure counter is owned by exposure creation/deletion
		roll.CurrentExposure = existing.CurrentExposure
		roll.CreatedAt = existing.CreatedAt
		roll.UpdatedAt = time.Now().Unix()
		if roll.CameraID == nil {
			// the camera snapshot is a historical fact; an unrelated
			// edit must not erase it
			roll.CameraName = existing.CameraName
		}
		if roll.CurrentExposure > roll.TotalExposures {
			return validationErrorf("total_exposures", "cannot be lowered below the %d exposures already recorded", roll.CurrentExposure)
		}
		if err := snapshotCamera(b, roll); err != nil {
			return err
		}
		return b.UpdateFilmRoll(roll)
	})
}

// DeleteFilmRoll removes a roll and cascades to its exposures.
func (s *Store) DeleteFilmRoll(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(func(b Backend) error {
		if _, err := b.GetFilmRoll(id); err != nil {
			return err
		}
		exposures, err := b.ListExposures(id)
		if err != nil {
			return err
		}
		for i := range exposures {
			if err := b.DeleteExposure(exposures[i].ID); err != nil {
				return err
			}
		}
		return b.DeleteFilmRoll(id)
	})
}

func validateFilmRoll(roll *models.FilmRoll) error {
	if roll.Name == "" {
		return validationErrorf("name", "required")
	}
	if roll.ISO < models.MinISO || roll.ISO > models.MaxISO {
		return validationErrorf("iso", "must be between %d and %d", models.MinISO, models.MaxISO)
	}
	if roll.TotalExposures < models.MinExposureCount || roll.TotalExposures > models.MaxExposureCount {
		return validationErrorf("total_exposures", "must be between %d and %d", models.MinExposureCount, models.MaxExposureCount)
	}
	return nil
}

func snapshotCamera(b Backend, roll *models.FilmRoll) error {
	if roll.CameraID == nil {
		// keep any historical CameraName: a roll whose camera was
		// deleted still shows what it was shot on
		return nil
	}
	camera, err := b.GetCamera(*roll.CameraID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return validationErrorf("camera_id", "camera %s does not exist", *roll.CameraID)
		}
		return err
	}
	name := camera.DisplayName()
	roll.CameraName = &name
	return nil
}

// --- exposures ---

func (s *Store) ListExposures(rollID string) ([]models.Exposure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var exposures []models.Exposure
	err := s.run(func(b Backend) error {
		if _, opErr := b.GetFilmRoll(rollID); opErr != nil {
			return opErr
		}
		var opErr error
		exposures, opErr = b.ListExposures(rollID)
		return opErr
	})
	return exposures, err
}

func (s *Store) GetExposure(id string) (*models.Exposure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var exposure *models.Exposure
	err := s.run(func(b Backend) error {
		var opErr error
		exposure, opErr = b.GetExposure(id)
		return opErr
	})
	return exposure, err
}

// CreateExposure records the next exposure on a roll. The exposure
// number is assigned by the store (highest existing number plus one) and
// is rejected once the roll's budget is spent. Blank aperture and
// shutter values are pre-populated from the last-used settings, a
// referenced lens is snapshotted, and the settings row is updated with
// the values actually recorded.
func (s *Store) CreateExposure(rollID string, exposure *models.Exposure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exposure.ID = newID()
	exposure.FilmRollID = rollID
	if exposure.CapturedAt == 0 {
		exposure.CapturedAt = time.Now().Unix()
	}
	if err := validateExposure(exposure); err != nil {
		return err
	}
	return s.run(func(b Backend) error {
		roll, err := b.GetFilmRoll(rollID)
		if err != nil {
			return err
		}
		existing, err := b.ListExposures(rollID)
		if err != nil {
			return err
		}
		next := 1
		for i := range existing {
			if existing[i].ExposureNumber >= next {
				next = existing[i].ExposureNumber + 1
			}
		}
		if next > roll.TotalExposures {
			return validationErrorf("exposure_number", "roll %q is fully exposed (%d of %d)", roll.Name, roll.TotalExposures, roll.TotalExposures)
		}
		exposure.ExposureNumber = next

		settings, err := getOrInitSettings(b)
		if err != nil {
			return err
		}
		applyLastUsed(exposure, settings)
		if err := snapshotLens(b, exposure); err != nil {
			return err
		}

		if err := b.CreateExposure(exposure); err != nil {
			return err
		}

		roll.CurrentExposure = len(existing) + 1
		roll.UpdatedAt = time.Now().Unix()
		if err := b.UpdateFilmRoll(roll); err != nil {
			return err
		}

		recordLastUsed(settings, exposure)
		return b.PutSettings(settings)
	})
}

// UpdateExposure replaces the mutable fields of an exposure. The roll
// assignment and exposure number never change after creation.
func (s *Store) UpdateExposure(exposure *models.Exposure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateExposure(exposure); err != nil {
		return err
	}
	return s.run(func(b Backend) error {
		existing, err := b.GetExposure(exposure.ID)
		if err != nil {
			return err
		}
		exposure.FilmRollID = existing.FilmRollID
		exposure.ExposureNumber = existing.ExposureNumber
		if exposure.CapturedAt == 0 {
			exposure.CapturedAt = existing.CapturedAt
		}
		if exposure.LensID == nil {
			// lens snapshots survive edits that don't touch the lens,
			// including edits after the lens itself was deleted
			exposure.LensName = existing.LensName
			if exposure.FocalLength == nil {
				exposure.FocalLength = existing.FocalLength
			}
		}
		if exposure.ImageData == nil {
			exposure.ImageData = existing.ImageData
			exposure.ThumbnailPath = existing.ThumbnailPath
		}
		if err := snapshotLens(b, exposure); err != nil {
			return err
		}
		return b.UpdateExposure(exposure)
	})
}

// DeleteExposure removes an exposure and rolls the owning roll's counter
// back to the number of exposures remaining.
func (s *Store) DeleteExposure(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(func(b Backend) error {
		exposure, err := b.GetExposure(id)
		if err != nil {
			return err
		}
		if err := b.DeleteExposure(id); err != nil {
			return err
		}
		roll, err := b.GetFilmRoll(exposure.FilmRollID)
		if err != nil {
			// roll already gone (cascade in progress), nothing to roll back
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		remaining, err := b.ListExposures(roll.ID)
		if err != nil {
			return err
		}
		roll.CurrentExposure = len(remaining)
		roll.UpdatedAt = time.Now().Unix()
		return b.UpdateFilmRoll(roll)
	})
}

func validateExposure(exposure *models.Exposure) error {
	if (exposure.Latitude == nil) != (exposure.Longitude == nil) {
		return validationErrorf("location", "latitude and longitude must be set together")
	}
	if exposure.Latitude != nil {
		if *exposure.Latitude < -90 || *exposure.Latitude > 90 {
			return validationErrorf("latitude", "must be between -90 and 90")
		}
		if *exposure.Longitude < -180 || *exposure.Longitude > 180 {
			return validationErrorf("longitude", "must be between -180 and 180")
		}
	}
	return nil
}

func snapshotLens(b Backend, exposure *models.Exposure) error {
	if exposure.LensID == nil {
		// keep any historical LensName from a since-deleted lens
		return nil
	}
	lens, err := b.GetLens(*exposure.LensID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return validationErrorf("lens_id", "lens %s does not exist", *exposure.LensID)
		}
		return err
	}
	name := lens.DisplayName()
	exposure.LensName = &name
	if exposure.FocalLength == nil && lens.FocalLength != nil {
		fl := *lens.FocalLength
		exposure.FocalLength = &fl
	}
	return nil
}

func applyLastUsed(exposure *models.Exposure, settings *models.Settings) {
	if exposure.Aperture == "" {
		exposure.Aperture = settings.LastAperture
	}
	if exposure.ShutterSpeed == "" {
		exposure.ShutterSpeed = settings.LastShutterSpeed
	}
	if exposure.LensID == nil && exposure.LensName == nil && settings.LastLensID != nil {
		id := *settings.LastLensID
		exposure.LensID = &id
	}
}

func recordLastUsed(settings *models.Settings, exposure *models.Exposure) {
	if exposure.Aperture != "" {
		settings.LastAperture = exposure.Aperture
	}
	if exposure.ShutterSpeed != "" {
		settings.LastShutterSpeed = exposure.ShutterSpeed
	}
	if exposure.LensID != nil {
		id := *exposure.LensID
		settings.LastLensID = &id
		settings.LastLensName = exposure.LensName
	}
	settings.UpdatedAt = time.Now().Unix()
}

// --- settings ---

func (s *Store) GetSettings() (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var settings *models.Settings
	err := s.run(func(b Backend) error {
		var opErr error
		settings, opErr = getOrInitSettings(b)
		return opErr
	})
	return settings, err
}

func (s *Store) UpdateSettings(settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.ID = models.SettingsID
	settings.UpdatedAt = time.Now().Unix()
	return s.run(func(b Backend) error {
		if settings.LastLensID != nil {
			lens, err := b.GetLens(*settings.LastLensID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return validationErrorf("last_lens_id", "lens %s does not exist", *settings.LastLensID)
				}
				return err
			}
			name := lens.DisplayName()
			settings.LastLensName = &name
		} else {
			existing, err := getOrInitSettings(b)
			if err != nil {
				return err
			}
			settings.LastLensName = existing.LastLensName
		}
		return b.PutSettings(settings)
	})
}

// getOrInitSettings reads the singleton settings row, returning an
// empty one when the backend has none yet.
func getOrInitSettings(b Backend) (*models.Settings, error) {
	settings, err := b.GetSettings()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &models.Settings{ID: models.SettingsID}, nil
		}
		return nil, err
	}
	return settings, nil
}

// --- import/restore ---

// RestoreFilmRoll persists a roll and its exposures with their IDs
// preserved, used by the import path to keep export/import round-trips
// exact. A roll ID already present in the store is rejected rather than
// clobbered. Nothing is persisted unless the whole document validates.
func (s *Store) RestoreFilmRoll(roll *models.FilmRoll, exposures []models.Exposure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validateFilmRoll(roll); err != nil {
		return err
	}
	if roll.ID == "" {
		roll.ID = newID()
	}
	seen := make(map[int]bool, len(exposures))
	for i := range exposures {
		if exposures[i].ExposureNumber < 1 || exposures[i].ExposureNumber > roll.TotalExposures {
			return validationErrorf("exposure_number", "exposure number %d outside 1..%d", exposures[i].ExposureNumber, roll.TotalExposures)
		}
		if seen[exposures[i].ExposureNumber] {
			return validationErrorf("exposure_number", "duplicate exposure number %d", exposures[i].ExposureNumber)
		}
		seen[exposures[i].ExposureNumber] = true
		if err := validateExposure(&exposures[i]); err != nil {
			return err
		}
	}
	return s.run(func(b Backend) error {
		if _, err := b.GetFilmRoll(roll.ID); err == nil {
			return validationErrorf("film_roll_id", "film roll %s already exists; delete it before importing", roll.ID)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		now := time.Now().Unix()
		if roll.CreatedAt == 0 {
			roll.CreatedAt = now
		}
		roll.UpdatedAt = now
		roll.CurrentExposure = len(exposures)
		if err := b.CreateFilmRoll(roll); err != nil {
			return err
		}
		for i := range exposures {
			if exposures[i].ID == "" {
				exposures[i].ID = newID()
			}
			exposures[i].FilmRollID = roll.ID
			// imported lens references are historical; keep names, drop IDs
			exposures[i].LensID = nil
			if err := b.CreateExposure(&exposures[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
