// Package filestore implements the legacy catalogue backend: a single
// JSON document keyed by collection name, rewritten atomically on every
// mutation. It is the lower-capacity fallback the catalog switches to
// when the primary SQLite backend fails, and the source the one-time
// migration reads from.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// document is the on-disk shape of the legacy catalogue file.
type document struct {
	Cameras   []models.Camera   `json:"cameras"`
	Lenses    []models.Lens     `json:"lenses"`
	FilmRolls []models.FilmRoll `json:"filmRolls"`
	Exposures []models.Exposure `json:"exposures"`
	Settings  *models.Settings  `json:"settings,omitempty"`
	AppState  *models.AppState  `json:"appState,omitempty"`
}

// FileBackend implements catalog.Backend over one JSON file.
type FileBackend struct {
	path string
	doc  document
}

var _ catalog.Backend = (*FileBackend)(nil)

// Open loads (or initializes) the legacy catalogue file. A missing file
// is an empty catalogue, not an error.
func Open(path string) (*FileBackend, error) {
	fb := &FileBackend{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fb, nil
		}
		return nil, fmt.Errorf("failed to read legacy catalogue %s: %w", path, err)
	}
	if len(data) == 0 {
		return fb, nil
	}
	if err := json.Unmarshal(data, &fb.doc); err != nil {
		return nil, fmt.Errorf("failed to parse legacy catalogue %s: %w", path, err)
	}
	log.Printf("filestore: loaded legacy catalogue from %s", path)
	return fb, nil
}

// persist rewrites the whole document via a temp file and rename so a
// crash mid-write never corrupts the catalogue.
func (f *FileBackend) persist() error {
	data, err := json.MarshalIndent(&f.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode legacy catalogue: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalogue directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalogue file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp catalogue file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp catalogue file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace catalogue file %s: %w", f.path, err)
	}
	return nil
}

// --- cameras ---

func (f *FileBackend) ListCameras() ([]models.Camera, error) {
	out := make([]models.Camera, len(f.doc.Cameras))
	copy(out, f.doc.Cameras)
	return out, nil
}

func (f *FileBackend) GetCamera(id string) (*models.Camera, error) {
	for i := range f.doc.Cameras {
		if f.doc.Cameras[i].ID == id {
			camera := f.doc.Cameras[i]
			return &camera, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *FileBackend) CreateCamera(camera *models.Camera) error {
	f.doc.Cameras = append(f.doc.Cameras, *camera)
	if err := f.persist(); err != nil {
		f.doc.Cameras = f.doc.Cameras[:len(f.doc.Cameras)-1]
		return err
	}
	return nil
}

func (f *FileBackend) UpdateCamera(camera *models.Camera) error {
	for i := range f.doc.Cameras {
		if f.doc.Cameras[i].ID == camera.ID {
			previous := f.doc.Cameras[i]
			f.doc.Cameras[i] = *camera
			if err := f.persist(); err != nil {
				f.doc.Cameras[i] = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (f *FileBackend) DeleteCamera(id string) error {
	for i := range f.doc.Cameras {
		if f.doc.Cameras[i].ID == id {
			previous := f.doc.Cameras
			f.doc.Cameras = append(append([]models.Camera{}, previous[:i]...), previous[i+1:]...)
			if err := f.persist(); err != nil {
				f.doc.Cameras = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

// --- lenses ---

func (f *FileBackend) ListLenses() ([]models.Lens, error) {
	out := make([]models.Lens, len(f.doc.Lenses))
	copy(out, f.doc.Lenses)
	return out, nil
}

func (f *FileBackend) GetLens(id string) (*models.Lens, error) {
	for i := range f.doc.Lenses {
		if f.doc.Lenses[i].ID == id {
			lens := f.doc.Lenses[i]
			return &lens, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *FileBackend) CreateLens(lens *models.Lens) error {
	f.doc.Lenses = append(f.doc.Lenses, *lens)
	if err := f.persist(); err != nil {
		f.doc.Lenses = f.doc.Lenses[:len(f.doc.Lenses)-1]
		return err
	}
	return nil
}

func (f *FileBackend) UpdateLens(lens *models.Lens) error {
	for i := range f.doc.Lenses {
		if f.doc.Lenses[i].ID == lens.ID {
			previous := f.doc.Lenses[i]
			f.doc.Lenses[i] = *lens
			if err := f.persist(); err != nil {
				f.doc.Lenses[i] = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (f *FileBackend) DeleteLens(id string) error {
	for i := range f.doc.Lenses {
		if f.doc.Lenses[i].ID == id {
			previous := f.doc.Lenses
			f.doc.Lenses = append(append([]models.Lens{}, previous[:i]...), previous[i+1:]...)
			if err := f.persist(); err != nil {
				f.doc.Lenses = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

// --- film rolls ---

func (f *FileBackend) ListFilmRolls() ([]models.FilmRoll, error) {
	out := make([]models.FilmRoll, len(f.doc.FilmRolls))
	copy(out, f.doc.FilmRolls)
	return out, nil
}

func (f *FileBackend) GetFilmRoll(id string) (*models.FilmRoll, error) {
	for i := range f.doc.FilmRolls {
		if f.doc.FilmRolls[i].ID == id {
			roll := f.doc.FilmRolls[i]
			return &roll, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *FileBackend) CreateFilmRoll(roll *models.FilmRoll) error {
	f.doc.FilmRolls = append(f.doc.FilmRolls, *roll)
	if err := f.persist(); err != nil {
		f.doc.FilmRolls = f.doc.FilmRolls[:len(f.doc.FilmRolls)-1]
		return err
	}
	return nil
}

func (f *FileBackend) UpdateFilmRoll(roll *models.FilmRoll) error {
	for i := range f.doc.FilmRolls {
		if f.doc.FilmRolls[i].ID == roll.ID {
			previous := f.doc.FilmRolls[i]
			f.doc.FilmRolls[i] = *roll
			if err := f.persist(); err != nil {
				f.doc.FilmRolls[i] = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (f *FileBackend) DeleteFilmRoll(id string) error {
	for i := range f.doc.FilmRolls {
		if f.doc.FilmRolls[i].ID == id {
			previous := f.doc.FilmRolls
			f.doc.FilmRolls = append(append([]models.FilmRoll{}, previous[:i]...), previous[i+1:]...)
			if err := f.persist(); err != nil {
				f.doc.FilmRolls = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

// --- exposures ---

func (f *FileBackend) ListExposures(rollID string) ([]models.Exposure, error) {
	var out []models.Exposure
	for i := range f.doc.Exposures {
		if f.doc.Exposures[i].FilmRollID == rollID {
			out = append(out, f.doc.Exposures[i])
		}
	}
	// file order is insertion order, which for exposures is also
	// exposure-number order; keep the stronger guarantee anyway
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].ExposureNumber > out[j].ExposureNumber; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (f *FileBackend) GetExposure(id string) (*models.Exposure, error) {
	for i := range f.doc.Exposures {
		if f.doc.Exposures[i].ID == id {
			exposure := f.doc.Exposures[i]
			return &exposure, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *FileBackend) CreateExposure(exposure *models.Exposure) error {
	f.doc.Exposures = append(f.doc.Exposures, *exposure)
	if err := f.persist(); err != nil {
		f.doc.Exposures = f.doc.Exposures[:len(f.doc.Exposures)-1]
		return err
	}
	return nil
}

func (f *FileBackend) UpdateExposure(exposure *models.Exposure) error {
	for i := range f.doc.Exposures {
		if f.doc.Exposures[i].ID == exposure.ID {
			previous := f.doc.Exposures[i]
			f.doc.Exposures[i] = *exposure
			if err := f.persist(); err != nil {
				f.doc.Exposures[i] = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (f *FileBackend) DeleteExposure(id string) error {
	for i := range f.doc.Exposures {
		if f.doc.Exposures[i].ID == id {
			previous := f.doc.Exposures
			f.doc.Exposures = append(append([]models.Exposure{}, previous[:i]...), previous[i+1:]...)
			if err := f.persist(); err != nil {
				f.doc.Exposures = previous
				return err
			}
			return nil
		}
	}
	return catalog.ErrNotFound
}

// --- settings / app state ---

func (f *FileBackend) GetSettings() (*models.Settings, error) {
	if f.doc.Settings == nil {
		return nil, catalog.ErrNotFound
	}
	settings := *f.doc.Settings
	return &settings, nil
}

func (f *FileBackend) PutSettings(settings *models.Settings) error {
	previous := f.doc.Settings
	s := *settings
	f.doc.Settings = &s
	if err := f.persist(); err != nil {
		f.doc.Settings = previous
		return err
	}
	return nil
}

func (f *FileBackend) GetAppState() (*models.AppState, error) {
	if f.doc.AppState == nil {
		return nil, catalog.ErrNotFound
	}
	state := *f.doc.AppState
	return &state, nil
}

func (f *FileBackend) PutAppState(state *models.AppState) error {
	previous := f.doc.AppState
	st := *state
	f.doc.AppState = &st
	if err := f.persist(); err != nil {
		f.doc.AppState = previous
		return err
	}
	return nil
}

// Counts returns per-collection record counts.
func (f *FileBackend) Counts() (catalog.Counts, error) {
	return catalog.Counts{
		Cameras:   int64(len(f.doc.Cameras)),
		Lenses:    int64(len(f.doc.Lenses)),
		FilmRolls: int64(len(f.doc.FilmRolls)),
		Exposures: int64(len(f.doc.Exposures)),
	}, nil
}

// Close is a no-op; every mutation is already durable.
func (f *FileBackend) Close() error {
	return nil
}
