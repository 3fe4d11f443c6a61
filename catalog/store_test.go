package catalog_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/filestore"
	"github.com/filmlog-app/filmlogbackend/models"
	"github.com/filmlog-app/filmlogbackend/repository"
)

func newGormBackend(t *testing.T) *repository.GormBackend {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Camera{}, &models.Lens{}, &models.FilmRoll{},
		&models.Exposure{}, &models.Settings{}, &models.AppState{},
	))
	return repository.NewGormBackend(db)
}

func newFileBackend(t *testing.T) *filestore.FileBackend {
	t.Helper()
	fb, err := filestore.Open(filepath.Join(t.TempDir(), "catalog.json"))
	require.NoError(t, err)
	return fb
}

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.New(newGormBackend(t), newFileBackend(t))
	require.NoError(t, err)
	return store
}

func TestNewRequiresABackend(t *testing.T) {
	_, err := catalog.New(nil, nil)
	assert.ErrorIs(t, err, catalog.ErrStorageUnavailable)

	store, err := catalog.New(nil, newFileBackend(t))
	require.NoError(t, err)
	assert.Equal(t, catalog.ModeFallback, store.Mode())
}

func TestCreateFilmRollStoresFields(t *testing.T) {
	store := newTestStore(t)

	roll := models.FilmRoll{Name: "Kodak Portra 400", ISO: 400, TotalExposures: 36}
	require.NoError(t, store.CreateFilmRoll(&roll))
	require.NotEmpty(t, roll.ID)

	stored, err := store.GetFilmRoll(roll.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kodak Portra 400", stored.Name)
	assert.Equal(t, 400, stored.ISO)
	assert.Equal(t, 36, stored.TotalExposures)
	assert.Equal(t, 0, stored.CurrentExposure)
}

func TestCreateFilmRollValidation(t *testing.T) {
	tests := []struct {
		name string
		roll models.FilmRoll
	}{
		{"iso below range", models.FilmRoll{Name: "r", ISO: 24, TotalExposures: 36}},
		{"iso above range", models.FilmRoll{Name: "r", ISO: 6401, TotalExposures: 36}},
		{"zero exposures", models.FilmRoll{Name: "r", ISO: 400, TotalExposures: 0}},
		{"too many exposures", models.FilmRoll{Name: "r", ISO: 400, TotalExposures: 101}},
		{"missing name", models.FilmRoll{ISO: 400, TotalExposures: 36}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			err := store.CreateFilmRoll(&tt.roll)
			assert.True(t, catalog.IsValidationError(err), "expected validation error, got %v", err)

			rolls, listErr := store.ListFilmRolls()
			require.NoError(t, listErr)
			assert.Empty(t, rolls, "nothing may be persisted on validation failure")
		})
	}
}

func TestBoundaryValuesAccepted(t *testing.T) {
	store := newTestStore(t)
	for _, roll := range []models.FilmRoll{
		{Name: "slow", ISO: 25, TotalExposures: 1},
		{Name: "fast", ISO: 6400, TotalExposures: 100},
	} {
		r := roll
		assert.NoError(t, store.CreateFilmRoll(&r))
	}
}

func TestCameraDisplayName(t *testing.T) {
	store := newTestStore(t)

	camera := models.Camera{Make: "Nikon", Model: "D750"}
	require.NoError(t, store.CreateCamera(&camera))

	stored, err := store.GetCamera(camera.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nikon D750", stored.DisplayName())
}

func TestFilmRollSnapshotsCameraName(t *testing.T) {
	store := newTestStore(t)

	camera := models.Camera{Make: "Nikon", Model: "F3"}
	require.NoError(t, store.CreateCamera(&camera))

	roll := models.FilmRoll{Name: "Tri-X", ISO: 400, TotalExposures: 36, CameraID: &camera.ID}
	require.NoError(t, store.CreateFilmRoll(&roll))
	require.NotNil(t, roll.CameraName)
	assert.Equal(t, "Nikon F3", *roll.CameraName)
}

func TestDeleteCameraKeepsRollSnapshot(t *testing.T) {
	store := newTestStore(t)

	camera := models.Camera{Make: "Leica", Model: "M6"}
	require.NoError(t, store.CreateCamera(&camera))
	roll := models.FilmRoll{Name: "HP5", ISO: 400, TotalExposures: 36, CameraID: &camera.ID}
	require.NoError(t, store.CreateFilmRoll(&roll))

	require.NoError(t, store.DeleteCamera(camera.ID))

	_, err := store.GetCamera(camera.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	stored, err := store.GetFilmRoll(roll.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CameraID)
	require.NotNil(t, stored.CameraName)
	assert.Equal(t, "Leica M6", *stored.CameraName)
}

func TestExposureNumbering(t *testing.T) {
	store := newTestStore(t)

	roll := models.FilmRoll{Name: "short roll", ISO: 100, TotalExposures: 3}
	require.NoError(t, store.CreateFilmRoll(&roll))

	for i := 1; i <= 3; i++ {
		exposure := models.Exposure{Aperture: "f/8", ShutterSpeed: "1/125"}
		require.NoError(t, store.CreateExposure(roll.ID, &exposure))
		assert.Equal(t, i, exposure.ExposureNumber)
	}

	// budget spent
	extra := models.Exposure{}
	err := store.CreateExposure(roll.ID, &extra)
	assert.True(t, catalog.IsValidationError(err), "expected validation error, got %v", err)

	stored, err := store.GetFilmRoll(roll.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.CurrentExposure)

	exposures, err := store.ListExposures(roll.ID)
	require.NoError(t, err)
	require.Len(t, exposures, 3)
	for i := range exposures {
		assert.Equal(t, i+1, exposures[i].ExposureNumber)
	}
}

func TestExposureCounterTracksDeletes(t *testing.T) {
	store := newTestStore(t)

	roll := models.FilmRoll{Name: "r", ISO: 200, TotalExposures: 10}
	require.NoError(t, store.CreateFilmRoll(&roll))

	var exposures []models.Exposure
	for i := 0; i < 3; i++ {
		e := models.Exposure{}
		require.NoError(t, store.CreateExposure(roll.ID, &e))
		exposures = append(exposures, e)
	}

	require.NoError(t, store.DeleteExposure(exposures[1].ID))

	stored, err := store.GetFilmRoll(roll.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentExposure)

	// numbers stay unique and increasing after the gap
	next := models.Exposure{}
	require.NoError(t, store.CreateExposure(roll.ID, &next))
	assert.Equal(t, 4, next.ExposureNumber)
}

func TestRollUpdateKeepsSnapshotOfDeletedCamera(t *testing.T) {
	store := newTestStore(t)

	camera := models.Camera{Make: "Pentax", Model: "K1000"}
	require.NoError(t, store.CreateCamera(&camera))
	roll := models.FilmRoll{Name: "Ektar", ISO: 100, TotalExposures: 36, CameraID: &camera.ID}
	require.NoError(t, store.CreateFilmRoll(&roll))

	require.NoError(t, store.DeleteCamera(camera.ID))

	// a rename carries only the mutable fields, the way the API sends it
	renamed := models.FilmRoll{ID: roll.ID, Name: "Ektar (holiday)", ISO: 100, TotalExposures: 36}
	require.NoError(t, store.UpdateFilmRoll(&renamed))

	stored, err := store.GetFilmRoll(roll.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ektar (holiday)", stored.Name)
	assert.Nil(t, stored.CameraID)
	require.NotNil(t, stored.CameraName, "historical camera snapshot must survive an unrelated update")
	assert.Equal(t, "Pentax K1000", *stored.CameraName)
}

func TestExposureUpdateKeepsSnapshotOfDeletedLens(t *testing.T) {
	store := newTestStore(t)

	fl := 50.0
	lens := models.Lens{Name: "Nikkor", MaxAperture: "f/1.8", FocalLength: &fl}
	require.NoError(t, store.CreateLens(&lens))
	roll := models.FilmRoll{Name: "r", ISO: 400, TotalExposures: 36}
	require.NoError(t, store.CreateFilmRoll(&roll))

	image := "data:image/jpeg;base64,/9j/4AAQ"
	thumb := "thumb-1.jpg"
	exposure := models.Exposure{
		Aperture:      "f/2.8",
		ShutterSpeed:  "1/250",
		LensID:        &lens.ID,
		ImageData:     &image,
		ThumbnailPath: &thumb,
	}
	require.NoError(t, store.CreateExposure(roll.ID, &exposure))

	require.NoError(t, store.DeleteLens(lens.ID))

	// editing the notes sends neither the lens nor the image fields
	edited := models.Exposure{
		ID:             exposure.ID,
		Aperture:       "f/2.8",
		ShutterSpeed:   "1/250",
		AdditionalInfo: "pushed one stop",
	}
	require.NoError(t, store.UpdateExposure(&edited))

	stored, err := store.GetExposure(exposure.ID)
	require.NoError(t, err)
	assert.Equal(t, "pushed one stop", stored.AdditionalInfo)
	assert.Nil(t, stored.LensID)
	require.NotNil(t, stored.LensName, "historical lens snapshot must survive an unrelated update")
	assert.Equal(t, "Nikkor 50mm f/1.8", *stored.LensName)
	require.NotNil(t, stored.FocalLength)
	assert.Equal(t, 50.0, *stored.FocalLength)
	require.NotNil(t, stored.ImageData)
	assert.Equal(t, image, *stored.ImageData)
	require.NotNil(t, stored.ThumbnailPath)
	assert.Equal(t, thumb, *stored.ThumbnailPath)
}

func TestSettingsUpdateKeepsSnapshotOfDeletedLens(t *testing.T) {
	store := newTestStore(t)

	fl := 35.0
	lens := models.Lens{Name: "Summicron", MaxAperture: "f/2", FocalLength: &fl}
	require.NoError(t, store.CreateLens(&lens))
	require.NoError(t, store.UpdateSettings(&models.Settings{LastLensID: &lens.ID}))

	require.NoError(t, store.DeleteLens(lens.ID))

	require.NoError(t, store.UpdateSettings(&models.Settings{LastAperture: "f/16"}))

	settings, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "f/16", settings.LastAperture)
	assert.Nil(t, settings.LastLensID)
	require.NotNil(t, settings.LastLensName, "historical lens snapshot must survive an unrelated update")
	assert.Equal(t, "Summicron 35mm f/2", *settings.LastLensName)
}

func TestDeleteLensPreservesExposureSnapshot(t *testing.T) {
	store := newTestStore(t)

	fl := 50.0
	lens := models.Lens{Name: "Nikkor", MaxAperture: "f/1.8", FocalLength: &fl}
	require.NoError(t, store.CreateLens(&lens))

	roll := models.FilmRoll{Name: "r", ISO: 400, TotalExposures: 36}
	require.NoError(t, store.CreateFilmRoll(&roll))

	exposure := models.Exposure{Aperture: "f/2.8", ShutterSpeed: "1/250", LensID: &lens.ID}
	require.NoError(t, store.CreateExposure(roll.ID, &exposure))
	require.NotNil(t, exposure.LensName)
	lensName := *exposure.LensName

	require.NoError(t, store.DeleteLens(lens.ID))

	_, err := store.GetLens(lens.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	stored, err := store.GetExposure(exposure.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LensID)
	require.NotNil(t, stored.LensName)
	assert.Equal(t, lensName, *stored.LensName)
	assert.Equal(t, "f/2.8", stored.Aperture)
	require.NotNil(t, stored.FocalLength)
	assert.Equal(t, 50.0, *stored.FocalLength)
}

func TestLensFocalLengthExclusivity(t *testing.T) {
	fl, minFL, maxFL := 50.0, 28.0, 75.0
	tests := []struct {
		name string
		lens models.Lens
		ok   bool
	}{
		{"prime", models.Lens{Name: "p", MaxAperture: "f/1.8", FocalLength: &fl}, true},
		{"zoom", models.Lens{Name: "z", MaxAperture: "f/2.8", MinFocalLength: &minFL, MaxFocalLength: &maxFL}, true},
		{"both", models.Lens{Name: "b", MaxAperture: "f/2.8", FocalLength: &fl, MinFocalLength: &minFL, MaxFocalLength: &maxFL}, false},
		{"neither", models.Lens{Name: "n", MaxAperture: "f/2.8"}, false},
		{"half a range", models.Lens{Name: "h", MaxAperture: "f/2.8", MinFocalLength: &minFL}, false},
		{"bad aperture", models.Lens{Name: "a", MaxAperture: "f/2.9", FocalLength: &fl}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			lens := tt.lens
			err := store.CreateLens(&lens)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, catalog.IsValidationError(err), "expected validation error, got %v", err)
			}
		})
	}
}

func TestDeleteFilmRollCascadesToExposures(t *testing.T) {
	store := newTestStore(t)

	roll := models.FilmRoll{Name: "r", ISO: 400, TotalExposures: 36}
	require.NoError(t, store.CreateFilmRoll(&roll))
	exposure := models.Exposure{}
	require.NoError(t, store.CreateExposure(roll.ID, &exposure))

	require.NoError(t, store.DeleteFilmRoll(roll.ID))

	_, err := store.GetFilmRoll(roll.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = store.GetExposure(exposure.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSettingsPrefillAndRecord(t *testing.T) {
	store := newTestStore(t)

	roll := models.FilmRoll{Name: "r", ISO: 400, TotalExposures: 36}
	require.NoError(t, store.CreateFilmRoll(&roll))

	first := models.Exposure{Aperture: "f/5.6", ShutterSpeed: "1/500"}
	require.NoError(t, store.CreateExposure(roll.ID, &first))

	// blank values are filled from the last-used settings
	second := models.Exposure{}
	require.NoError(t, store.CreateExposure(roll.ID, &second))
	assert.Equal(t, "f/5.6", second.Aperture)
	assert.Equal(t, "1/500", second.ShutterSpeed)

	settings, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "f/5.6", settings.LastAperture)
	assert.Equal(t, "1/500", settings.LastShutterSpeed)
}

func TestNotFoundLookups(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetCamera("missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = store.GetFilmRoll("missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.ErrorIs(t, store.DeleteLens("missing"), catalog.ErrNotFound)
	assert.ErrorIs(t, store.DeleteExposure("missing"), catalog.ErrNotFound)
}

// brokenBackend fails every operation with a storage error, standing in
// for an unavailable SQLite database.
type brokenBackend struct {
	catalog.Backend
}

var errDiskGone = errors.New("disk I/O error")

func (b *brokenBackend) ListCameras() ([]models.Camera, error)        { return nil, errDiskGone }
func (b *brokenBackend) GetCamera(string) (*models.Camera, error)     { return nil, errDiskGone }
func (b *brokenBackend) CreateCamera(*models.Camera) error            { return errDiskGone }
func (b *brokenBackend) ListFilmRolls() ([]models.FilmRoll, error)    { return nil, errDiskGone }
func (b *brokenBackend) GetFilmRoll(string) (*models.FilmRoll, error) { return nil, errDiskGone }
func (b *brokenBackend) CreateFilmRoll(*models.FilmRoll) error        { return errDiskGone }

func TestFallbackLatchesOnPrimaryFailure(t *testing.T) {
	store, err := catalog.New(&brokenBackend{}, newFileBackend(t))
	require.NoError(t, err)
	require.Equal(t, catalog.ModePrimary, store.Mode())

	camera := models.Camera{Make: "Canon", Model: "AE-1"}
	require.NoError(t, store.CreateCamera(&camera))
	assert.Equal(t, catalog.ModeFallback, store.Mode(), "store must latch onto the fallback")

	// the record landed in the fallback and stays readable
	stored, err := store.GetCamera(camera.ID)
	require.NoError(t, err)
	assert.Equal(t, "Canon AE-1", stored.DisplayName())
}

func TestBothBackendsFailingSurfacesStorageUnavailable(t *testing.T) {
	store, err := catalog.New(&brokenBackend{}, &brokenBackend{})
	require.NoError(t, err)

	camera := models.Camera{Make: "x", Model: "y"}
	err = store.CreateCamera(&camera)
	assert.ErrorIs(t, err, catalog.ErrStorageUnavailable)
}
