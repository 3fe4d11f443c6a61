package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/config"
	"github.com/filmlog-app/filmlogbackend/filestore"
	"github.com/filmlog-app/filmlogbackend/handlers"
	"github.com/filmlog-app/filmlogbackend/models"
	"github.com/filmlog-app/filmlogbackend/repository"
)

func newTestRouter(t *testing.T) (*chi.Mux, *catalog.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Camera{}, &models.Lens{}, &models.FilmRoll{},
		&models.Exposure{}, &models.Settings{}, &models.AppState{},
	))
	fb, err := filestore.Open(filepath.Join(t.TempDir(), "catalog.json"))
	require.NoError(t, err)
	store, err := catalog.New(repository.NewGormBackend(db), fb)
	require.NoError(t, err)

	cfg := config.Config{ThumbnailsPath: t.TempDir(), ThumbnailMaxSize: 300}

	cameraHandler := &handlers.CameraHandler{Store: store}
	rollHandler := &handlers.FilmRollHandler{Store: store}
	exposureHandler := &handlers.ExposureHandler{Store: store, Cfg: cfg}
	transferHandler := &handlers.TransferHandler{Store: store}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/cameras", func(r chi.Router) {
			r.Post("/", cameraHandler.CreateCamera)
			r.Get("/", cameraHandler.ListCameras)
			r.Route("/{camera_id}", func(r chi.Router) {
				r.Get("/", cameraHandler.GetCamera)
				r.Delete("/", cameraHandler.DeleteCamera)
			})
		})
		r.Route("/rolls", func(r chi.Router) {
			r.Post("/", rollHandler.CreateFilmRoll)
			r.Route("/{roll_id}", func(r chi.Router) {
				r.Get("/", rollHandler.GetFilmRoll)
				r.Get("/export", transferHandler.ExportFilmRoll)
				r.Route("/exposures", func(r chi.Router) {
					r.Post("/", exposureHandler.CreateExposure)
					r.Get("/", exposureHandler.ListExposures)
				})
			})
		})
		r.Post("/import", transferHandler.ImportFilmRoll)
	})
	return r, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCameraLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cameras", map[string]string{"make": "Nikon", "model": "D750"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Nikon D750", created.DisplayName)
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/cameras/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/cameras/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/cameras/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationErrorsMapToBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/rolls", map[string]interface{}{
		"name": "bad roll", "iso": 12800, "total_exposures": 36,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "validation_error", resp.Errors[0].Code)
}

func TestExposureBudgetEnforcedOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/rolls", map[string]interface{}{
		"name": "tiny roll", "iso": 400, "total_exposures": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var roll models.FilmRoll
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roll))

	rec = doJSON(t, router, http.MethodPost, "/api/rolls/"+roll.ID+"/exposures", map[string]string{"aperture": "f/8"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/rolls/"+roll.ID+"/exposures", map[string]string{"aperture": "f/8"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader([]byte("{oops")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	doc := map[string]interface{}{
		"filmRoll": map[string]interface{}{"id": "r1", "name": "roll", "iso": 400, "totalExposures": 36},
		"version":  "0.9.0",
	}
	rec = doJSON(t, router, http.MethodPost, "/api/import", doc)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// unavailableBackend stands in for a database whose disk went away.
type unavailableBackend struct {
	catalog.Backend
}

func (b *unavailableBackend) ListCameras() ([]models.Camera, error) {
	return nil, errors.New("disk I/O error")
}

func TestStorageFailureMapsToServiceUnavailable(t *testing.T) {
	store, err := catalog.New(&unavailableBackend{}, nil)
	require.NoError(t, err)

	cameraHandler := &handlers.CameraHandler{Store: store}
	router := chi.NewRouter()
	router.Get("/api/cameras", cameraHandler.ListCameras)

	rec := doJSON(t, router, http.MethodGet, "/api/cameras", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp handlers.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "storage_unavailable", resp.Errors[0].Code)
}

func TestExportThenImportOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/rolls", map[string]interface{}{
		"name": "Portra", "iso": 400, "total_exposures": 36,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var roll models.FilmRoll
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roll))

	rec = doJSON(t, router, http.MethodPost, "/api/rolls/"+roll.ID+"/exposures", map[string]string{
		"aperture": "f/4", "shutter_speed": "1/500",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/rolls/"+roll.ID+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.Bytes()

	// importing into a fresh catalogue reproduces the roll
	freshRouter, freshStore := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
	rec = httptest.NewRecorder()
	freshRouter.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	restored, err := freshStore.GetFilmRoll(roll.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portra", restored.Name)

	exposures, err := freshStore.ListExposures(roll.ID)
	require.NoError(t, err)
	require.Len(t, exposures, 1)
	assert.Equal(t, "f/4", exposures[0].Aperture)
}
