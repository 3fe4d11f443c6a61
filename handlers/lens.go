package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

type LensHandler struct {
	Store *catalog.Store
}

type lensRequest struct {
	Name           string   `json:"name"`
	MaxAperture    string   `json:"max_aperture"`
	FocalLength    *float64 `json:"focal_length"`
	MinFocalLength *float64 `json:"min_focal_length"`
	MaxFocalLength *float64 `json:"max_focal_length"`
}

func (req *lensRequest) toModel(id string) models.Lens {
	return models.Lens{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		MaxAperture:    strings.TrimSpace(req.MaxAperture),
		FocalLength:    req.FocalLength,
		MinFocalLength: req.MinFocalLength,
		MaxFocalLength: req.MaxFocalLength,
	}
}

func (lh *LensHandler) CreateLens(w http.ResponseWriter, r *http.Request) {
	var req lensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	lens := req.toModel("")
	if err := lh.Store.CreateLens(&lens); err != nil {
		writeStoreError(w, err, "lens creation")
		return
	}
	writeJSON(w, http.StatusCreated, lens)
}

func (lh *LensHandler) ListLenses(w http.ResponseWriter, r *http.Request) {
	lenses, err := lh.Store.ListLenses()
	if err != nil {
		writeStoreError(w, err, "lens listing")
		return
	}
	if lenses == nil {
		lenses = []models.Lens{}
	}
	writeJSON(w, http.StatusOK, lenses)
}

func (lh *LensHandler) GetLens(w http.ResponseWriter, r *http.Request) {
	lens, err := lh.Store.GetLens(chi.URLParam(r, "lens_id"))
	if err != nil {
		writeStoreError(w, err, "lens lookup")
		return
	}
	writeJSON(w, http.StatusOK, lens)
}

func (lh *LensHandler) UpdateLens(w http.ResponseWriter, r *http.Request) {
	var req lensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	lens := req.toModel(chi.URLParam(r, "lens_id"))
	if err := lh.Store.UpdateLens(&lens); err != nil {
		writeStoreError(w, err, "lens update")
		return
	}
	writeJSON(w, http.StatusOK, lens)
}

func (lh *LensHandler) DeleteLens(w http.ResponseWriter, r *http.Request) {
	if err := lh.Store.DeleteLens(chi.URLParam(r, "lens_id")); err != nil {
		writeStoreError(w, err, "lens deletion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lens deleted"})
}

// ListPickerValues serves the aperture and shutter-speed chip values so
// the UI pickers stay in sync with what the backend validates.
func (lh *LensHandler) ListPickerValues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"apertures":      models.Apertures,
		"shutter_speeds": models.ShutterSpeeds,
	})
}
