package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

type FilmRollHandler struct {
	Store *catalog.Store
}

type filmRollRequest struct {
	Name           string  `json:"name"`
	ISO            int     `json:"iso"`
	TotalExposures int     `json:"total_exposures"`
	CameraID       *string `json:"camera_id"`
}

func (frh *FilmRollHandler) CreateFilmRoll(w http.ResponseWriter, r *http.Request) {
	var req filmRollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	roll := models.FilmRoll{
		Name:           strings.TrimSpace(req.Name),
		ISO:            req.ISO,
		TotalExposures: req.TotalExposures,
		CameraID:       req.CameraID,
	}
	if err := frh.Store.CreateFilmRoll(&roll); err != nil {
		writeStoreError(w, err, "film roll creation")
		return
	}
	writeJSON(w, http.StatusCreated, roll)
}

func (frh *FilmRollHandler) ListFilmRolls(w http.ResponseWriter, r *http.Request) {
	rolls, err := frh.Store.ListFilmRolls()
	if err != nil {
		writeStoreError(w, err, "film roll listing")
		return
	}
	if rolls == nil {
		rolls = []models.FilmRoll{}
	}
	writeJSON(w, http.StatusOK, rolls)
}

func (frh *FilmRollHandler) GetFilmRoll(w http.ResponseWriter, r *http.Request) {
	roll, err := frh.Store.GetFilmRoll(chi.URLParam(r, "roll_id"))
	if err != nil {
		writeStoreError(w, err, "film roll lookup")
		return
	}
	writeJSON(w, http.StatusOK, roll)
}

func (frh *FilmRollHandler) UpdateFilmRoll(w http.ResponseWriter, r *http.Request) {
	var req filmRollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	roll := models.FilmRoll{
		ID:             chi.URLParam(r, "roll_id"),
		Name:           strings.TrimSpace(req.Name),
		ISO:            req.ISO,
		TotalExposures: req.TotalExposures,
		CameraID:       req.CameraID,
	}
	if err := frh.Store.UpdateFilmRoll(&roll); err != nil {
		writeStoreError(w, err, "film roll update")
		return
	}
	writeJSON(w, http.StatusOK, roll)
}

func (frh *FilmRollHandler) DeleteFilmRoll(w http.ResponseWriter, r *http.Request) {
	if err := frh.Store.DeleteFilmRoll(chi.URLParam(r, "roll_id")); err != nil {
		writeStoreError(w, err, "film roll deletion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Film roll and its exposures deleted"})
}
