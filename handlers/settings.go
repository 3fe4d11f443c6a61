package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

type SettingsHandler struct {
	Store *catalog.Store
}

func (sh *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := sh.Store.GetSettings()
	if err != nil {
		writeStoreError(w, err, "settings lookup")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (sh *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LastAperture     string  `json:"last_aperture"`
		LastShutterSpeed string  `json:"last_shutter_speed"`
		LastLensID       *string `json:"last_lens_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	settings := models.Settings{
		LastAperture:     req.LastAperture,
		LastShutterSpeed: req.LastShutterSpeed,
		LastLensID:       req.LastLensID,
	}
	if err := sh.Store.UpdateSettings(&settings); err != nil {
		writeStoreError(w, err, "settings update")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
