package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/config"
	"github.com/filmlog-app/filmlogbackend/media"
	"github.com/filmlog-app/filmlogbackend/models"
)

type ExposureHandler struct {
	Store *catalog.Store
	Cfg   config.Config
}

type exposureRequest struct {
	Aperture       string   `json:"aperture"`
	ShutterSpeed   string   `json:"shutter_speed"`
	AdditionalInfo string   `json:"additional_info"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	CapturedAt     int64    `json:"captured_at"`
	LensID         *string  `json:"lens_id"`
	FocalLength    *float64 `json:"focal_length"`
	ImageData      *string  `json:"image_data"`
}

func (req *exposureRequest) toModel() models.Exposure {
	return models.Exposure{
		Aperture:       req.Aperture,
		ShutterSpeed:   req.ShutterSpeed,
		AdditionalInfo: req.AdditionalInfo,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		CapturedAt:     req.CapturedAt,
		LensID:         req.LensID,
		FocalLength:    req.FocalLength,
		ImageData:      req.ImageData,
	}
}

// processImage validates an attached image payload, generates its
// thumbnail and backfills capture settings from the scan's EXIF block
// where the caller left them blank.
func (eh *ExposureHandler) processImage(exposure *models.Exposure) error {
	if exposure.ImageData == nil {
		return nil
	}
	_, raw, err := media.DecodeDataURI(*exposure.ImageData)
	if err != nil {
		return &catalog.ValidationError{Field: "image_data", Message: err.Error()}
	}

	thumbPath, err := media.GenerateThumbnail(raw, eh.Cfg.ThumbnailsPath, eh.Cfg.ThumbnailMaxSize, eh.Cfg.ThumbnailMaxSize)
	if err != nil {
		log.Printf("Error generating thumbnail for exposure: %v", err)
	} else {
		exposure.ThumbnailPath = &thumbPath
	}

	meta, err := media.ExtractMetadata(bytes.NewReader(raw))
	if err != nil {
		log.Printf("Error reading EXIF from exposure image: %v", err)
		return nil
	}
	if exposure.CapturedAt == 0 && meta.TakenAt != nil {
		exposure.CapturedAt = *meta.TakenAt
	}
	if exposure.FocalLength == nil && meta.FocalLength != nil {
		exposure.FocalLength = meta.FocalLength
	}
	if exposure.Aperture == "" && meta.Aperture != nil {
		exposure.Aperture = fmt.Sprintf("f/%g", *meta.Aperture)
	}
	if exposure.ShutterSpeed == "" && meta.ShutterSpeed != nil {
		exposure.ShutterSpeed = *meta.ShutterSpeed
	}
	return nil
}

func (eh *ExposureHandler) CreateExposure(w http.ResponseWriter, r *http.Request) {
	var req exposureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	exposure := req.toModel()
	if err := eh.processImage(&exposure); err != nil {
		writeStoreError(w, err, "exposure image processing")
		return
	}
	if err := eh.Store.CreateExposure(chi.URLParam(r, "roll_id"), &exposure); err != nil {
		writeStoreError(w, err, "exposure creation")
		return
	}
	writeJSON(w, http.StatusCreated, exposure)
}

func (eh *ExposureHandler) ListExposures(w http.ResponseWriter, r *http.Request) {
	exposures, err := eh.Store.ListExposures(chi.URLParam(r, "roll_id"))
	if err != nil {
		writeStoreError(w, err, "exposure listing")
		return
	}
	if exposures == nil {
		exposures = []models.Exposure{}
	}
	writeJSON(w, http.StatusOK, exposures)
}

func (eh *ExposureHandler) GetExposure(w http.ResponseWriter, r *http.Request) {
	exposure, err := eh.Store.GetExposure(chi.URLParam(r, "exposure_id"))
	if err != nil {
		writeStoreError(w, err, "exposure lookup")
		return
	}
	writeJSON(w, http.StatusOK, exposure)
}

func (eh *ExposureHandler) UpdateExposure(w http.ResponseWriter, r *http.Request) {
	var req exposureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	exposure := req.toModel()
	exposure.ID = chi.URLParam(r, "exposure_id")
	if err := eh.processImage(&exposure); err != nil {
		writeStoreError(w, err, "exposure image processing")
		return
	}
	if err := eh.Store.UpdateExposure(&exposure); err != nil {
		writeStoreError(w, err, "exposure update")
		return
	}
	writeJSON(w, http.StatusOK, exposure)
}

func (eh *ExposureHandler) DeleteExposure(w http.ResponseWriter, r *http.Request) {
	if err := eh.Store.DeleteExposure(chi.URLParam(r, "exposure_id")); err != nil {
		writeStoreError(w, err, "exposure deletion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Exposure deleted"})
}
