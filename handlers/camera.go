package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

type CameraHandler struct {
	Store *catalog.Store
}

// cameraResponse decorates the stored record with its derived display
// name so the UI never re-implements the naming rule.
type cameraResponse struct {
	models.Camera
	DisplayName string `json:"display_name"`
}

func toCameraResponse(camera *models.Camera) cameraResponse {
	return cameraResponse{Camera: *camera, DisplayName: camera.DisplayName()}
}

func (ch *CameraHandler) CreateCamera(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Make          string  `json:"make"`
		Model         string  `json:"model"`
		DefaultLensID *string `json:"default_lens_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	camera := models.Camera{
		Make:          strings.TrimSpace(req.Make),
		Model:         strings.TrimSpace(req.Model),
		DefaultLensID: req.DefaultLensID,
	}
	if err := ch.Store.CreateCamera(&camera); err != nil {
		writeStoreError(w, err, "camera creation")
		return
	}
	writeJSON(w, http.StatusCreated, toCameraResponse(&camera))
}

func (ch *CameraHandler) ListCameras(w http.ResponseWriter, r *http.Request) {
	cameras, err := ch.Store.ListCameras()
	if err != nil {
		writeStoreError(w, err, "camera listing")
		return
	}
	responses := make([]cameraResponse, 0, len(cameras))
	for i := range cameras {
		responses = append(responses, toCameraResponse(&cameras[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (ch *CameraHandler) GetCamera(w http.ResponseWriter, r *http.Request) {
	camera, err := ch.Store.GetCamera(chi.URLParam(r, "camera_id"))
	if err != nil {
		writeStoreError(w, err, "camera lookup")
		return
	}
	writeJSON(w, http.StatusOK, toCameraResponse(camera))
}

func (ch *CameraHandler) UpdateCamera(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Make          string  `json:"make"`
		Model         string  `json:"model"`
		DefaultLensID *string `json:"default_lens_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	camera := models.Camera{
		ID:            chi.URLParam(r, "camera_id"),
		Make:          strings.TrimSpace(req.Make),
		Model:         strings.TrimSpace(req.Model),
		DefaultLensID: req.DefaultLensID,
	}
	if err := ch.Store.UpdateCamera(&camera); err != nil {
		writeStoreError(w, err, "camera update")
		return
	}
	writeJSON(w, http.StatusOK, toCameraResponse(&camera))
}

func (ch *CameraHandler) DeleteCamera(w http.ResponseWriter, r *http.Request) {
	if err := ch.Store.DeleteCamera(chi.URLParam(r, "camera_id")); err != nil {
		writeStoreError(w, err, "camera deletion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Camera deleted"})
}
