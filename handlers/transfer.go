package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/transfer"
)

// maxImportSize bounds import request bodies; with-images documents
// carry inline base64 payloads and can get large.
const maxImportSize = 256 << 20

type TransferHandler struct {
	Store *catalog.Store
}

// ExportFilmRoll serves the versioned backup document for one roll.
// ?images=true selects the with-images form.
func (th *TransferHandler) ExportFilmRoll(w http.ResponseWriter, r *http.Request) {
	withImages := r.URL.Query().Get("images") == "true"
	data, err := transfer.ExportJSON(th.Store, chi.URLParam(r, "roll_id"), withImages)
	if err != nil {
		writeStoreError(w, err, "film roll export")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="filmroll-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportFilmRoll restores a roll and its exposures from an uploaded
// export document.
func (th *TransferHandler) ImportFilmRoll(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Failed to read request body: "+err.Error())
		return
	}
	roll, err := transfer.Import(th.Store, data)
	if err != nil {
		writeStoreError(w, err, "film roll import")
		return
	}
	writeJSON(w, http.StatusCreated, roll)
}

// ApplyScans pairs a directory of scanned images with a roll's
// exposures and writes metadata sidecars next to the scans.
func (th *TransferHandler) ApplyScans(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScanDir string `json:"scan_dir"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	if req.ScanDir == "" {
		WriteAPIError(w, http.StatusBadRequest, "validation_error", "Missing required field: scan_dir")
		return
	}
	written, err := transfer.ApplyToScans(th.Store, chi.URLParam(r, "roll_id"), req.ScanDir)
	if err != nil {
		writeStoreError(w, err, "scan metadata application")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sidecars_written": written})
}
