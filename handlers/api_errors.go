package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/transfer"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeStoreError maps the catalog/transfer error taxonomy onto HTTP
// statuses: validation 400, parse 400, unsupported version 422, not
// found 404, storage unavailable 503, anything else 500.
func writeStoreError(w http.ResponseWriter, err error, logContext string) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteAPIError(w, http.StatusBadRequest, "validation_error", ve.Error())
	case errors.Is(err, transfer.ErrParse):
		WriteAPIError(w, http.StatusBadRequest, "parse_error", err.Error())
	case errors.Is(err, transfer.ErrUnsupportedVersion):
		WriteAPIError(w, http.StatusUnprocessableEntity, "unsupported_version", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		WriteAPIError(w, http.StatusNotFound, "not_found", "the requested entity does not exist")
	case errors.Is(err, catalog.ErrStorageUnavailable):
		log.Printf("Error (storage unavailable) during %s: %v", logContext, err)
		WriteAPIError(w, http.StatusServiceUnavailable, "storage_unavailable", "catalogue storage is unavailable")
	default:
		log.Printf("Error during %s: %v", logContext, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "an internal error occurred")
	}
}
