package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/models"
)

// Import parses and validates an export document and persists the film
// roll and its exposures through the store. IDs are preserved so an
// export/import cycle is an exact round trip; a conflicting roll ID is
// rejected by the store. Nothing is persisted from a document that
// fails to parse or validate.
func Import(store *catalog.Store, data []byte) (*models.FilmRoll, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.Version)
	}
	if doc.FilmRoll.Name == "" {
		return nil, &catalog.ValidationError{Field: "filmRoll.name", Message: "required"}
	}

	roll := &models.FilmRoll{
		ID:             doc.FilmRoll.ID,
		Name:           doc.FilmRoll.Name,
		ISO:            doc.FilmRoll.ISO,
		TotalExposures: doc.FilmRoll.TotalExposures,
	}
	if doc.FilmRoll.CameraName != "" {
		name := doc.FilmRoll.CameraName
		roll.CameraName = &name
	}
	if doc.FilmRoll.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, doc.FilmRoll.CreatedAt)
		if err != nil {
			return nil, &catalog.ValidationError{Field: "filmRoll.createdAt", Message: "not an RFC 3339 timestamp"}
		}
		roll.CreatedAt = createdAt.Unix()
	}

	exposures := make([]models.Exposure, 0, len(doc.Exposures))
	for i := range doc.Exposures {
		record := &doc.Exposures[i]
		if record.ExposureNumber == 0 {
			return nil, &catalog.ValidationError{Field: "exposures.exposureNumber", Message: "required"}
		}
		exposure := models.Exposure{
			ID:             record.ID,
			ExposureNumber: record.ExposureNumber,
			Aperture:       record.Aperture,
			ShutterSpeed:   record.ShutterSpeed,
			AdditionalInfo: record.AdditionalInfo,
			FocalLength:    record.FocalLength,
		}
		if record.CapturedAt != "" {
			capturedAt, err := time.Parse(time.RFC3339, record.CapturedAt)
			if err != nil {
				return nil, &catalog.ValidationError{Field: "exposures.capturedAt", Message: "not an RFC 3339 timestamp"}
			}
			exposure.CapturedAt = capturedAt.Unix()
		}
		if record.LensName != "" {
			name := record.LensName
			exposure.LensName = &name
		}
		if record.Location != nil {
			lat, lng := record.Location.Latitude, record.Location.Longitude
			exposure.Latitude = &lat
			exposure.Longitude = &lng
		}
		if record.Image != "" {
			image := record.Image
			exposure.ImageData = &image
		}
		exposures = append(exposures, exposure)
	}

	if err := store.RestoreFilmRoll(roll, exposures); err != nil {
		return nil, err
	}
	return roll, nil
}
