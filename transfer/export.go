package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/filmlog-app/filmlogbackend/catalog"
)

// Export builds the versioned backup document for one film roll. With
// withImages set, inline image payloads are included; otherwise the
// lighter metadata-only form is produced.
func Export(store *catalog.Store, rollID string, withImages bool) (*Document, error) {
	roll, err := store.GetFilmRoll(rollID)
	if err != nil {
		return nil, err
	}
	exposures, err := store.ListExposures(rollID)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		FilmRoll: RollRecord{
			ID:             roll.ID,
			Name:           roll.Name,
			ISO:            roll.ISO,
			TotalExposures: roll.TotalExposures,
			CreatedAt:      time.Unix(roll.CreatedAt, 0).UTC().Format(time.RFC3339),
		},
		Exposures:  make([]ExposureRecord, 0, len(exposures)),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    DocumentVersion,
		ExportType: ExportTypeMetadataOnly,
	}
	if withImages {
		doc.ExportType = ExportTypeWithImages
	}
	if roll.CameraName != nil {
		doc.FilmRoll.CameraName = *roll.CameraName
	}

	for i := range exposures {
		e := &exposures[i]
		record := ExposureRecord{
			ID:             e.ID,
			ExposureNumber: e.ExposureNumber,
			Aperture:       e.Aperture,
			ShutterSpeed:   e.ShutterSpeed,
			AdditionalInfo: e.AdditionalInfo,
			CapturedAt:     time.Unix(e.CapturedAt, 0).UTC().Format(time.RFC3339),
			FocalLength:    e.FocalLength,
		}
		if e.LensName != nil {
			record.LensName = *e.LensName
		}
		if e.Latitude != nil && e.Longitude != nil {
			record.Location = &Location{Latitude: *e.Latitude, Longitude: *e.Longitude}
		}
		if withImages && e.ImageData != nil {
			record.Image = *e.ImageData
		}
		doc.Exposures = append(doc.Exposures, record)
	}

	return doc, nil
}

// ExportJSON renders the export document as an indented UTF-8 JSON
// byte slice ready to be written to a file or response body.
func ExportJSON(store *catalog.Store, rollID string, withImages bool) ([]byte, error) {
	doc, err := Export(store, rollID, withImages)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export document: %w", err)
	}
	return data, nil
}
