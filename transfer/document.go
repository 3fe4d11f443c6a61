// Package transfer implements the versioned backup/restore document for
// a film roll and its exposures, and the pairing of exported metadata
// with scanned image files.
package transfer

import "errors"

// DocumentVersion is the only export format version currently produced
// or accepted.
const DocumentVersion = "2.0.0"

// export type values
const (
	ExportTypeWithImages   = "with-images"
	ExportTypeMetadataOnly = "metadata-only"
)

// ErrParse is returned when an import document is not valid JSON.
var ErrParse = errors.New("import document is not valid JSON")

// ErrUnsupportedVersion is returned when an import document carries an
// unrecognized version tag.
var ErrUnsupportedVersion = errors.New("unsupported export version")

// Document is the top-level export file shape. All entity references
// are denormalized to plain values; the document is self-contained.
type Document struct {
	FilmRoll   RollRecord       `json:"filmRoll"`
	Exposures  []ExposureRecord `json:"exposures"`
	ExportedAt string           `json:"exportedAt"` // RFC 3339
	Version    string           `json:"version"`
	ExportType string           `json:"exportType"`
}

// RollRecord is the exported form of a film roll.
type RollRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ISO            int    `json:"iso"`
	TotalExposures int    `json:"totalExposures"`
	CameraName     string `json:"cameraName,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"` // RFC 3339
}

// Location is an exposure's recorded geolocation.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ExposureRecord is the exported form of one exposure.
type ExposureRecord struct {
	ID             string    `json:"id"`
	ExposureNumber int       `json:"exposureNumber"`
	Aperture       string    `json:"aperture,omitempty"`
	ShutterSpeed   string    `json:"shutterSpeed,omitempty"`
	AdditionalInfo string    `json:"additionalInfo,omitempty"`
	CapturedAt     string    `json:"capturedAt,omitempty"` // RFC 3339
	Location       *Location `json:"location,omitempty"`
	LensName       string    `json:"lensName,omitempty"`
	FocalLength    *float64  `json:"focalLength,omitempty"`
	Image          string    `json:"image,omitempty"` // data URI, with-images exports only
}
