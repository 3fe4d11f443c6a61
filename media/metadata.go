package media

import (
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata holds the capture settings recoverable from a scanned
// image's EXIF block, used to pre-fill exposure records when attaching
// scans.
type Metadata struct {
	Aperture     *float64 `json:"aperture,omitempty"`
	ShutterSpeed *string  `json:"shutter_speed,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	FocalLength  *float64 `json:"focal_length,omitempty"`
	TakenAt      *int64   `json:"taken_at,omitempty"` // Unix timestamp
}

// helper to safely get and convert a rational tag (like Aperture, FocalLength)
func getRational(exifData *exif.Exif, tagName exif.FieldName) *float64 {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil // tag not found
	}
	// rational numbers are often stored as num/den
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		// sometimes stored as Int instead
		valInt, errInt := tag.Int(0)
		if errInt == nil {
			fVal := float64(valInt)
			return &fVal
		}
		return nil
	}
	val := float64(num) / float64(den)
	return &val
}

// helper to safely get and convert an integer tag (like ISO)
func getInt(exifData *exif.Exif, tagName exif.FieldName) *int {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	// ISO might be a slice, get the first value
	val, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &val
}

// ExtractMetadata reads the EXIF block from an image stream. Images with
// no EXIF data yield an empty Metadata, not an error.
func ExtractMetadata(r io.Reader) (*Metadata, error) {
	exifData, err := exif.Decode(r)
	if err != nil {
		if exif.IsCriticalError(err) {
			return &Metadata{}, nil
		}
		return nil, fmt.Errorf("failed to decode EXIF data: %w", err)
	}

	meta := &Metadata{
		Aperture:    getRational(exifData, exif.FNumber),
		ISO:         getInt(exifData, exif.ISOSpeedRatings),
		FocalLength: getRational(exifData, exif.FocalLength),
	}

	if tag, tagErr := exifData.Get(exif.ExposureTime); tagErr == nil && tag != nil {
		if s, strErr := tag.StringVal(); strErr == nil && s != "" {
			meta.ShutterSpeed = &s
		} else if num, den, ratErr := tag.Rat2(0); ratErr == nil && den != 0 {
			formatted := fmt.Sprintf("%d/%d", num, den)
			meta.ShutterSpeed = &formatted
		}
	}

	if takenAt, timeErr := exifData.DateTime(); timeErr == nil {
		unix := takenAt.Unix()
		meta.TakenAt = &unix
	}

	return meta, nil
}
