package models

// Exposure represents one recorded shot within a film roll using GORM.
// It corresponds to the 'exposures' table.
//
// Lens settings are snapshotted onto the record at creation time
// (LensName, FocalLength) so the exposure keeps its recorded values even
// if the source lens is later deleted.
type Exposure struct {
	ID             string   `gorm:"primaryKey" json:"id"`
	FilmRollID     string   `gorm:"not null;index" json:"film_roll_id"`
	ExposureNumber int      `gorm:"not null" json:"exposure_number"` // 1-based, unique per roll
	Aperture       string   `gorm:"" json:"aperture"`                // e.g. "f/5.6"
	ShutterSpeed   string   `gorm:"" json:"shutter_speed"`           // e.g. "1/125"
	AdditionalInfo string   `gorm:"" json:"additional_info"`
	Latitude       *float64 `gorm:"" json:"latitude,omitempty"`     // Nullable
	Longitude      *float64 `gorm:"" json:"longitude,omitempty"`    // Nullable
	CapturedAt     int64    `gorm:"not null" json:"captured_at"`    // Unix timestamp
	LensID         *string  `gorm:"" json:"lens_id,omitempty"`      // Nullable, nulled when the lens is deleted
	LensName       *string  `gorm:"" json:"lens_name,omitempty"`    // Nullable, snapshot
	FocalLength    *float64 `gorm:"" json:"focal_length,omitempty"` // Nullable, mm
	ImageData      *string  `gorm:"" json:"image_data,omitempty"`   // Nullable, data URI
	ThumbnailPath  *string  `gorm:"" json:"thumbnail_path,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Exposure) TableName() string {
	return "exposures"
}
