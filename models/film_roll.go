package models

// FilmRoll ISO and exposure-count limits enforced on creation.
const (
	MinISO           = 25
	MaxISO           = 6400
	MinExposureCount = 1
	MaxExposureCount = 100
)

// FilmRoll represents a roll of film in the database using GORM.
// It corresponds to the 'film_rolls' table.
type FilmRoll struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"not null" json:"name"`
	ISO            int     `gorm:"not null" json:"iso"`
	TotalExposures int     `gorm:"not null" json:"total_exposures"`
	CameraID       *string `gorm:"" json:"camera_id,omitempty"`   // Nullable, nulled when the camera is deleted
	CameraName     *string `gorm:"" json:"camera_name,omitempty"` // Nullable, snapshot taken at creation, survives camera deletion
	// CurrentExposure is the number of exposures recorded so far; it never
	// exceeds TotalExposures.
	CurrentExposure int   `gorm:"not null;default:0" json:"current_exposure"`
	CreatedAt       int64 `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt       int64 `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (FilmRoll) TableName() string {
	return "film_rolls"
}
