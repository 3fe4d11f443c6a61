package models

import "fmt"

// Lens represents a lens in the database using GORM.
// It corresponds to the 'lenses' table.
//
// Exactly one of FocalLength (prime) or the MinFocalLength/MaxFocalLength
// pair (zoom) is populated; the catalog layer enforces this on write.
type Lens struct {
	ID             string   `gorm:"primaryKey" json:"id"`
	Name           string   `gorm:"not null" json:"name"`
	MaxAperture    string   `gorm:"not null" json:"max_aperture"`       // e.g. "f/2.8", one of Apertures
	FocalLength    *float64 `gorm:"" json:"focal_length,omitempty"`     // Nullable, mm, prime lenses
	MinFocalLength *float64 `gorm:"" json:"min_focal_length,omitempty"` // Nullable, mm, zoom lenses
	MaxFocalLength *float64 `gorm:"" json:"max_focal_length,omitempty"` // Nullable, mm, zoom lenses
	CreatedAt      int64    `gorm:"not null" json:"created_at"`         // Unix timestamp
	UpdatedAt      int64    `gorm:"not null" json:"updated_at"`         // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Lens) TableName() string {
	return "lenses"
}

// IsZoom reports whether the lens carries a focal-length range.
func (l *Lens) IsZoom() bool {
	return l.MinFocalLength != nil && l.MaxFocalLength != nil
}

// DisplayName derives the user-facing lens label, e.g.
// "Nikkor 50mm f/1.8" or "Tamron 28-75mm f/2.8".
func (l *Lens) DisplayName() string {
	if l.IsZoom() {
		return fmt.Sprintf("%s %g-%gmm %s", l.Name, *l.MinFocalLength, *l.MaxFocalLength, l.MaxAperture)
	}
	if l.FocalLength != nil {
		return fmt.Sprintf("%s %gmm %s", l.Name, *l.FocalLength, l.MaxAperture)
	}
	return l.Name
}
