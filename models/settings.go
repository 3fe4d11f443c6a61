package models

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID uint = 1

// Settings holds the last-used capture selections, used to pre-populate
// new exposures. A single row with ID SettingsID exists per catalogue.
type Settings struct {
	ID               uint    `gorm:"primaryKey" json:"-"`
	LastAperture     string  `gorm:"" json:"last_aperture"`
	LastShutterSpeed string  `gorm:"" json:"last_shutter_speed"`
	LastLensID       *string `gorm:"" json:"last_lens_id,omitempty"`   // Nullable
	LastLensName     *string `gorm:"" json:"last_lens_name,omitempty"` // Nullable, snapshot
	UpdatedAt        int64   `gorm:"not null" json:"updated_at"`       // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Settings) TableName() string {
	return "settings"
}
