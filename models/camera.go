package models

// Camera represents a camera body in the database using GORM.
// It corresponds to the 'cameras' table.
type Camera struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	Make            string  `gorm:"not null" json:"make"`
	Model           string  `gorm:"not null" json:"model"`
	DefaultLensID   *string `gorm:"" json:"default_lens_id,omitempty"`   // Nullable
	DefaultLensName *string `gorm:"" json:"default_lens_name,omitempty"` // Nullable, snapshot of the lens name at assignment time
	CreatedAt       int64   `gorm:"not null" json:"created_at"`          // Stored as INTEGER in SQLite, Unix timestamp
	UpdatedAt       int64   `gorm:"not null" json:"updated_at"`          // Stored as INTEGER in SQLite, Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Camera) TableName() string {
	return "cameras"
}

// DisplayName derives the user-facing camera name, optionally suffixed
// with the default lens name when one is assigned.
func (c *Camera) DisplayName() string {
	name := c.Make + " " + c.Model
	if c.DefaultLensName != nil && *c.DefaultLensName != "" {
		name += " + " + *c.DefaultLensName
	}
	return name
}
