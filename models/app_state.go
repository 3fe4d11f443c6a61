package models

// AppStateID is the fixed primary key of the singleton app state row.
const AppStateID uint = 1

// AppState records per-catalogue bookkeeping that must survive restarts,
// currently only whether the legacy catalogue has been migrated into the
// primary backend. Lives in the primary backend so wiping the database
// file re-arms migration from the untouched legacy file.
type AppState struct {
	ID                  uint   `gorm:"primaryKey" json:"-"`
	LegacyMigrationDone bool   `gorm:"not null;default:false" json:"legacy_migration_done"`
	MigratedAt          *int64 `gorm:"" json:"migrated_at,omitempty"` // Nullable, Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (AppState) TableName() string {
	return "app_state"
}
