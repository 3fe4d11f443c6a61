package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultThumbnailsSubDir = "thumbnails"
)

const (
	defaultThumbnailMaxSize = 300
	defaultDatabasePath     = "filmlog.db"
	defaultLegacyCatalog    = "catalog.json"
	defaultCORSOrigin       = "http://localhost:5173"
)

type Config struct {
	// database path (primary SQLite backend)
	DatabasePath string

	// legacy JSON catalogue (fallback backend and migration source)
	LegacyCatalogPath string

	// media storage configuration
	MediaStoragePath string // primary root for generated assets
	ThumbnailsPath   string // full-calculated path for exposure thumbnails

	// thumbnail generation settings
	ThumbnailMaxSize int

	// HTTP settings
	Port       string
	CORSOrigin string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", defaultDatabasePath)

	legacyPath := getEnvOrDefault("LEGACY_CATALOG_PATH", defaultLegacyCatalog)
	absLegacyPath, err := filepath.Abs(legacyPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for legacy catalogue '%s': %w", legacyPath, err)
	}

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	thumbSubDir := getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir)
	absThumbnailsPath := filepath.Join(absMediaStorage, thumbSubDir)

	thumbMaxSize := getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize)

	cfg := Config{
		DatabasePath:      dbPath,
		LegacyCatalogPath: absLegacyPath,
		MediaStoragePath:  absMediaStorage,
		ThumbnailsPath:    absThumbnailsPath,
		ThumbnailMaxSize:  thumbMaxSize,
		Port:              getEnvOrDefault("PORT", "8080"),
		CORSOrigin:        getEnvOrDefault("CORS_ORIGIN", defaultCORSOrigin),
	}

	return cfg, nil
}
