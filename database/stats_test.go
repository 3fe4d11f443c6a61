package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/filmlog-app/filmlogbackend/database"
	"github.com/filmlog-app/filmlogbackend/models"
)

func newStatsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "stats.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FilmRoll{}, &models.Exposure{}))
	return db
}

func TestGetRollProgress(t *testing.T) {
	db := newStatsDB(t)

	cameraName := "Nikon F3"
	rolls := []models.FilmRoll{
		{ID: "roll-1", Name: "Tri-X", ISO: 400, TotalExposures: 36, CameraName: &cameraName},
		{ID: "roll-2", Name: "Ektar", ISO: 100, TotalExposures: 24},
	}
	for i := range rolls {
		require.NoError(t, db.Create(&rolls[i]).Error)
	}
	for i := 1; i <= 2; i++ {
		exposure := models.Exposure{ID: "e" + string(rune('0'+i)), FilmRollID: "roll-1", ExposureNumber: i}
		require.NoError(t, db.Create(&exposure).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)

	progress, err := database.GetRollProgress(sqlDB)
	require.NoError(t, err)
	require.Len(t, progress, 2)

	// insertion order, one row per roll
	assert.Equal(t, database.RollProgress{RollID: "roll-1", Name: "Tri-X", ISO: 400, TotalExposures: 36, ExposuresTaken: 2}, progress[0])
	assert.Equal(t, database.RollProgress{RollID: "roll-2", Name: "Ektar", ISO: 100, TotalExposures: 24, ExposuresTaken: 0}, progress[1])
}

func TestGetCameraRollCounts(t *testing.T) {
	db := newStatsDB(t)

	nikon := "Nikon F3"
	leica := "Leica M6"
	rolls := []models.FilmRoll{
		{ID: "roll-1", Name: "a", ISO: 400, TotalExposures: 36, CameraName: &nikon},
		{ID: "roll-2", Name: "b", ISO: 400, TotalExposures: 36, CameraName: &nikon},
		{ID: "roll-3", Name: "c", ISO: 100, TotalExposures: 24, CameraName: &leica},
		{ID: "roll-4", Name: "d", ISO: 100, TotalExposures: 24},
	}
	for i := range rolls {
		require.NoError(t, db.Create(&rolls[i]).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)

	counts, err := database.GetCameraRollCounts(sqlDB)
	require.NoError(t, err)

	// rolls without a camera are excluded; busiest camera first
	require.Len(t, counts, 2)
	assert.Equal(t, database.CameraRollCount{CameraName: "Nikon F3", RollCount: 2}, counts[0])
	assert.Equal(t, database.CameraRollCount{CameraName: "Leica M6", RollCount: 1}, counts[1])
}
