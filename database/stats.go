package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// RollProgress summarizes how far through its exposure budget a roll is.
type RollProgress struct {
	RollID         string `json:"roll_id"`
	Name           string `json:"name"`
	ISO            int    `json:"iso"`
	TotalExposures int    `json:"total_exposures"`
	ExposuresTaken int    `json:"exposures_taken"`
}

// CameraRollCount counts how many rolls were shot on each camera,
// grouped by the snapshotted camera name so deleted cameras still show.
type CameraRollCount struct {
	CameraName string `json:"camera_name"`
	RollCount  int    `json:"roll_count"`
}

// GetRollProgress returns one row per film roll with the number of
// exposures actually recorded against it.
func GetRollProgress(db *sql.DB) ([]RollProgress, error) {
	queryBuilder := psql.Select(
		"fr.id", "fr.name", "fr.iso", "fr.total_exposures",
		"COUNT(e.id) AS exposures_taken",
	).
		From("film_rolls fr").
		LeftJoin("exposures e ON e.film_roll_id = fr.id").
		GroupBy("fr.id", "fr.name", "fr.iso", "fr.total_exposures").
		OrderBy("fr.rowid")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetRollProgress: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roll progress: %w", err)
	}
	defer rows.Close()

	var progress []RollProgress
	for rows.Next() {
		var p RollProgress
		if err := rows.Scan(&p.RollID, &p.Name, &p.ISO, &p.TotalExposures, &p.ExposuresTaken); err != nil {
			return nil, fmt.Errorf("failed to scan roll progress row: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// GetCameraRollCounts returns the number of rolls shot per camera name.
func GetCameraRollCounts(db *sql.DB) ([]CameraRollCount, error) {
	queryBuilder := psql.Select("camera_name", "COUNT(*) AS roll_count").
		From("film_rolls").
		Where(sq.NotEq{"camera_name": nil}).
		GroupBy("camera_name").
		OrderBy("roll_count DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetCameraRollCounts: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query camera roll counts: %w", err)
	}
	defer rows.Close()

	var counts []CameraRollCount
	for rows.Next() {
		var c CameraRollCount
		if err := rows.Scan(&c.CameraName, &c.RollCount); err != nil {
			return nil, fmt.Errorf("failed to scan camera roll count row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
