package handlers

import (
	"database/sql"
	"net/http"

	"github.com/filmlog-app/filmlogbackend/database"
)

// StatsHandler serves aggregate queries straight off the primary
// database; when the catalogue is running on the fallback backend the
// numbers reflect the last migrated state.
type StatsHandler struct {
	DB *sql.DB
}

func (sth *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	progress, err := database.GetRollProgress(sth.DB)
	if err != nil {
		writeStoreError(w, err, "roll progress query")
		return
	}
	cameraCounts, err := database.GetCameraRollCounts(sth.DB)
	if err != nil {
		writeStoreError(w, err, "camera roll count query")
		return
	}
	if progress == nil {
		progress = []database.RollProgress{}
	}
	if cameraCounts == nil {
		cameraCounts = []database.CameraRollCount{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rolls":   progress,
		"cameras": cameraCounts,
	})
}
