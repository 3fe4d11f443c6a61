package catalog

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/filmlog-app/filmlogbackend/models"
)

// MigrateLegacy performs the one-time move of catalogue data from the
// legacy fallback backend into the primary backend. It is safe to call
// on every startup:
//
//   - already migrated (flag set in the primary), or the primary already
//     holds data, or the legacy backend is empty: no-op
//   - otherwise all collections are copied with their IDs preserved, the
//     copy is verified by re-reading per-collection counts, and only
//     then is the completion flag written
//
// The legacy data is never modified; it stays behind as a safety net.
// On verification failure the partial copy is removed, the fallback
// stays authoritative for the session, and no automatic retry happens.
func (s *Store) MigrateLegacy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil || s.fallback == nil {
		log.Printf("catalog: migration skipped, need both backends")
		return nil
	}

	state, err := s.primary.GetAppState()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to read migration state: %w", err)
	}
	if state != nil && state.LegacyMigrationDone {
		return nil
	}

	primaryCounts, err := s.primary.Counts()
	if err != nil {
		return fmt.Errorf("failed to count primary records: %w", err)
	}
	if primaryCounts.Total() > 0 {
		// primary is already in use; just record that no migration is owed
		return s.markMigrated()
	}

	legacyCounts, err := s.fallback.Counts()
	if err != nil {
		return fmt.Errorf("failed to count legacy records: %w", err)
	}
	if legacyCounts.Total() == 0 {
		return s.markMigrated()
	}

	log.Printf("catalog: migrating legacy catalogue to primary backend (%d records)", legacyCounts.Total())
	if err := s.copyLegacy(); err != nil {
		s.abortMigration()
		return fmt.Errorf("migration copy failed: %w", err)
	}

	copied, err := s.primary.Counts()
	if err != nil || copied != legacyCounts {
		s.abortMigration()
		if err != nil {
			return fmt.Errorf("migration verification failed: %w", err)
		}
		return fmt.Errorf("migration verification failed: copied %+v, expected %+v", copied, legacyCounts)
	}

	if err := s.markMigrated(); err != nil {
		return err
	}
	s.mode = ModePrimary
	log.Printf("catalog: legacy migration complete and verified (%d records)", copied.Total())
	return nil
}

func (s *Store) copyLegacy() error {
	cameras, err := s.fallback.ListCameras()
	if err != nil {
		return err
	}
	for i := range cameras {
		if err := s.primary.CreateCamera(&cameras[i]); err != nil {
			return err
		}
	}

	lenses, err := s.fallback.ListLenses()
	if err != nil {
		return err
	}
	for i := range lenses {
		if err := s.primary.CreateLens(&lenses[i]); err != nil {
			return err
		}
	}

	rolls, err := s.fallback.ListFilmRolls()
	if err != nil {
		return err
	}
	for i := range rolls {
		if err := s.primary.CreateFilmRoll(&rolls[i]); err != nil {
			return err
		}
		exposures, err := s.fallback.ListExposures(rolls[i].ID)
		if err != nil {
			return err
		}
		for j := range exposures {
			if err := s.primary.CreateExposure(&exposures[j]); err != nil {
				return err
			}
		}
	}

	settings, err := s.fallback.GetSettings()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.primary.PutSettings(settings)
}

// abortMigration removes whatever the failed copy left in the primary so
// a later run starts from a clean slate, and latches the session onto
// the fallback.
func (s *Store) abortMigration() {
	s.mode = ModeFallback
	rolls, err := s.primary.ListFilmRolls()
	if err == nil {
		for i := range rolls {
			exposures, listErr := s.primary.ListExposures(rolls[i].ID)
			if listErr == nil {
				for j := range exposures {
					_ = s.primary.DeleteExposure(exposures[j].ID)
				}
			}
			_ = s.primary.DeleteFilmRoll(rolls[i].ID)
		}
	}
	if cameras, err := s.primary.ListCameras(); err == nil {
		for i := range cameras {
			_ = s.primary.DeleteCamera(cameras[i].ID)
		}
	}
	if lenses, err := s.primary.ListLenses(); err == nil {
		for i := range lenses {
			_ = s.primary.DeleteLens(lenses[i].ID)
		}
	}
	log.Printf("catalog: migration aborted, continuing on the legacy backend for this session")
}

func (s *Store) markMigrated() error {
	now := time.Now().Unix()
	state := &models.AppState{
		ID:                  models.AppStateID,
		LegacyMigrationDone: true,
		MigratedAt:          &now,
	}
	if err := s.primary.PutAppState(state); err != nil {
		return fmt.Errorf("failed to record migration completion: %w", err)
	}
	return nil
}
