package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/config"
	"github.com/filmlog-app/filmlogbackend/database"
	"github.com/filmlog-app/filmlogbackend/filestore"
	"github.com/filmlog-app/filmlogbackend/handlers"
	"github.com/filmlog-app/filmlogbackend/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.ThumbnailsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	// primary backend: GORM over SQLite; a failure here is survivable
	// because the catalogue can run on the legacy file backend
	var primary catalog.Backend
	gormDB, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Printf("Warning: primary backend unavailable: %v", err)
	} else if err := database.AutoMigrateModels(gormDB); err != nil {
		log.Printf("Warning: primary backend schema migration failed: %v", err)
	} else {
		primary = repository.NewGormBackend(gormDB)
	}

	fallback, err := filestore.Open(cfg.LegacyCatalogPath)
	if err != nil {
		log.Printf("Warning: legacy catalogue unavailable: %v", err)
	}

	var fallbackBackend catalog.Backend
	if fallback != nil {
		fallbackBackend = fallback
	}
	store, err := catalog.New(primary, fallbackBackend)
	if err != nil {
		log.Fatalf("FATAL: No usable catalogue backend: %v", err)
	}
	defer store.Close()

	if err := store.MigrateLegacy(); err != nil {
		// non-fatal: the catalogue keeps working on the legacy backend
		log.Printf("Warning: legacy migration failed: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Legacy catalogue: %s", cfg.LegacyCatalogPath)
	log.Printf("Storing thumbnails in: %s", cfg.ThumbnailsPath)
	log.Printf("Catalogue backend mode: %s", store.Mode())

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	cameraHandler := &handlers.CameraHandler{Store: store}
	lensHandler := &handlers.LensHandler{Store: store}
	rollHandler := &handlers.FilmRollHandler{Store: store}
	exposureHandler := &handlers.ExposureHandler{Store: store, Cfg: cfg}
	settingsHandler := &handlers.SettingsHandler{Store: store}
	transferHandler := &handlers.TransferHandler{Store: store}

	r.Route("/api", func(r chi.Router) {
		r.Route("/cameras", func(r chi.Router) {
			r.Post("/", cameraHandler.CreateCamera)
			r.Get("/", cameraHandler.ListCameras)
			r.Route("/{camera_id}", func(r chi.Router) {
				r.Get("/", cameraHandler.GetCamera)
				r.Put("/", cameraHandler.UpdateCamera)
				r.Delete("/", cameraHandler.DeleteCamera)
			})
		})

		r.Route("/lenses", func(r chi.Router) {
			r.Post("/", lensHandler.CreateLens)
			r.Get("/", lensHandler.ListLenses)
			r.Route("/{lens_id}", func(r chi.Router) {
				r.Get("/", lensHandler.GetLens)
				r.Put("/", lensHandler.UpdateLens)
				r.Delete("/", lensHandler.DeleteLens)
			})
		})

		r.Get("/picker-values", lensHandler.ListPickerValues)

		r.Route("/rolls", func(r chi.Router) {
			r.Post("/", rollHandler.CreateFilmRoll)
			r.Get("/", rollHandler.ListFilmRolls)
			r.Route("/{roll_id}", func(r chi.Router) {
				r.Get("/", rollHandler.GetFilmRoll)
				r.Put("/", rollHandler.UpdateFilmRoll)
				r.Delete("/", rollHandler.DeleteFilmRoll)
				r.Get("/export", transferHandler.ExportFilmRoll)
				r.Post("/apply-scans", transferHandler.ApplyScans)
				r.Route("/exposures", func(r chi.Router) {
					r.Post("/", exposureHandler.CreateExposure)
					r.Get("/", exposureHandler.ListExposures)
				})
			})
		})

		r.Route("/exposures/{exposure_id}", func(r chi.Router) {
			r.Get("/", exposureHandler.GetExposure)
			r.Put("/", exposureHandler.UpdateExposure)
			r.Delete("/", exposureHandler.DeleteExposure)
		})

		r.Post("/import", transferHandler.ImportFilmRoll)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.UpdateSettings)
		})

		if gormDB != nil {
			if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
				statsHandler := &handlers.StatsHandler{DB: sqlDB}
				r.Get("/stats", statsHandler.GetStats)
			}
		}

		thumbnailSubDir := filepath.Base(cfg.ThumbnailsPath)
		r.Get(fmt.Sprintf("/%s/*", thumbnailSubDir), handlers.AssetServer(cfg.MediaStoragePath, thumbnailSubDir))
		log.Printf("Registered thumbnail server at /%s/*", thumbnailSubDir)
	})

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
