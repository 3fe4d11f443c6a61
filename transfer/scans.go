package transfer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/facette/natsort"

	"github.com/filmlog-app/filmlogbackend/catalog"
	"github.com/filmlog-app/filmlogbackend/media"
)

// Sidecar is the per-scan metadata file written next to each paired
// image, consumable by tagging tools.
type Sidecar struct {
	ExposureNumber int      `json:"exposureNumber"`
	Aperture       *float64 `json:"aperture,omitempty"` // plain F-number
	ShutterSpeed   string   `json:"shutterSpeed,omitempty"`
	AdditionalInfo string   `json:"additionalInfo,omitempty"`
	CapturedAt     string   `json:"capturedAt,omitempty"` // RFC 3339
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	LensName       string   `json:"lensName,omitempty"`
	FocalLength    *float64 `json:"focalLength,omitempty"`
}

// ParseApertureNumber extracts the numeric F-number from a picker value
// like "f/2.8". Comma decimal separators are tolerated.
func ParseApertureNumber(value string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	cleaned = strings.TrimPrefix(strings.ToLower(cleaned), "f/")
	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable aperture %q: %w", value, err)
	}
	return number, nil
}

// ApplyToScans pairs a directory of scanned images with a roll's
// exposures and writes a JSON metadata sidecar next to each paired
// scan. Scans are taken in natural filename order and exposures in
// exposure-number order; when there are more scans than exposures the
// leading extras (test frames, lab scans of the leader) are skipped.
// Returns the number of sidecars written.
func ApplyToScans(store *catalog.Store, rollID, scanDir string) (int, error) {
	exposures, err := store.ListExposures(rollID)
	if err != nil {
		return 0, err
	}
	if len(exposures) == 0 {
		return 0, nil
	}
	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].ExposureNumber < exposures[j].ExposureNumber
	})

	entries, err := os.ReadDir(scanDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read scan directory %s: %w", scanDir, err)
	}
	var scans []string
	for _, entry := range entries {
		if !entry.IsDir() && media.IsRasterImage(entry.Name()) {
			scans = append(scans, entry.Name())
		}
	}
	if len(scans) == 0 {
		return 0, nil
	}
	natsort.Sort(scans)

	if len(scans) > len(exposures) {
		skip := len(scans) - len(exposures)
		log.Printf("transfer: %d more scans than exposures, skipping the first %d", skip, skip)
		scans = scans[skip:]
	}

	written := 0
	for i, scan := range scans {
		if i >= len(exposures) {
			break
		}
		e := &exposures[i]
		sidecar := Sidecar{
			ExposureNumber: e.ExposureNumber,
			ShutterSpeed:   e.ShutterSpeed,
			AdditionalInfo: e.AdditionalInfo,
			Latitude:       e.Latitude,
			Longitude:      e.Longitude,
			FocalLength:    e.FocalLength,
		}
		if e.Aperture != "" {
			if number, parseErr := ParseApertureNumber(e.Aperture); parseErr == nil {
				sidecar.Aperture = &number
			} else {
				log.Printf("transfer: %v, leaving aperture off sidecar for exposure #%d", parseErr, e.ExposureNumber)
			}
		}
		if e.CapturedAt != 0 {
			sidecar.CapturedAt = time.Unix(e.CapturedAt, 0).UTC().Format(time.RFC3339)
		}
		if e.LensName != nil {
			sidecar.LensName = *e.LensName
		}

		data, err := json.MarshalIndent(&sidecar, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode sidecar for %s: %w", scan, err)
		}
		base := strings.TrimSuffix(scan, filepath.Ext(scan))
		sidecarPath := filepath.Join(scanDir, base+".json")
		if err := os.WriteFile(sidecarPath, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write sidecar %s: %w", sidecarPath, err)
		}
		written++
	}
	return written, nil
}
