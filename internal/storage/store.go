// Package storage persists solve runs: metadata for the CLI list
// command plus the exported result rasters.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/karoo-geo/voxfield/internal/export"
	"github.com/karoo-geo/voxfield/internal/forward"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Timestamp    time.Time          `json:"timestamp"`
	Mode         string             `json:"mode"`
	Cols         int                `json:"cols"`
	Rows         int                `json:"rows"`
	Voxels       int                `json:"voxels"`
	ObsHeight    float64            `json:"obs_height"`
	PeakGravity  float64            `json:"peak_gravity,omitempty"`
	PeakMagnetic float64            `json:"peak_magnetic,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

// Save writes a run directory with metadata and one .asc raster per
// computed grid, and returns the run ID.
func (s *Store) Save(scenario, mode string, obsHeight float64, res *forward.Result, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Mode:      mode,
		Voxels:    res.Voxels,
		ObsHeight: obsHeight,
		Metrics:   metrics,
	}

	if res.Gravity != nil {
		meta.Cols, meta.Rows = res.Gravity.Cols, res.Gravity.Rows
		_, _, meta.PeakGravity = res.Gravity.Peak()
		if err := export.WriteASCIIGrid(filepath.Join(runDir, "gravity.asc"), res.Gravity); err != nil {
			return "", err
		}
	}
	if res.Magnetic != nil {
		meta.Cols, meta.Rows = res.Magnetic.Cols, res.Magnetic.Rows
		_, _, meta.PeakMagnetic = res.Magnetic.Peak()
		if err := export.WriteASCIIGrid(filepath.Join(runDir, "magnetic.asc"), res.Magnetic); err != nil {
			return "", err
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
