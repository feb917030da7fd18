package batch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cardtrace/internal/raster"
)

// Manifest describes one render and the files it produced.
type Manifest struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Samples int             `json:"samples"`
	Seed    int64           `json:"seed"`
	Elapsed string          `json:"elapsed"`
	Files   []ManifestEntry `json:"files"`
}

// ManifestEntry represents one written output.
type ManifestEntry struct {
	Format Format `json:"format"`
	Path   string `json:"path"`
	Bytes  int64  `json:"bytes"`
}

// NewManifest lists the successful results of a run.
func NewManifest(seed int64, elapsed string, results []Result) Manifest {
	m := Manifest{
		Width:   raster.Size,
		Height:  raster.Size,
		Samples: raster.Samples,
		Seed:    seed,
		Elapsed: elapsed,
		Files:   []ManifestEntry{},
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Files = append(m.Files, ManifestEntry{Format: r.Format, Path: r.Path, Bytes: r.Bytes})
	}
	return m
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
