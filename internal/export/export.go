// internal/export/export.go
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/mwiater/evaloop/internal/results"
)

// Export filenames.
const (
	FullDatasetFile     = "evaloop_full_dataset.json"
	SummaryCSVFile      = "evaloop_summary.csv"
	LeaderboardCSVFile  = "evaloop_leaderboard.csv"
	LeaderboardJSONFile = "evaloop_leaderboard.json"
	BundleFile          = "evaloop_export.zip"
)

// DatasetVersion is written into the full dataset metadata.
const DatasetVersion = "1.0"

// Metadata describes a full dataset export.
type Metadata struct {
	Version     string `json:"version"`
	Date        string `json:"date"`
	ModelsCount int    `json:"models_count"`
}

// Dataset is the full dataset export envelope.
type Dataset struct {
	Metadata Metadata              `json:"metadata"`
	Models   []results.ModelResult `json:"models"`
}

// File is a named export payload.
type File struct {
	Name string
	Data []byte
}

// ToJSON wraps the models in a metadata envelope stamped with now.
func ToJSON(models []results.ModelResult, now time.Time) ([]byte, error) {
	if models == nil {
		models = []results.ModelResult{}
	}
	ds := Dataset{
		Metadata: Metadata{
			Version:     DatasetVersion,
			Date:        now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			ModelsCount: len(models),
		},
		Models: models,
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode dataset: %w", err)
	}
	return data, nil
}

// ModelsJSON is the plain leaderboard array export.
func ModelsJSON(models []results.ModelResult) ([]byte, error) {
	if models == nil {
		models = []results.ModelResult{}
	}
	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode models: %w", err)
	}
	return data, nil
}

// All builds every export for the models.
func All(models []results.ModelResult, now time.Time) ([]File, error) {
	full, err := ToJSON(models, now)
	if err != nil {
		return nil, err
	}
	board, err := ModelsJSON(models)
	if err != nil {
		return nil, err
	}
	return []File{
		{Name: FullDatasetFile, Data: full},
		{Name: SummaryCSVFile, Data: []byte(ToCSV(models, SummaryFields))},
		{Name: LeaderboardCSVFile, Data: []byte(ToCSV(models, LeaderboardFields))},
		{Name: LeaderboardJSONFile, Data: board},
	}, nil
}

// WriteBundle writes files into a zip archive. Entries keep their order and names.
func WriteBundle(w io.Writer, files []File, modified time.Time) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		hdr := &zip.FileHeader{
			Name:     filepath.ToSlash(f.Name),
			Method:   zip.Deflate,
			Modified: modified,
		}
		entry, err := zw.CreateHeader(hdr)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("unable to add %s to bundle: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("unable to write %s to bundle: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to finish bundle: %w", err)
	}
	return nil
}

// WriteFiles writes each file under dir, creating dir and any subdirectories.
func WriteFiles(dir string, files []File) error {
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("unable to write %s: %w", path, err)
		}
	}
	return nil
}
