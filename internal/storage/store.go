package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/flamemaker/internal/export"
	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/palette"
)

const (
	metadataFile = "metadata.json"
	imageFile    = "image.png"
	profileFile  = "profile.csv"
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

type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Density    int                `json:"density"`
	Streams    int                `json:"streams"`
	Frame      Frame              `json:"frame"`
	Palette    []string           `json:"palette"`
	Background string             `json:"background"`
	Elapsed    float64            `json:"elapsed_seconds"`
	Image      string             `json:"image"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save records a rendered accumulator under a new run directory holding the
// metadata, a PNG of the image and the per-row hit profile. ID, Timestamp,
// Image and Metrics of meta are filled in.
func (s *Store) Save(meta RunMetadata, acc *flame.Accumulator, p palette.Palette, bg palette.Color) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	img, err := export.Image(acc, p, bg)
	if err != nil {
		return "", err
	}
	if err := export.WriteImage(filepath.Join(runDir, imageFile), img); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Image = imageFile
	meta.Metrics = Summarize(acc)

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, profileFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"row", "hits", "intensity"}); err != nil {
		return "", err
	}
	for _, r := range Profile(acc) {
		row := []string{
			strconv.Itoa(r.Row),
			strconv.FormatUint(r.Hits, 10),
			strconv.FormatFloat(r.Intensity, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ImagePath returns the path of the stored image of a run.
func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.baseDir, runID, imageFile)
}

func (s *Store) LoadProfile(runID string) ([]ProfileRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, profileFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]ProfileRow, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 3 {
			continue
		}
		row, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		hits, err := strconv.ParseUint(record[1], 10, 64)
		if err != nil {
			continue
		}
		intensity, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		rows = append(rows, ProfileRow{Row: row, Hits: hits, Intensity: intensity})
	}

	return rows, nil
}
