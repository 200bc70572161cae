package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

const metadataFile = "metadata.json"

var ErrNotFound = errors.New("storage: run not found")

// Store keeps headless run records on disk, one directory per run.
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
	ID                 string             `json:"id"`
	Preset             string             `json:"preset,omitempty"`
	Timestamp          time.Time          `json:"timestamp"`
	Seed               int64              `json:"seed"`
	Dt                 float64            `json:"dt"`
	Duration           float64            `json:"duration"`
	Pendulums          int                `json:"pendulums"`
	Damping            bool               `json:"damping"`
	LegacyOuterDamping bool               `json:"legacy_outer_damping"`
	Colors             []string           `json:"colors"`
	Metrics            map[string]float64 `json:"metrics"`
}

// Trail is the sampled tip path of one pendulum, oldest point first.
type Trail struct {
	Color  string
	Points []r2.Vec
}

func trailFile(i int) string { return fmt.Sprintf("trail_%03d.csv", i) }

// Save writes meta and one CSV per trail under a fresh run id.
func (s *Store) Save(meta RunMetadata, trails []Trail) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Pendulums = len(trails)
	meta.Colors = make([]string, len(trails))
	for i, tr := range trails {
		meta.Colors[i] = tr.Color
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	for i, tr := range trails {
		if err := writeTrail(filepath.Join(runDir, trailFile(i)), tr.Points); err != nil {
			return "", fmt.Errorf("storage: trail %d: %w", i, err)
		}
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrail(path string, points []r2.Vec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all readable runs, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrails(runID string) ([]Trail, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	trails := make([]Trail, 0, meta.Pendulums)
	for i := 0; i < meta.Pendulums; i++ {
		points, err := readTrail(filepath.Join(s.baseDir, runID, trailFile(i)))
		if err != nil {
			return nil, fmt.Errorf("storage: trail %d: %w", i, err)
		}
		tr := Trail{Points: points}
		if i < len(meta.Colors) {
			tr.Color = meta.Colors[i]
		}
		trails = append(trails, tr)
	}
	return trails, nil
}

func readTrail(path string) ([]r2.Vec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []r2.Vec{}, nil
	}

	points := make([]r2.Vec, 0, len(records)-1)
	for _, rec := range records[1:] {
		x, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		points = append(points, r2.Vec{X: x, Y: y})
	}
	return points, nil
}
