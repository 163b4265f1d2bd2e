// Package trace records headless engine runs for tuning: per-frame active
// parameters plus blob shape measurements, stored as a metadata file and a
// CSV trace under the data directory.
package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/aura/internal/phase"
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

// Frame is one sampled animation frame.
type Frame struct {
	Time       float64
	Params     phase.Params
	MeanRadius float64
	Spread     float64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Phase     string             `json:"phase"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

func header() []string {
	h := []string{"time"}
	h = append(h, phase.FieldNames()...)
	return append(h, "mean_radius", "spread")
}

func (s *Store) Save(phaseName string, dt float64, seed int64, frames []Frame, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", phaseName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Phase:     phaseName,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Frames:    len(frames),
		Metrics:   metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(header()); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{strconv.FormatFloat(f.Time, 'f', 6, 64)}
		for _, v := range f.Params.Fields() {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		row = append(row,
			strconv.FormatFloat(f.MeanRadius, 'f', 6, 64),
			strconv.FormatFloat(f.Spread, 'f', 6, 64))
		if err := w.Write(row); err != nil {
			return "", err
		}
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

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	want := len(header())
	frames := make([]Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != want {
			continue
		}
		vals := make([]float64, 0, want)
		ok := true
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}
		frames = append(frames, Frame{
			Time: vals[0],
			Params: phase.Params{
				Speed:       vals[1],
				Cohesion:    vals[2],
				Separation:  vals[3],
				Chaos:       vals[4],
				Pulse:       vals[5],
				RadiusScale: vals[6],
				Swirl:       vals[7],
			},
			MeanRadius: vals[8],
			Spread:     vals[9],
		})
	}
	return frames, nil
}

// Column extracts a named series from frames; recognized names are the
// trace header columns. Unknown names return nil.
func Column(frames []Frame, name string) []float64 {
	idx := -1
	for i, h := range header() {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(frames))
	for i, f := range frames {
		row := append([]float64{f.Time}, f.Params.Fields()...)
		row = append(row, f.MeanRadius, f.Spread)
		out[i] = row[idx]
	}
	return out
}

// ColumnNames lists the plottable trace columns.
func ColumnNames() []string {
	return header()[1:]
}
