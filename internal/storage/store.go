// Package storage persists completed runs as flat files: one directory
// per run holding metadata.json and trace.csv. The store only ever
// consumes Result snapshots; it never reaches back into a live unit.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/neurosim/internal/neuron"
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
	ID         string        `json:"id"`
	Case       string        `json:"case"`
	Timestamp  time.Time     `json:"timestamp"`
	Steps      int           `json:"steps"`
	Params     neuron.Params `json:"params"`
	Spikes     int           `json:"spikes"`
	FiringRate float64       `json:"firing_rate"`
	SpikeTimes []int         `json:"spike_times"`
}

// Save writes one run to its own directory and returns the run id.
func (s *Store) Save(result *neuron.Result, steps int) (string, error) {
	runID := fmt.Sprintf("%s_%d", slug(result.Name), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Case:       result.Name,
		Timestamp:  time.Now(),
		Steps:      steps,
		Params:     result.Params,
		Spikes:     result.Spikes,
		FiringRate: result.FiringRate,
		SpikeTimes: result.SpikeTimes,
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

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "voltage", "spiked"}); err != nil {
		return "", err
	}

	spiked := make(map[int]bool, len(result.SpikeTimes))
	for _, t := range result.SpikeTimes {
		spiked[t] = true
	}

	for t, v := range result.VoltageHistory {
		fired := "0"
		if spiked[t] {
			fired = "1"
		}
		row := []string{
			strconv.Itoa(t),
			strconv.FormatFloat(v, 'f', 6, 64),
			fired,
		}
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

// LoadTrace reads back the voltage trace and per-step spike flags.
func (s *Store) LoadTrace(runID string) ([]float64, []bool, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []bool{}, nil
	}

	voltages := make([]float64, 0, len(records)-1)
	spiked := make([]bool, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		voltages = append(voltages, v)
		spiked = append(spiked, record[2] == "1")
	}

	return voltages, spiked, nil
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if n := b.Len(); n > 0 && b.String()[n-1] != '-' {
				b.WriteByte('-')
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
