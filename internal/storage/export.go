package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/neurosim/internal/neuron"
)

// ExportData is the JSON export shape for one run.
type ExportData struct {
	Case           string        `json:"case"`
	Steps          int           `json:"steps"`
	Params         neuron.Params `json:"params"`
	Spikes         int           `json:"spikes"`
	FiringRate     float64       `json:"firing_rate"`
	SpikeTimes     []int         `json:"spike_times"`
	VoltageHistory []float64     `json:"voltage_history"`
}

// ExportJSON writes a run's full data to w.
func ExportJSON(w io.Writer, meta *RunMetadata, voltages []float64) error {
	data := ExportData{
		Case:           meta.Case,
		Steps:          meta.Steps,
		Params:         meta.Params,
		Spikes:         meta.Spikes,
		FiringRate:     meta.FiringRate,
		SpikeTimes:     meta.SpikeTimes,
		VoltageHistory: voltages,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout writes a run's full data to standard output.
func ExportJSONStdout(meta *RunMetadata, voltages []float64) error {
	return ExportJSON(os.Stdout, meta, voltages)
}
