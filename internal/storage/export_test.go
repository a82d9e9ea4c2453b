package storage

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/san-kum/neurosim/internal/neuron"
)

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:         "normal-neuron_1",
		Case:       "Normal Neuron",
		Timestamp:  time.Now(),
		Steps:      20,
		Params:     neuron.DefaultParams(),
		Spikes:     6,
		FiringRate: 0.3,
		SpikeTimes: []int{2, 5, 8, 11, 14, 17},
	}
	voltages := []float64{-65, -60, 30}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, voltages); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}

	if data.Case != "Normal Neuron" || data.Steps != 20 {
		t.Errorf("case/steps = %q/%d", data.Case, data.Steps)
	}
	if data.FiringRate != 0.3 || data.Spikes != 6 {
		t.Errorf("rate/spikes = %g/%d", data.FiringRate, data.Spikes)
	}
	if len(data.VoltageHistory) != 3 || data.VoltageHistory[2] != 30 {
		t.Errorf("voltage history = %v", data.VoltageHistory)
	}
}
