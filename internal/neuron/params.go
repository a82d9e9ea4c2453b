package neuron

import (
	"fmt"
	"math"
)

// Baseline parameter values in millivolts.
const (
	DefaultVoltage      = -70.0
	DefaultThreshold    = -55.0
	DefaultSpikeVoltage = 30.0
	DefaultResetVoltage = -70.0
	DefaultStimulus     = 5.0
)

// Params is the read-only biophysical configuration of a unit. It is
// copied by value everywhere; a single Params may safely parameterize
// any number of concurrent runs.
type Params struct {
	Voltage      float64 `json:"voltage" yaml:"voltage"`
	Threshold    float64 `json:"threshold" yaml:"threshold"`
	SpikeVoltage float64 `json:"spike_voltage" yaml:"spike_voltage"`
	ResetVoltage float64 `json:"reset_voltage" yaml:"reset_voltage"`
	Stimulus     float64 `json:"stimulus" yaml:"stimulus"`
}

// DefaultParams returns the healthy baseline configuration.
func DefaultParams() Params {
	return Params{
		Voltage:      DefaultVoltage,
		Threshold:    DefaultThreshold,
		SpikeVoltage: DefaultSpikeVoltage,
		ResetVoltage: DefaultResetVoltage,
		Stimulus:     DefaultStimulus,
	}
}

// Validate rejects NaN and infinite values.
func (p Params) Validate() error {
	fields := map[string]float64{
		"voltage":       p.Voltage,
		"threshold":     p.Threshold,
		"spike_voltage": p.SpikeVoltage,
		"reset_voltage": p.ResetVoltage,
		"stimulus":      p.Stimulus,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidParams, name, v)
		}
	}
	return nil
}
