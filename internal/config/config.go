package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neurosim/internal/neuron"
)

const (
	DefaultSteps    = 20
	DefaultDataDir  = ".neurosim"
	DefaultCasesDir = "data"
)

// Config holds run settings loaded from a YAML file. Values left unset
// in the file keep their defaults; command-line flags override both.
type Config struct {
	Steps    int          `yaml:"steps"`
	CasesDir string       `yaml:"cases_dir"`
	DataDir  string       `yaml:"data_dir"`
	Params   ParamsConfig `yaml:"params"`
}

// ParamsConfig optionally overrides individual unit parameters for
// ad-hoc runs. Nil fields keep the case's own value.
type ParamsConfig struct {
	Voltage      *float64 `yaml:"voltage"`
	Threshold    *float64 `yaml:"threshold"`
	SpikeVoltage *float64 `yaml:"spike_voltage"`
	ResetVoltage *float64 `yaml:"reset_voltage"`
	Stimulus     *float64 `yaml:"stimulus"`
}

// Apply returns p with the set overrides applied.
func (pc ParamsConfig) Apply(p neuron.Params) neuron.Params {
	if pc.Voltage != nil {
		p.Voltage = *pc.Voltage
	}
	if pc.Threshold != nil {
		p.Threshold = *pc.Threshold
	}
	if pc.SpikeVoltage != nil {
		p.SpikeVoltage = *pc.SpikeVoltage
	}
	if pc.ResetVoltage != nil {
		p.ResetVoltage = *pc.ResetVoltage
	}
	if pc.Stimulus != nil {
		p.Stimulus = *pc.Stimulus
	}
	return p
}

func DefaultConfig() *Config {
	return &Config{
		Steps:    DefaultSteps,
		CasesDir: DefaultCasesDir,
		DataDir:  DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
