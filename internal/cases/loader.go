package cases

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neurosim/internal/neuron"
)

// caseFile is the on-disk case definition. Unset parameters fall back
// to the healthy baseline, matching the built-in cases.
type caseFile struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters paramsFile `json:"parameters" yaml:"parameters"`
}

type paramsFile struct {
	Voltage      *float64 `json:"voltage" yaml:"voltage"`
	Threshold    *float64 `json:"threshold" yaml:"threshold"`
	SpikeVoltage *float64 `json:"spike_voltage" yaml:"spike_voltage"`
	ResetVoltage *float64 `json:"reset_voltage" yaml:"reset_voltage"`
	Stimulus     *float64 `json:"stimulus" yaml:"stimulus"`
}

func (pf paramsFile) params() neuron.Params {
	p := neuron.DefaultParams()
	if pf.Voltage != nil {
		p.Voltage = *pf.Voltage
	}
	if pf.Threshold != nil {
		p.Threshold = *pf.Threshold
	}
	if pf.SpikeVoltage != nil {
		p.SpikeVoltage = *pf.SpikeVoltage
	}
	if pf.ResetVoltage != nil {
		p.ResetVoltage = *pf.ResetVoltage
	}
	if pf.Stimulus != nil {
		p.Stimulus = *pf.Stimulus
	}
	return p
}

// Load reads case_*.json and case_*.yaml files from dir. A missing or
// empty directory yields the built-in defaults. A file that fails to
// parse or validate is skipped with a warning on warnw; the rest of the
// batch proceeds.
func Load(dir string, warnw io.Writer) *Set {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(warnw, "warning: cannot read case directory %s: %v\n", dir, err)
		}
		return Defaults()
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "case_") {
			continue
		}
		switch filepath.Ext(name) {
		case ".json", ".yaml", ".yml":
			names = append(names, name)
		}
	}
	sort.Strings(names)

	set := NewSet()
	for _, name := range names {
		c, err := loadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warnw, "warning: skipping %s: %v\n", name, err)
			continue
		}
		set.Add(c)
	}

	if set.Len() == 0 {
		return Defaults()
	}
	return set
}

func loadFile(path string) (Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Case{}, err
	}

	var cf caseFile
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cf)
	default:
		err = json.Unmarshal(data, &cf)
	}
	if err != nil {
		return Case{}, err
	}

	if cf.Name == "" {
		return Case{}, fmt.Errorf("case file has no name")
	}

	p := cf.Parameters.params()
	if err := p.Validate(); err != nil {
		return Case{}, err
	}

	return Case{Key: cf.Name, Name: cf.Name, Params: p}, nil
}
