package diagnose

import (
	"fmt"

	"github.com/san-kum/neurosim/internal/neuron"
)

// Problem is the fault category assigned by the rule table.
type Problem int

const (
	Unknown Problem = iota
	NoActionPotentials
	Hyperexcitability
	Hypoexcitability
	NormalFunction
)

func (p Problem) String() string {
	switch p {
	case NoActionPotentials:
		return "No Action Potentials"
	case Hyperexcitability:
		return "Hyperexcitability"
	case Hypoexcitability:
		return "Hypoexcitability"
	case NormalFunction:
		return "Normal Function"
	default:
		return "Unknown"
	}
}

// Severity grades how far the firing pattern sits from the healthy band.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityMild
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMild:
		return "Mild"
	case SeverityCritical:
		return "Critical"
	default:
		return "Normal"
	}
}

// Diagnosis is the classifier's immutable verdict for one unit.
type Diagnosis struct {
	Case           string
	Problem        Problem
	Explanation    string
	Recommendation string
	Severity       Severity
}

// Rate boundaries and parameter cutoffs of the rule table, in mV where
// applicable. These are published teaching values; do not retune them.
const (
	hyperRate       = 0.8
	hypoRate        = 0.2
	highThresholdMV = -40.0
	weakStimulusMV  = 3.0
	lowThresholdMV  = -75.0
	highResetMV     = -60.0
	lowStimulusMV   = 5.0
)

// Classify applies the rule table to one unit's firing rate and
// parameters. Branches are checked in order; the first match decides
// the problem and severity, and its sub-conditions (if any) pick the
// explanation text.
func Classify(name string, p neuron.Params, firingRate float64) Diagnosis {
	d := Diagnosis{Case: name}

	switch {
	case firingRate == 0:
		d.Problem = NoActionPotentials
		d.Severity = SeverityCritical
		if p.Threshold > highThresholdMV {
			d.Explanation = "Threshold voltage is too high - neuron cannot reach firing threshold"
			d.Recommendation = fmt.Sprintf("Lower threshold from %gmV to around -55mV", p.Threshold)
		} else if p.Stimulus < weakStimulusMV {
			d.Explanation = "Stimulus is too weak to reach threshold"
			d.Recommendation = fmt.Sprintf("Increase stimulus from %gmV to around 5-10mV", p.Stimulus)
		}

	case firingRate > hyperRate:
		d.Problem = Hyperexcitability
		d.Severity = SeverityCritical
		if p.Threshold < lowThresholdMV {
			d.Explanation = "Threshold voltage is too low - neuron fires too easily"
			d.Recommendation = fmt.Sprintf("Raise threshold from %gmV to around -55mV", p.Threshold)
		} else if p.ResetVoltage > highResetMV {
			d.Explanation = "Reset voltage is too high - neuron stays near threshold"
			d.Recommendation = fmt.Sprintf("Lower reset voltage from %gmV to around -70mV", p.ResetVoltage)
		}

	case firingRate < hypoRate:
		d.Problem = Hypoexcitability
		d.Severity = SeverityMild
		d.Explanation = "Neuron fires but less frequently than normal"
		if p.Stimulus < lowStimulusMV {
			d.Recommendation = fmt.Sprintf("Consider increasing stimulus from %gmV", p.Stimulus)
		}

	default:
		d.Problem = NormalFunction
		d.Severity = SeverityNormal
		d.Explanation = "Neuron shows healthy firing patterns"
		d.Recommendation = "No adjustments needed"
	}

	return d
}

// Run simulates the unit silently and classifies the outcome. Any
// observers attached to the unit are not invoked here; diagnosis never
// interleaves with step narration.
func Run(n *neuron.Neuron, steps int) (Diagnosis, error) {
	result, err := runSilent(n, steps)
	if err != nil {
		return Diagnosis{}, err
	}
	return Classify(n.Name, n.Params, result.FiringRate), nil
}

// runSilent runs a throwaway clone so the caller's observers stay quiet
// and the unit's visible trace is untouched by diagnosis.
func runSilent(n *neuron.Neuron, steps int) (*neuron.Result, error) {
	clone, err := neuron.New(n.Name, n.Params)
	if err != nil {
		return nil, err
	}
	return clone.Run(steps)
}
