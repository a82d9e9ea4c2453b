// Package cases supplies the investigation cases: named parameter sets
// that construct simulation units. Cases come from case files in a data
// directory when present, otherwise from the built-in teaching set.
package cases

import (
	"errors"
	"fmt"

	"github.com/san-kum/neurosim/internal/neuron"
)

// ErrUnknownCase indicates a case selector that matches nothing.
var ErrUnknownCase = errors.New("cases: unknown case")

// Case pairs a display name with the parameter record used to build
// its unit. Key is the short selector used on the command line.
type Case struct {
	Key    string
	Name   string
	Params neuron.Params
}

// NewNeuron constructs a fresh unit for this case.
func (c Case) NewNeuron() (*neuron.Neuron, error) {
	return neuron.New(c.Name, c.Params)
}

// Set is an ordered collection of cases keyed by selector.
type Set struct {
	byKey map[string]Case
	order []string
}

// NewSet builds a set preserving insertion order. Duplicate keys keep
// the first definition.
func NewSet(cs ...Case) *Set {
	s := &Set{byKey: make(map[string]Case)}
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

// Add appends a case unless its key is already taken.
func (s *Set) Add(c Case) {
	if _, ok := s.byKey[c.Key]; ok {
		return
	}
	s.byKey[c.Key] = c
	s.order = append(s.order, c.Key)
}

// Len reports the number of cases.
func (s *Set) Len() int { return len(s.order) }

// Get resolves a selector against keys first, then display names.
func (s *Set) Get(selector string) (Case, error) {
	if c, ok := s.byKey[selector]; ok {
		return c, nil
	}
	for _, key := range s.order {
		if s.byKey[key].Name == selector {
			return s.byKey[key], nil
		}
	}
	return Case{}, fmt.Errorf("%w: %q", ErrUnknownCase, selector)
}

// Keys returns the selectors in insertion order.
func (s *Set) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// All returns the cases in insertion order.
func (s *Set) All() []Case {
	all := make([]Case, 0, len(s.order))
	for _, key := range s.order {
		all = append(all, s.byKey[key])
	}
	return all
}

// Defaults returns the five built-in teaching cases. Each starts from
// the healthy baseline with one parameter altered.
func Defaults() *Set {
	highThreshold := neuron.DefaultParams()
	highThreshold.Threshold = -20

	lowThreshold := neuron.DefaultParams()
	lowThreshold.Threshold = -80

	poorReset := neuron.DefaultParams()
	poorReset.ResetVoltage = -40

	weakStimulus := neuron.DefaultParams()
	weakStimulus.Stimulus = 2

	return NewSet(
		Case{Key: "Case A", Name: "Case A - High Threshold", Params: highThreshold},
		Case{Key: "Case B", Name: "Case B - Low Threshold", Params: lowThreshold},
		Case{Key: "Case C", Name: "Case C - Poor Reset", Params: poorReset},
		Case{Key: "Case D", Name: "Case D - Weak Stimulus", Params: weakStimulus},
		Case{Key: "Normal", Name: "Normal Neuron", Params: neuron.DefaultParams()},
	)
}
