package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/neurosim/internal/diagnose"
	"github.com/san-kum/neurosim/internal/neuron"
)

func entryFor(t *testing.T, name string, mutate func(*neuron.Params)) Entry {
	t.Helper()
	p := neuron.DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	n, err := neuron.New(name, p)
	if err != nil {
		t.Fatal(err)
	}
	result, err := n.Run(20)
	if err != nil {
		t.Fatal(err)
	}
	return Entry{
		Result:    result,
		Diagnosis: diagnose.Classify(name, p, result.FiringRate),
	}
}

func TestWrite(t *testing.T) {
	entries := []Entry{
		entryFor(t, "Normal Neuron", nil),
		entryFor(t, "Case C - Poor Reset", func(p *neuron.Params) { p.ResetVoltage = -40 }),
	}

	var buf bytes.Buffer
	if err := Write(&buf, 20, entries); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"SIMULATION REPORT",
		"steps per run: 20",
		"CASE: Normal Neuron",
		"Normal Function",
		"CASE: Case C - Poor Reset",
		"Hyperexcitability",
		"Reset voltage is too high",
		"firing rate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWritePreservesBlankDiagnosisFields(t *testing.T) {
	// A matched branch with no matching sub-rule carries empty text;
	// the report prints the labels with nothing after them.
	p := neuron.DefaultParams()
	p.Threshold = -69

	n, err := neuron.New("Edge", p)
	if err != nil {
		t.Fatal(err)
	}
	result, err := n.Run(20)
	if err != nil {
		t.Fatal(err)
	}

	d := diagnose.Classify("Edge", p, result.FiringRate)
	if d.Explanation != "" {
		t.Fatalf("test premise broken: explanation = %q", d.Explanation)
	}

	var buf bytes.Buffer
	if err := Write(&buf, 20, []Entry{{Result: result, Diagnosis: d}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Hyperexcitability") {
		t.Error("expected the category even with blank explanation")
	}
}
