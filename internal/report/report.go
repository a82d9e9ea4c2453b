// Package report renders simulation results and diagnoses as a plain
// text report for students to annotate.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/neurosim/internal/analysis"
	"github.com/san-kum/neurosim/internal/diagnose"
	"github.com/san-kum/neurosim/internal/neuron"
)

// Entry pairs one run with its diagnosis.
type Entry struct {
	Result    *neuron.Result
	Diagnosis diagnose.Diagnosis
}

// Write renders all entries to w.
func Write(w io.Writer, steps int, entries []Entry) error {
	fmt.Fprintln(w, "NEUROSIM - SIMULATION REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "steps per run: %d\n\n", steps)

	for _, e := range entries {
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(w io.Writer, e Entry) error {
	r := e.Result
	d := e.Diagnosis

	fmt.Fprintf(w, "CASE: %s\n", r.Name)
	fmt.Fprintln(w, strings.Repeat("-", 30))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  threshold\t%g mV\n", r.Params.Threshold)
	fmt.Fprintf(tw, "  reset voltage\t%g mV\n", r.Params.ResetVoltage)
	fmt.Fprintf(tw, "  stimulus\t%g mV\n", r.Params.Stimulus)
	fmt.Fprintf(tw, "  total spikes\t%d\n", r.Spikes)
	fmt.Fprintf(tw, "  firing rate\t%.1f%%\n", r.FiringRate*100)
	fmt.Fprintf(tw, "  spike times\t%v\n", r.SpikeTimes)
	if stats := analysis.IntervalStats(r.SpikeTimes); stats.Count > 0 {
		fmt.Fprintf(tw, "  mean interval\t%.1f steps\n", stats.Mean)
	}
	fmt.Fprintf(tw, "  problem\t%s\n", d.Problem)
	fmt.Fprintf(tw, "  severity\t%s\n", d.Severity)
	fmt.Fprintf(tw, "  explanation\t%s\n", d.Explanation)
	fmt.Fprintf(tw, "  recommendation\t%s\n", d.Recommendation)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return nil
}

// WriteFile renders all entries to the named file.
func WriteFile(path string, steps int, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, steps, entries)
}
