package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/neurosim/internal/analysis"
	"github.com/san-kum/neurosim/internal/cases"
	"github.com/san-kum/neurosim/internal/config"
	"github.com/san-kum/neurosim/internal/diagnose"
	"github.com/san-kum/neurosim/internal/neuron"
	"github.com/san-kum/neurosim/internal/report"
	"github.com/san-kum/neurosim/internal/storage"
	"github.com/san-kum/neurosim/internal/viz"
)

var (
	dataDir  string
	casesDir string
	steps    int
	runAll   bool
	verbose  bool
	showPlot bool
	noSave   bool
	// Parameter overrides
	voltage      float64
	threshold    float64
	spikeVoltage float64
	resetVoltage float64
	stimulus     float64
	// Config file
	configFile string
	// Live view frame rate
	frameRate int
	// Report output path
	reportOut string
)

// main registers the neurosim commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "neurosim",
		Short: "action potential simulation and diagnosis lab",
		Run: func(cmd *cobra.Command, args []string) {
			listCases(cmd, args)
			fmt.Println()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run data directory")
	rootCmd.PersistentFlags().StringVar(&casesDir, "cases", config.DefaultCasesDir, "case file directory")

	runCmd := &cobra.Command{
		Use:   "run [case]",
		Short: "simulate a case",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCase,
	}
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of simulation steps")
	runCmd.Flags().BoolVar(&runAll, "all", false, "run all cases")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "print per-step narration")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot voltage trace after the run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&voltage, "voltage", neuron.DefaultVoltage, "initial membrane voltage (mV)")
	runCmd.Flags().Float64Var(&threshold, "threshold", neuron.DefaultThreshold, "firing threshold (mV)")
	runCmd.Flags().Float64Var(&spikeVoltage, "spike-voltage", neuron.DefaultSpikeVoltage, "spike peak voltage (mV)")
	runCmd.Flags().Float64Var(&resetVoltage, "reset-voltage", neuron.DefaultResetVoltage, "post-spike reset voltage (mV)")
	runCmd.Flags().Float64Var(&stimulus, "stimulus", neuron.DefaultStimulus, "per-step stimulus (mV)")

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose [case]",
		Short: "diagnose a case's firing pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE:  diagnoseCase,
	}
	diagnoseCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of simulation steps")
	diagnoseCmd.Flags().BoolVar(&runAll, "all", false, "diagnose all cases")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available cases",
		Run:   listCases,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [case]",
		Short: "step a case with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of simulation steps")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "steps per second")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "run and diagnose every case, writing a text report",
		RunE:  writeReport,
	}
	reportCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of simulation steps")
	reportCmd.Flags().StringVar(&reportOut, "output", "", "report file path (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run's trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	rootCmd.AddCommand(runCmd, diagnoseCmd, listCmd, runsCmd, plotCmd, liveCmd, reportCmd, exportJSONCmd, exportCSVCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveTargets selects the cases to operate on: one named case, or
// all of them. An unknown case name is an error and nothing runs.
func resolveTargets(set *cases.Set, args []string, all bool) ([]cases.Case, error) {
	if all {
		return set.All(), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("specify a case name or --all (see 'neurosim list')")
	}
	c, err := set.Get(args[0])
	if err != nil {
		return nil, err
	}
	return []cases.Case{c}, nil
}

func runCase(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config file values.
	if !cmd.Flags().Changed("steps") {
		steps = cfg.Steps
	}
	if !cmd.Flags().Changed("cases") && cfg.CasesDir != "" {
		casesDir = cfg.CasesDir
	}
	if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}

	set := cases.Load(casesDir, os.Stderr)
	targets, err := resolveTargets(set, args, runAll)
	if err != nil {
		return err
	}

	units := make([]*neuron.Neuron, 0, len(targets))
	for _, c := range targets {
		p := cfg.Params.Apply(c.Params)
		applyFlagOverrides(cmd, &p)
		n, err := neuron.New(c.Name, p)
		if err != nil {
			return err
		}
		units = append(units, n)
	}

	var results []*neuron.Result
	if verbose {
		// Narrated runs stay sequential so output does not interleave.
		for _, n := range units {
			fmt.Printf("--- simulation start: %s ---\n", n.Name)
			fmt.Printf("threshold=%gmV reset=%gmV stimulus=%gmV\n",
				n.Params.Threshold, n.Params.ResetVoltage, n.Params.Stimulus)
			n.AddObserver(narrator(n.Params.ResetVoltage))
			r, err := n.Run(steps)
			if err != nil {
				return err
			}
			fmt.Println()
			results = append(results, r)
		}
	} else {
		results, err = neuron.RunAll(units, steps)
		if err != nil {
			return err
		}
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	for _, r := range results {
		printSummary(r, steps)

		if st != nil {
			runID, err := st.Save(r, steps)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
		}

		if showPlot {
			fmt.Println()
			fmt.Println(viz.TracePlot(r.VoltageHistory, fmt.Sprintf("%s: membrane voltage (mV)", r.Name)))
			fmt.Println(viz.SpikeRaster(viz.RasterFromTimes(r.SpikeTimes, steps)))
		}
		fmt.Println()
	}

	return nil
}

// narrator prints the original activity's per-step lines, 1-indexed for
// students.
func narrator(resetVoltage float64) neuron.Observer {
	return neuron.ObserverFunc(func(t int, voltage float64, spiked bool) {
		if spiked {
			fmt.Printf("Time %2d: SPIKE! (reset to %gmV)\n", t+1, resetVoltage)
		} else {
			fmt.Printf("Time %2d: Voltage = %.1fmV\n", t+1, voltage)
		}
	})
}

func printSummary(r *neuron.Result, steps int) {
	fmt.Printf("case: %s\n", r.Name)
	fmt.Printf("steps: %d\n", steps)
	fmt.Printf("spikes: %d\n", r.Spikes)
	fmt.Printf("firing rate: %.1f%%\n", r.FiringRate*100)
	fmt.Printf("spike times: %v\n", r.SpikeTimes)
	if stats := analysis.IntervalStats(r.SpikeTimes); stats.Count > 0 {
		fmt.Printf("mean inter-spike interval: %.1f steps (cv %.2f)\n", stats.Mean, stats.CV)
	}
}

func applyFlagOverrides(cmd *cobra.Command, p *neuron.Params) {
	if cmd.Flags().Changed("voltage") {
		p.Voltage = voltage
	}
	if cmd.Flags().Changed("threshold") {
		p.Threshold = threshold
	}
	if cmd.Flags().Changed("spike-voltage") {
		p.SpikeVoltage = spikeVoltage
	}
	if cmd.Flags().Changed("reset-voltage") {
		p.ResetVoltage = resetVoltage
	}
	if cmd.Flags().Changed("stimulus") {
		p.Stimulus = stimulus
	}
}

func diagnoseCase(cmd *cobra.Command, args []string) error {
	set := cases.Load(casesDir, os.Stderr)
	targets, err := resolveTargets(set, args, runAll)
	if err != nil {
		return err
	}

	for _, c := range targets {
		n, err := c.NewNeuron()
		if err != nil {
			return err
		}
		d, err := diagnose.Run(n, steps)
		if err != nil {
			return err
		}
		printDiagnosis(d)
		fmt.Println()
	}
	return nil
}

func printDiagnosis(d diagnose.Diagnosis) {
	fmt.Printf("case: %s\n", d.Case)
	fmt.Printf("problem: %s\n", d.Problem)
	fmt.Printf("severity: %s\n", viz.SeverityStyle(d.Severity.String()).Render(d.Severity.String()))
	fmt.Printf("explanation: %s\n", d.Explanation)
	fmt.Printf("recommendation: %s\n", d.Recommendation)
}

func listCases(cmd *cobra.Command, args []string) {
	set := cases.Load(casesDir, os.Stderr)
	fmt.Println("available cases:")
	for _, c := range set.All() {
		fmt.Printf("  %-8s %s\n", c.Key, c.Name)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCASE\tTIME\tSTEPS\tSPIKES\tRATE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f%%\n",
			run.ID,
			run.Case,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Spikes,
			run.FiringRate*100,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	voltages, spiked, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(voltages) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("case: %s\n", meta.Case)
	fmt.Printf("samples: %d\n\n", len(voltages))

	fmt.Println(viz.TracePlot(voltages, "membrane voltage (mV)"))
	fmt.Println()
	fmt.Println(viz.SpikeRaster(spiked))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if steps <= 0 {
		return neuron.ErrInvalidSteps
	}

	set := cases.Load(casesDir, os.Stderr)
	c, err := set.Get(args[0])
	if err != nil {
		return err
	}

	n, err := c.NewNeuron()
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewLive(n, steps, frameRate))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func writeReport(cmd *cobra.Command, args []string) error {
	set := cases.Load(casesDir, os.Stderr)
	all := set.All()

	units := make([]*neuron.Neuron, 0, len(all))
	for _, c := range all {
		n, err := c.NewNeuron()
		if err != nil {
			return err
		}
		units = append(units, n)
	}

	results, err := neuron.RunAll(units, steps)
	if err != nil {
		return err
	}

	entries := make([]report.Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, report.Entry{
			Result:    r,
			Diagnosis: diagnose.Classify(r.Name, r.Params, r.FiringRate),
		})
	}

	if reportOut == "" {
		return report.Write(os.Stdout, steps, entries)
	}
	if err := report.WriteFile(reportOut, steps, entries); err != nil {
		return err
	}
	fmt.Printf("report saved to: %s\n", reportOut)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	voltages, _, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, voltages)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	voltages, spiked, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(voltages) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "voltage", "spiked"}); err != nil {
		return err
	}

	for t, v := range voltages {
		fired := "0"
		if spiked[t] {
			fired = "1"
		}
		row := []string{strconv.Itoa(t), strconv.FormatFloat(v, 'f', 6, 64), fired}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
