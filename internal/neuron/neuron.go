package neuron

// Neuron is one simulated unit: an immutable parameter record plus the
// mutable trace of the current run. A Neuron is exclusively owned by
// its caller; distinct neurons share nothing.
type Neuron struct {
	Name   string
	Params Params

	voltage        float64
	spikes         int
	voltageHistory []float64
	spikeTimes     []int

	observers []Observer
}

// New constructs a unit after validating the parameter record.
func New(name string, p Params) (*Neuron, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Neuron{Name: name, Params: p, voltage: p.Voltage}, nil
}

// AddObserver registers a per-step hook. Observers are never invoked by
// the diagnostic path, only by explicit runs that attach them.
func (n *Neuron) AddObserver(o Observer) { n.observers = append(n.observers, o) }

// Voltage returns the live membrane voltage.
func (n *Neuron) Voltage() float64 { return n.voltage }

// Spikes returns the spike count of the run in progress.
func (n *Neuron) Spikes() int { return n.spikes }

// Reset clears the run trace and restores the initial membrane voltage.
func (n *Neuron) Reset() {
	n.voltage = n.Params.Voltage
	n.spikes = 0
	n.voltageHistory = n.voltageHistory[:0]
	n.spikeTimes = n.spikeTimes[:0]
}

// Step advances the unit one time step and reports whether it fired.
// The stimulus is applied first, the resulting voltage is recorded, and
// only then is the threshold checked. On a spike the recorded sample is
// overwritten with the spike peak and the live voltage is reset, so the
// trace shows the peak while the state never retains it. The threshold
// comparison is >=: reaching the boundary exactly fires. Voltage is not
// clamped in either direction; with an unreachable threshold it grows
// without bound, which is itself a diagnosable signature.
func (n *Neuron) Step(t int) bool {
	n.voltage += n.Params.Stimulus
	n.voltageHistory = append(n.voltageHistory, n.voltage)

	spiked := n.voltage >= n.Params.Threshold
	if spiked {
		n.voltageHistory[len(n.voltageHistory)-1] = n.Params.SpikeVoltage
		n.voltage = n.Params.ResetVoltage
		n.spikes++
		n.spikeTimes = append(n.spikeTimes, t)
	}

	for _, o := range n.observers {
		o.OnStep(t, n.voltage, spiked)
	}
	return spiked
}

// Run resets the trace and simulates the given number of steps,
// returning an immutable snapshot. Re-running with unchanged parameters
// yields an identical Result.
func (n *Neuron) Run(steps int) (*Result, error) {
	if steps <= 0 {
		return nil, ErrInvalidSteps
	}

	n.Reset()
	for t := 0; t < steps; t++ {
		n.Step(t)
	}
	return n.snapshot(steps), nil
}

func (n *Neuron) snapshot(steps int) *Result {
	history := make([]float64, len(n.voltageHistory))
	copy(history, n.voltageHistory)
	times := make([]int, len(n.spikeTimes))
	copy(times, n.spikeTimes)

	return &Result{
		Name:           n.Name,
		Spikes:         n.spikes,
		FiringRate:     float64(n.spikes) / float64(steps),
		VoltageHistory: history,
		SpikeTimes:     times,
		Params:         n.Params,
	}
}
