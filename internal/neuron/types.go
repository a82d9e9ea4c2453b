package neuron

// Result is an immutable snapshot of a completed run. The slices are
// copies; the engine retains no reference after Run returns.
type Result struct {
	Name           string
	Spikes         int
	FiringRate     float64
	VoltageHistory []float64
	SpikeTimes     []int
	Params         Params
}

// Observer receives one callback per simulated step. On a spiking step
// the reported voltage is the post-reset live voltage; the recorded
// history holds the spike peak.
type Observer interface {
	OnStep(t int, voltage float64, spiked bool)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(t int, voltage float64, spiked bool)

func (f ObserverFunc) OnStep(t int, voltage float64, spiked bool) { f(t, voltage, spiked) }
