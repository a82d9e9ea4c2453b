// Package neuron provides the integrate-and-fire simulation engine.
//
// The package defines the fundamental types for discrete-time neuron
// simulation:
//
//   - [Params]: immutable biophysical parameter record
//   - [Neuron]: one simulated unit with its per-run trace
//   - [Result]: immutable snapshot of a completed run
//   - [Observer]: per-step hook for narration and live views
//
// # Example
//
//	n, _ := neuron.New("Normal", neuron.DefaultParams())
//	result, _ := n.Run(20)
//	fmt.Println(result.FiringRate)
//
// # Thread Safety
//
// Neuron instances are NOT thread-safe. Distinct neurons share no state,
// so independent units may run concurrently; use [RunAll] for a batch.
package neuron
