package neuron

import "sync"

// RunAll simulates every unit for the same number of steps, one
// goroutine per unit. Results are returned in input order. Each unit's
// state is touched only by its own goroutine, so no locking is needed.
// The first error encountered (by input order) is returned.
func RunAll(units []*Neuron, steps int) ([]*Result, error) {
	results := make([]*Result, len(units))
	errs := make([]error, len(units))

	var wg sync.WaitGroup
	for i, n := range units {
		wg.Add(1)
		go func(idx int, unit *Neuron) {
			defer wg.Done()
			results[idx], errs[idx] = unit.Run(steps)
		}(i, n)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
