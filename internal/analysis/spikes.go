// Package analysis provides firing-pattern statistics over spike
// records: inter-spike intervals and their summary moments. A regular
// healthy unit shows a tight interval distribution; hyperexcitable
// units collapse toward interval 1 and hypoexcitable units stretch out.
package analysis

import "math"

// Intervals returns the differences between consecutive spike time
// indices. Fewer than two spikes yield an empty slice.
func Intervals(spikeTimes []int) []int {
	if len(spikeTimes) < 2 {
		return nil
	}
	intervals := make([]int, len(spikeTimes)-1)
	for i := 1; i < len(spikeTimes); i++ {
		intervals[i-1] = spikeTimes[i] - spikeTimes[i-1]
	}
	return intervals
}

// Stats summarizes an inter-spike-interval sequence. CV is the
// coefficient of variation (stddev/mean), zero for perfectly regular
// firing.
type Stats struct {
	Count int
	Mean  float64
	Min   int
	Max   int
	CV    float64
}

// IntervalStats computes summary statistics of the intervals between
// the given spike times. With fewer than two spikes the zero Stats is
// returned.
func IntervalStats(spikeTimes []int) Stats {
	intervals := Intervals(spikeTimes)
	if len(intervals) == 0 {
		return Stats{}
	}

	s := Stats{Count: len(intervals), Min: intervals[0], Max: intervals[0]}
	sum := 0
	for _, iv := range intervals {
		sum += iv
		if iv < s.Min {
			s.Min = iv
		}
		if iv > s.Max {
			s.Max = iv
		}
	}
	s.Mean = float64(sum) / float64(len(intervals))

	variance := 0.0
	for _, iv := range intervals {
		d := float64(iv) - s.Mean
		variance += d * d
	}
	variance /= float64(len(intervals))
	if s.Mean != 0 {
		s.CV = math.Sqrt(variance) / s.Mean
	}
	return s
}
