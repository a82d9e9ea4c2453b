package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// TracePlot renders a voltage trace as an ASCII line plot.
func TracePlot(voltages []float64, caption string) string {
	if len(voltages) == 0 {
		return ""
	}
	return asciigraph.Plot(voltages,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// SpikeRaster renders one character per step: a bar on spiking steps,
// a dot otherwise.
func SpikeRaster(spiked []bool) string {
	var b strings.Builder
	b.WriteString("spikes  ")
	for _, s := range spiked {
		if s {
			b.WriteString(spikeStyle.Render("│"))
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

// RasterFromTimes builds the per-step spike flags for a raster from
// recorded spike times.
func RasterFromTimes(spikeTimes []int, steps int) []bool {
	spiked := make([]bool, steps)
	for _, t := range spikeTimes {
		if t >= 0 && t < steps {
			spiked[t] = true
		}
	}
	return spiked
}
