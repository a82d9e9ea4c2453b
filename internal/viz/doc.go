// Package viz renders voltage traces and spike rasters in the
// terminal, and hosts the live stepping view.
//
//   - [TracePlot]: asciigraph line plot of a recorded voltage trace
//   - [SpikeRaster]: one-line raster of spiking steps
//   - [NewLive]: bubbletea model that steps a unit in real time
package viz
