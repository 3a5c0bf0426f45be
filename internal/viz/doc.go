// Package viz renders trajectories in the terminal: asciigraph time-series
// charts for stored runs and a bubbletea live view that animates a body in
// flight on a braille canvas.
package viz
