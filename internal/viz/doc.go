// Package viz renders torque and payload results for the terminal.
//
// It produces lipgloss-styled tables and panels plus asciigraph line
// charts for joint sweeps. All render functions return plain strings so
// callers decide where the output goes.
package viz
