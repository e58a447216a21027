// Package chain turns a robot model into kinematic structure: the link
// tree, serial base-to-tip chains extracted from it, and validation of
// joint groups against the serial-chain requirements of the dynamics
// solver.
package chain
