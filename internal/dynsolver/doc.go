// Package dynsolver answers torque and payload questions about one joint
// group of a robot model: the torques needed to realize a motion under
// external wrenches, the maximum mass the group can hold at its tip, and
// the torques induced by holding a given mass.
//
// A solver is bound at construction to a validated serial chain and a
// fixed gravity vector. Validation is strict: branched or disconnected
// groups, mimic joints, and unanchored root joints all produce a
// permanently inert solver rather than a partially working one.
//
// The recursive inverse dynamics itself lives behind the [Engine]
// interface (implemented by package rne), keeping the payload search and
// the recursion separable.
package dynsolver
