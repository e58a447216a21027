// Package spatial provides the rigid-body algebra the dynamics is built on:
// frames (rotation + translation), twists (spatial velocities), wrenches
// (generalized forces) and segment inertias.
//
// Vectors are gonum [r3.Vec]; rotations are quaternion-backed
// [r3.Rotation] values with composition and inversion helpers.
//
// Conventions follow the usual robotics ones: a [Frame] is the pose of a
// child frame in its parent, twists and wrenches are expressed in a named
// frame with a named reference point, and [Frame.InverseTwist] /
// [Frame.TransformWrench] move quantities between adjacent frames.
package spatial
