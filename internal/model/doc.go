// Package model holds the robot description: links with inertial
// parameters, joints connecting them, and named joint groups. Descriptions
// load from a YAML schema mirroring URDF, or from URDF XML directly.
package model
