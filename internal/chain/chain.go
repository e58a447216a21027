package chain

import (
	"github.com/kvetner/armdyn/internal/model"
	"github.com/kvetner/armdyn/internal/spatial"
)

// Segment is one rigid body of a serial chain: the joint connecting it to
// its parent and the inertia of its link, referenced to the link frame.
// Fixed joints contribute a segment but no degree of freedom.
type Segment struct {
	Name    string
	Joint   *model.Joint
	Inertia spatial.Inertia
}

// Movable reports whether the segment's joint has a degree of freedom.
func (s *Segment) Movable() bool {
	return s.Joint.Movable()
}

// Pose returns the pose of the segment frame in its parent's frame at
// joint position q.
func (s *Segment) Pose(q float64) spatial.Frame {
	return s.Joint.Transform(q)
}

// UnitTwist returns the segment's unit joint twist expressed in the
// segment frame. The segment frame origin lies on the joint axis, so a
// revolute twist has no linear part.
func (s *Segment) UnitTwist() spatial.Twist {
	switch s.Joint.Type {
	case model.Revolute, model.Continuous:
		return spatial.Twist{Rot: s.Joint.AxisVec()}
	case model.Prismatic:
		return spatial.Twist{Vel: s.Joint.AxisVec()}
	default:
		return spatial.Twist{}
	}
}

// Chain is an ordered serial chain of segments from a base link to a tip
// link. Immutable after construction.
type Chain struct {
	segments []Segment
	joints   int
	base     string
	tip      string
}

// Segments returns the ordered segments, base to tip.
func (c *Chain) Segments() []Segment {
	return c.segments
}

// JointCount returns the number of movable joints.
func (c *Chain) JointCount() int {
	return c.joints
}

// SegmentCount returns the number of rigid segments, fixed ones included.
func (c *Chain) SegmentCount() int {
	return len(c.segments)
}

// Base returns the base link name.
func (c *Chain) Base() string {
	return c.base
}

// Tip returns the tip link name.
func (c *Chain) Tip() string {
	return c.tip
}

// JointNames returns the movable joint names, base to tip.
func (c *Chain) JointNames() []string {
	names := make([]string, 0, c.joints)
	for i := range c.segments {
		if c.segments[i].Movable() {
			names = append(names, c.segments[i].Joint.Name)
		}
	}
	return names
}
