package spatial

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// RotIdentity returns the identity rotation.
func RotIdentity() r3.Rotation {
	return r3.Rotation{Real: 1}
}

// RotAxisAngle returns the rotation of angle radians about axis.
// The axis does not need to be unit length.
func RotAxisAngle(axis r3.Vec, angle float64) r3.Rotation {
	return r3.NewRotation(angle, axis)
}

// RotRPY returns the rotation for URDF-style fixed-frame roll/pitch/yaw
// angles: Rz(yaw) * Ry(pitch) * Rx(roll).
func RotRPY(roll, pitch, yaw float64) r3.Rotation {
	rx := r3.NewRotation(roll, r3.Vec{X: 1})
	ry := r3.NewRotation(pitch, r3.Vec{Y: 1})
	rz := r3.NewRotation(yaw, r3.Vec{Z: 1})
	return RotCompose(RotCompose(rz, ry), rx)
}

// RotCompose returns the rotation applying b first, then a.
func RotCompose(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// RotInverse returns the inverse rotation.
func RotInverse(a r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Conj(quat.Number(a)))
}

// Frame is a rigid transform: the pose of a child frame expressed in its
// parent frame. Applying a Frame maps child-frame coordinates to
// parent-frame coordinates.
type Frame struct {
	R r3.Rotation
	P r3.Vec
}

// FrameIdentity returns the identity transform.
func FrameIdentity() Frame {
	return Frame{R: RotIdentity()}
}

// NewFrame returns a frame with the given rotation and translation.
func NewFrame(r r3.Rotation, p r3.Vec) Frame {
	return Frame{R: r, P: p}
}

// Mul composes two transforms: (f.Mul(g)).Apply(p) == f.Apply(g.Apply(p)).
func (f Frame) Mul(g Frame) Frame {
	return Frame{
		R: RotCompose(f.R, g.R),
		P: r3.Add(f.P, f.R.Rotate(g.P)),
	}
}

// Inverse returns the transform mapping parent coordinates to child
// coordinates.
func (f Frame) Inverse() Frame {
	ri := RotInverse(f.R)
	return Frame{R: ri, P: r3.Scale(-1, ri.Rotate(f.P))}
}

// Apply maps a point from child-frame to parent-frame coordinates.
func (f Frame) Apply(p r3.Vec) r3.Vec {
	return r3.Add(f.P, f.R.Rotate(p))
}

// Twist is a spatial velocity: linear velocity of the reference point and
// angular velocity, both in the same frame.
type Twist struct {
	Vel r3.Vec
	Rot r3.Vec
}

func (t Twist) Add(o Twist) Twist {
	return Twist{Vel: r3.Add(t.Vel, o.Vel), Rot: r3.Add(t.Rot, o.Rot)}
}

func (t Twist) Scale(s float64) Twist {
	return Twist{Vel: r3.Scale(s, t.Vel), Rot: r3.Scale(s, t.Rot)}
}

// RefPoint returns the same twist with its reference point displaced by p
// (p expressed in the twist's frame).
func (t Twist) RefPoint(p r3.Vec) Twist {
	return Twist{Vel: r3.Add(t.Vel, r3.Cross(t.Rot, p)), Rot: t.Rot}
}

// Cross is the spatial cross product of two twists (motion x motion).
func (t Twist) Cross(o Twist) Twist {
	return Twist{
		Vel: r3.Add(r3.Cross(t.Rot, o.Vel), r3.Cross(t.Vel, o.Rot)),
		Rot: r3.Cross(t.Rot, o.Rot),
	}
}

// CrossWrench is the spatial cross product of a twist with a wrench
// (motion x force), used for the velocity-product term of the dynamics.
func (t Twist) CrossWrench(w Wrench) Wrench {
	return Wrench{
		Force:  r3.Cross(t.Rot, w.Force),
		Torque: r3.Add(r3.Cross(t.Rot, w.Torque), r3.Cross(t.Vel, w.Force)),
	}
}

// InverseTwist re-expresses a parent-frame twist in the child frame, for f
// the pose of the child in the parent.
func (f Frame) InverseTwist(t Twist) Twist {
	ri := RotInverse(f.R)
	return Twist{
		Vel: ri.Rotate(r3.Sub(t.Vel, r3.Cross(f.P, t.Rot))),
		Rot: ri.Rotate(t.Rot),
	}
}

// Wrench is a generalized force: a force and a torque about the reference
// point, both in the same frame.
type Wrench struct {
	Force  r3.Vec
	Torque r3.Vec
}

func (w Wrench) Add(o Wrench) Wrench {
	return Wrench{Force: r3.Add(w.Force, o.Force), Torque: r3.Add(w.Torque, o.Torque)}
}

func (w Wrench) Sub(o Wrench) Wrench {
	return Wrench{Force: r3.Sub(w.Force, o.Force), Torque: r3.Sub(w.Torque, o.Torque)}
}

// TransformWrench re-expresses a child-frame wrench in the parent frame,
// for f the pose of the child in the parent. The torque picks up the moment
// of the force about the parent origin.
func (f Frame) TransformWrench(w Wrench) Wrench {
	force := f.R.Rotate(w.Force)
	return Wrench{
		Force:  force,
		Torque: r3.Add(f.R.Rotate(w.Torque), r3.Cross(f.P, force)),
	}
}

// RotateWrench rotates both components of a wrench without a moment-arm
// correction. Force and torque are treated as free vectors; the point of
// application is unchanged.
func (f Frame) RotateWrench(w Wrench) Wrench {
	return Wrench{Force: f.R.Rotate(w.Force), Torque: f.R.Rotate(w.Torque)}
}

// Dot projects a wrench onto a unit twist, giving the scalar joint force
// along that axis.
func Dot(t Twist, w Wrench) float64 {
	return r3.Dot(t.Vel, w.Force) + r3.Dot(t.Rot, w.Torque)
}
