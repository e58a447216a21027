package spatial

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func vecNear(t *testing.T, got, want r3.Vec, eps float64, msg string) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

func TestRotAxisAngle(t *testing.T) {
	// Right-hand rotation of 90 degrees about +y sends x to -z.
	r := RotAxisAngle(r3.Vec{Y: 1}, math.Pi/2)
	vecNear(t, r.Rotate(r3.Vec{X: 1}), r3.Vec{Z: -1}, 1e-9, "rot y 90 of x")
	vecNear(t, r.Rotate(r3.Vec{Y: 1}), r3.Vec{Y: 1}, 1e-9, "axis invariant")
}

func TestRotComposeOrder(t *testing.T) {
	a := RotAxisAngle(r3.Vec{Z: 1}, math.Pi/2)
	b := RotAxisAngle(r3.Vec{X: 1}, math.Pi/2)
	v := r3.Vec{Y: 1}

	got := RotCompose(a, b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	vecNear(t, got, want, 1e-9, "compose applies right first")
}

func TestRotInverse(t *testing.T) {
	r := RotRPY(0.3, -0.7, 1.9)
	v := r3.Vec{X: 0.2, Y: -1.4, Z: 3.0}
	vecNear(t, RotInverse(r).Rotate(r.Rotate(v)), v, 1e-9, "inverse round trip")
}

func TestRotRPY(t *testing.T) {
	// Pure yaw of 90 degrees sends x to y.
	r := RotRPY(0, 0, math.Pi/2)
	vecNear(t, r.Rotate(r3.Vec{X: 1}), r3.Vec{Y: 1}, 1e-9, "yaw 90 of x")

	// Pure roll of 90 degrees sends y to z.
	r = RotRPY(math.Pi/2, 0, 0)
	vecNear(t, r.Rotate(r3.Vec{Y: 1}), r3.Vec{Z: 1}, 1e-9, "roll 90 of y")
}

func TestFrameMulInverse(t *testing.T) {
	f := NewFrame(RotRPY(0.1, 0.2, 0.3), r3.Vec{X: 1, Y: 2, Z: 3})
	g := NewFrame(RotAxisAngle(r3.Vec{X: 1}, -0.8), r3.Vec{X: -0.5, Z: 0.25})

	p := r3.Vec{X: 0.7, Y: -0.1, Z: 1.1}
	vecNear(t, f.Mul(g).Apply(p), f.Apply(g.Apply(p)), 1e-9, "composition")

	id := f.Mul(f.Inverse())
	vecNear(t, id.Apply(p), p, 1e-9, "inverse composes to identity")
}

func TestInverseTwist(t *testing.T) {
	// A pure rotation about the parent origin, viewed from a child frame
	// offset along x, has a linear velocity at the child origin.
	f := NewFrame(RotIdentity(), r3.Vec{X: 2})
	tw := Twist{Rot: r3.Vec{Z: 1}}

	got := f.InverseTwist(tw)
	vecNear(t, got.Rot, r3.Vec{Z: 1}, tol, "angular part")
	vecNear(t, got.Vel, r3.Vec{Y: 2}, tol, "linear part at offset point")
}

func TestTransformWrench(t *testing.T) {
	// A force at a child frame offset along x produces a moment about the
	// parent origin.
	f := NewFrame(RotIdentity(), r3.Vec{X: 2})
	w := Wrench{Force: r3.Vec{Z: 3}}

	got := f.TransformWrench(w)
	vecNear(t, got.Force, r3.Vec{Z: 3}, tol, "force")
	vecNear(t, got.Torque, r3.Vec{Y: -6}, tol, "moment arm")

	// RotateWrench must ignore the translation entirely.
	free := f.RotateWrench(w)
	vecNear(t, free.Torque, r3.Vec{}, tol, "free-vector rotation has no moment")
}

func TestTwistCross(t *testing.T) {
	a := Twist{Vel: r3.Vec{X: 1}, Rot: r3.Vec{Z: 2}}
	b := Twist{Vel: r3.Vec{Y: 3}, Rot: r3.Vec{X: 4}}

	got := a.Cross(b)
	vecNear(t, got.Rot, r3.Cross(a.Rot, b.Rot), tol, "angular")
	vecNear(t, got.Vel, r3.Add(r3.Cross(a.Rot, b.Vel), r3.Cross(a.Vel, b.Rot)), tol, "linear")
}

func TestInertiaPointMass(t *testing.T) {
	// Point mass m at (c,0,0): a unit angular acceleration about z needs
	// torque m*c^2 about z and a tangential force m*c along y.
	m, c := 2.0, 0.5
	in := NewInertia(m, r3.Vec{X: c}, 0, 0, 0, 0, 0, 0)

	w := in.MulTwist(Twist{Rot: r3.Vec{Z: 1}})
	vecNear(t, w.Torque, r3.Vec{Z: m * c * c}, tol, "parallel axis torque")
	vecNear(t, w.Force, r3.Vec{Y: m * c}, tol, "tangential force")

	// Linear acceleration along z: plain F = m*a plus the moment of that
	// force about the origin.
	w = in.MulTwist(Twist{Vel: r3.Vec{Z: 1}})
	vecNear(t, w.Force, r3.Vec{Z: m}, tol, "linear force")
	vecNear(t, w.Torque, r3.Vec{Y: -m * c}, tol, "offset moment")
}

func TestInertiaRotatedTensor(t *testing.T) {
	// Tensor diag(1,2,3) given in an inertial frame yawed a quarter turn:
	// the x and y moments swap in the segment frame.
	in := NewInertiaRotated(1, r3.Vec{}, RotRPY(0, 0, math.Pi/2), 1, 2, 3, 0, 0, 0)

	want := [3]float64{2, 1, 3}
	for i := 0; i < 3; i++ {
		if math.Abs(in.I[i][i]-want[i]) > tol {
			t.Errorf("I[%d][%d] = %g, want %g", i, i, in.I[i][i], want[i])
		}
		for j := i + 1; j < 3; j++ {
			if math.Abs(in.I[i][j]) > tol {
				t.Errorf("I[%d][%d] = %g, want 0", i, j, in.I[i][j])
			}
		}
	}

	// Identity rotation must reproduce NewInertia exactly, shift included.
	com := r3.Vec{X: 0.2, Y: -0.1, Z: 0.3}
	a := NewInertia(2, com, 1, 2, 3, 0.1, 0.2, 0.3)
	b := NewInertiaRotated(2, com, RotRPY(0, 0, 0), 1, 2, 3, 0.1, 0.2, 0.3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.I[i][j]-b.I[i][j]) > tol {
				t.Errorf("identity rotation I[%d][%d]: %g vs %g", i, j, a.I[i][j], b.I[i][j])
			}
		}
	}
}

func TestDot(t *testing.T) {
	s := Twist{Rot: r3.Vec{Y: 1}}
	w := Wrench{Force: r3.Vec{X: 5}, Torque: r3.Vec{Y: -3, Z: 9}}
	if got := Dot(s, w); math.Abs(got-(-3)) > tol {
		t.Errorf("axis projection: got %f, want -3", got)
	}
}
