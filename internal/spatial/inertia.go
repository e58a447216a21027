package spatial

import "gonum.org/v1/gonum/spatial/r3"

// Mat3 is a fixed-size 3x3 matrix, row-major. The only operation the
// dynamics needs from the inertia tensor is a matrix-vector product, so a
// value type avoids per-solve heap traffic a general matrix type would cost.
type Mat3 [3][3]float64

func (m Mat3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Mat3) Add(o Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + o[i][j]
		}
	}
	return out
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return out
}

func (m Mat3) T() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// RotMat3 returns the matrix form of a rotation; the columns are the
// rotated basis vectors.
func RotMat3(r r3.Rotation) Mat3 {
	x := r.Rotate(r3.Vec{X: 1})
	y := r.Rotate(r3.Vec{Y: 1})
	z := r.Rotate(r3.Vec{Z: 1})
	return Mat3{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
}

// Inertia is the rigid-body inertia of a segment, referenced to the segment
// frame origin: mass, first moment of mass H = mass * com, and the
// rotational inertia tensor I about the origin.
type Inertia struct {
	Mass float64
	H    r3.Vec
	I    Mat3
}

// NewInertia builds a segment inertia from a mass, the center of mass in
// the segment frame, and the rotational inertia tensor about the center of
// mass (six independent entries). The tensor is shifted to the segment
// origin by the parallel axis theorem.
func NewInertia(mass float64, com r3.Vec, ixx, iyy, izz, ixy, ixz, iyz float64) Inertia {
	return newInertia(mass, com, comTensor(ixx, iyy, izz, ixy, ixz, iyz))
}

// NewInertiaRotated is NewInertia for a tensor given in a rotated inertial
// frame: it is re-expressed in the segment frame as R*Ic*R^T before the
// parallel axis shift.
func NewInertiaRotated(mass float64, com r3.Vec, rot r3.Rotation, ixx, iyy, izz, ixy, ixz, iyz float64) Inertia {
	rm := RotMat3(rot)
	ic := rm.Mul(comTensor(ixx, iyy, izz, ixy, ixz, iyz)).Mul(rm.T())
	return newInertia(mass, com, ic)
}

func comTensor(ixx, iyy, izz, ixy, ixz, iyz float64) Mat3 {
	return Mat3{
		{ixx, ixy, ixz},
		{ixy, iyy, iyz},
		{ixz, iyz, izz},
	}
}

func newInertia(mass float64, com r3.Vec, ic Mat3) Inertia {
	c2 := r3.Dot(com, com)
	shift := Mat3{
		{mass * (c2 - com.X*com.X), mass * (-com.X * com.Y), mass * (-com.X * com.Z)},
		{mass * (-com.Y * com.X), mass * (c2 - com.Y*com.Y), mass * (-com.Y * com.Z)},
		{mass * (-com.Z * com.X), mass * (-com.Z * com.Y), mass * (c2 - com.Z*com.Z)},
	}
	return Inertia{
		Mass: mass,
		H:    r3.Scale(mass, com),
		I:    ic.Add(shift),
	}
}

// MulTwist maps a spatial acceleration (or velocity) to the wrench (or
// momentum) it induces on the body:
//
//	force  = m*vel + rot x H
//	torque = I*rot + H x vel
func (in Inertia) MulTwist(t Twist) Wrench {
	return Wrench{
		Force:  r3.Add(r3.Scale(in.Mass, t.Vel), r3.Cross(t.Rot, in.H)),
		Torque: r3.Add(in.I.MulVec(t.Rot), r3.Cross(in.H, t.Vel)),
	}
}
