package rne

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kvetner/armdyn/internal/chain"
	"github.com/kvetner/armdyn/internal/spatial"
)

// ErrDimension indicates an input slice that does not match the chain's
// joint or segment count.
var ErrDimension = errors.New("rne: input dimension mismatch")

// Solver computes inverse dynamics for a serial chain by the recursive
// Newton-Euler method. The gravity vector is fixed at construction; the
// solver itself is stateless across calls and safe for concurrent use.
type Solver struct {
	chain   *chain.Chain
	gravity r3.Vec
}

// NewSolver binds a solver to a chain and a gravity vector (direction and
// magnitude, e.g. {0, 0, -9.81}).
func NewSolver(c *chain.Chain, gravity r3.Vec) *Solver {
	return &Solver{chain: c, gravity: gravity}
}

// Solve returns the joint torques realizing the motion (q, qdot, qdotdot)
// against gravity and the external wrenches ext, one wrench per segment,
// each expressed in that segment's local frame.
//
// The recursion runs two sweeps: an outward sweep propagating velocities
// and accelerations from the base (seeded with -gravity, which folds
// gravitational load into the same pass), and an inward sweep accumulating
// the wrenches each segment must transmit, projected onto the joint axes.
func (s *Solver) Solve(q, qdot, qdotdot []float64, ext []spatial.Wrench) ([]float64, error) {
	segs := s.chain.Segments()
	nj := s.chain.JointCount()
	ns := s.chain.SegmentCount()

	switch {
	case len(q) != nj:
		return nil, fmt.Errorf("%w: %d angles, chain has %d joints", ErrDimension, len(q), nj)
	case len(qdot) != nj:
		return nil, fmt.Errorf("%w: %d velocities, chain has %d joints", ErrDimension, len(qdot), nj)
	case len(qdotdot) != nj:
		return nil, fmt.Errorf("%w: %d accelerations, chain has %d joints", ErrDimension, len(qdotdot), nj)
	case len(ext) != ns:
		return nil, fmt.Errorf("%w: %d wrenches, chain has %d segments", ErrDimension, len(ext), ns)
	}

	pose := make([]spatial.Frame, ns)
	axis := make([]spatial.Twist, ns)
	vel := make([]spatial.Twist, ns)
	acc := make([]spatial.Twist, ns)
	force := make([]spatial.Wrench, ns)

	// The base "accelerates" upward at -g; every segment then feels
	// gravity through the acceleration recursion.
	accBase := spatial.Twist{Vel: r3.Scale(-1, s.gravity)}

	j := 0
	for i := range segs {
		seg := &segs[i]
		var qi, qdi, qddi float64
		if seg.Movable() {
			qi, qdi, qddi = q[j], qdot[j], qdotdot[j]
			j++
		}

		pose[i] = seg.Pose(qi)
		axis[i] = seg.UnitTwist()
		vj := axis[i].Scale(qdi)
		aj := axis[i].Scale(qddi)

		var vPrev, aPrev spatial.Twist
		if i == 0 {
			aPrev = accBase
		} else {
			vPrev = vel[i-1]
			aPrev = acc[i-1]
		}
		vel[i] = pose[i].InverseTwist(vPrev).Add(vj)
		acc[i] = pose[i].InverseTwist(aPrev).Add(aj).Add(vel[i].Cross(vj))

		momentum := seg.Inertia.MulTwist(vel[i])
		force[i] = seg.Inertia.MulTwist(acc[i]).
			Add(vel[i].CrossWrench(momentum)).
			Sub(ext[i])
	}

	torques := make([]float64, nj)
	j = nj
	for i := ns - 1; i >= 0; i-- {
		if segs[i].Movable() {
			j--
			torques[j] = spatial.Dot(axis[i], force[i])
		}
		if i > 0 {
			force[i-1] = force[i-1].Add(pose[i].TransformWrench(force[i]))
		}
	}
	return torques, nil
}
