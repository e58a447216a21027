package dynsolver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kvetner/armdyn/internal/rstate"
	"github.com/kvetner/armdyn/internal/spatial"
)

// tipWrench builds the wrench a tip force of the given z-magnitude applies
// at the tip segment, re-expressed for the engine's tip-local frame. The
// force starts as (0, 0, fz) and is rotated by the rotational part of
// tip^-1 * base; the translational offset between the frames does not
// enter, the wrench acts at the tip segment itself.
func (c *core) tipWrench(q []float64, fz float64) (spatial.Wrench, error) {
	st := rstate.New(c.model, c.tree)
	if err := st.SetGroupPositions(c.group, q); err != nil {
		return spatial.Wrench{}, err
	}
	baseFrame, err := st.FrameTransform(c.base)
	if err != nil {
		return spatial.Wrench{}, err
	}
	tipFrame, err := st.FrameTransform(c.tip)
	if err != nil {
		return spatial.Wrench{}, err
	}
	transform := tipFrame.Inverse().Mul(baseFrame)
	return transform.RotateWrench(spatial.Wrench{Force: r3.Vec{Z: fz}}), nil
}

// MaxPayload returns the maximum mass the chain can hold at its tip in the
// given configuration before some joint exceeds its effort limit, along
// with the index of that binding joint.
//
// Inverse dynamics is affine in the tip wrench at a fixed configuration,
// so two solves pin the whole line: the gravity-only torques and the
// torques under a unit tip force. Each joint's capacity is the larger of
// the two bounds toward +limit and -limit; the chain capacity is the
// smallest joint capacity, converted from force to mass by the gravity
// norm. If gravity alone already saturates a joint, the payload is 0.0 and
// that joint is reported immediately.
func (s *Solver) MaxPayload(q []float64) (float64, int, error) {
	if s.core == nil {
		return 0, 0, ErrNotInitialized
	}
	c := s.core
	nj := c.chain.JointCount()
	if len(q) != nj {
		return 0, 0, fmt.Errorf("%w: angles length %d, want %d", ErrDimension, len(q), nj)
	}

	vel := make([]float64, nj)
	acc := make([]float64, nj)
	wrenches := make([]spatial.Wrench, c.chain.SegmentCount())

	zeroTorques, err := s.Torques(q, vel, acc, wrenches)
	if err != nil {
		return 0, 0, err
	}

	for i := 0; i < nj; i++ {
		if math.Abs(zeroTorques[i]) >= c.maxTorques[i] {
			return 0, i, nil
		}
	}

	unit, err := c.tipWrench(q, 1.0)
	if err != nil {
		return 0, 0, fmt.Errorf("dynsolver: tip wrench: %w", err)
	}
	wrenches[len(wrenches)-1] = unit

	unitTorques, err := s.Torques(q, vel, acc, wrenches)
	if err != nil {
		return 0, 0, err
	}

	minPayload := math.MaxFloat64
	binding := 0
	for i := 0; i < nj; i++ {
		slope := unitTorques[i] - zeroTorques[i]
		payload := math.Max(
			(c.maxTorques[i]-zeroTorques[i])/slope,
			(-c.maxTorques[i]-zeroTorques[i])/slope,
		)
		if payload < minPayload {
			minPayload = payload
			binding = i
		}
	}
	return minPayload / c.gravNorm, binding, nil
}

// PayloadTorques returns the joint torques required to hold a payload of
// the given mass at the tip in the given configuration, gravity load on
// the links included.
func (s *Solver) PayloadTorques(q []float64, payload float64) ([]float64, error) {
	if s.core == nil {
		return nil, ErrNotInitialized
	}
	c := s.core
	nj := c.chain.JointCount()
	if len(q) != nj {
		return nil, fmt.Errorf("%w: angles length %d, want %d", ErrDimension, len(q), nj)
	}

	w, err := c.tipWrench(q, payload*c.gravNorm)
	if err != nil {
		return nil, fmt.Errorf("dynsolver: tip wrench: %w", err)
	}

	vel := make([]float64, nj)
	acc := make([]float64, nj)
	wrenches := make([]spatial.Wrench, c.chain.SegmentCount())
	wrenches[len(wrenches)-1] = w

	return s.Torques(q, vel, acc, wrenches)
}
