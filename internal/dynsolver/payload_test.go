package dynsolver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvetner/armdyn/internal/model"
	"github.com/kvetner/armdyn/internal/spatial"
)

func TestMaxPayloadPlanarZeroConfig(t *testing.T) {
	s := newArmSolver(t)
	q := []float64{0, 0, 0}

	mass, binding, err := s.MaxPayload(q)
	require.NoError(t, err)

	// Horizontal arm: joint 1 carries the longest lever and binds first.
	// Static torque at joint i is -g*m*sum(COM arms); a unit tip force
	// adds the tip distance. Capacity in force units at the shoulder is
	// (limit + g*0.5*(0.15+0.45+0.75)) / 0.9.
	wantForce := (10.0 + g*0.5*(0.15+0.45+0.75)) / 0.9
	assert.Equal(t, 0, binding)
	assert.InDelta(t, wantForce/g, mass, 1e-9)
}

func TestMaxPayloadSaturatedByGravity(t *testing.T) {
	// j1 gravity-only torque at the horizontal is ~6.62 N*m; a 5 N*m
	// limit is already exceeded with no payload at all.
	s := New(planarArm(t, 5.0), "arm", gravity)
	require.True(t, s.Valid(), "construction: %v", s.Err())

	mass, binding, err := s.MaxPayload([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, mass)
	assert.Equal(t, 0, binding)
}

func TestMaxPayloadZeroLimitJoint(t *testing.T) {
	// A joint with no declared effort limit gets limit 0.0, which is
	// degenerate but valid: it pins the payload estimate to zero.
	m := &model.Model{
		Links: []*model.Link{
			{Name: "base"},
			{Name: "link", Inertial: &model.Inertial{Mass: 0.1, Origin: &model.Origin{XYZ: []float64{0.1, 0, 0}}}},
		},
		Joints: []*model.Joint{
			{Name: "j", Type: model.Revolute, Parent: "base", Child: "link", Axis: []float64{0, 1, 0}},
		},
		Groups: []*model.Group{{Name: "g", Joints: []string{"j"}}},
	}
	require.NoError(t, m.Init())

	s := New(m, "g", gravity)
	require.True(t, s.Valid(), "construction: %v", s.Err())
	assert.Equal(t, []float64{0}, s.MaxTorques())

	mass, binding, err := s.MaxPayload([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, mass)
	assert.Equal(t, 0, binding)
}

func TestMaxPayloadDimensionCheck(t *testing.T) {
	s := newArmSolver(t)

	_, _, err := s.MaxPayload([]float64{0, 0})
	assert.ErrorIs(t, err, ErrDimension)

	_, err = s.PayloadTorques([]float64{0, 0, 0, 0}, 1)
	assert.ErrorIs(t, err, ErrDimension)
}

// The payload bound and the payload torques must agree: holding exactly
// the reported maximum drives the binding joint to its limit and leaves
// every other joint strictly inside its own.
func TestMaxPayloadConsistentWithPayloadTorques(t *testing.T) {
	s := newArmSolver(t)
	limits := s.MaxTorques()

	configs := [][]float64{
		{0, 0, 0},
		{0.3, -0.4, 0.2},
		{-0.9, 0.6, 0.5},
	}
	for _, q := range configs {
		mass, binding, err := s.MaxPayload(q)
		require.NoError(t, err)
		require.Greater(t, mass, 0.0, "config %v should carry some payload", q)

		tau, err := s.PayloadTorques(q, mass)
		require.NoError(t, err)

		assert.InDelta(t, limits[binding], math.Abs(tau[binding]), 1e-6,
			"config %v: binding joint %d should sit at its limit", q, binding)
		for i := range tau {
			if i == binding {
				continue
			}
			assert.Less(t, math.Abs(tau[i]), limits[i],
				"config %v: joint %d should stay inside its limit", q, i)
		}
	}
}

func TestPayloadTorquesIncludeGravityLoad(t *testing.T) {
	s := newArmSolver(t)
	q := []float64{0, 0, 0}
	zero := []float64{0, 0, 0}

	// Holding zero mass is exactly the gravity-only solve.
	tau, err := s.PayloadTorques(q, 0)
	require.NoError(t, err)
	plain, err := s.Torques(q, zero, zero, make([]spatial.Wrench, 4))
	require.NoError(t, err)
	assert.InDeltaSlice(t, plain, tau, 1e-12)
}

func TestPayloadTorquesScaleWithMass(t *testing.T) {
	s := newArmSolver(t)
	q := []float64{0.1, 0.2, -0.3}

	tau0, err := s.PayloadTorques(q, 0)
	require.NoError(t, err)
	tau1, err := s.PayloadTorques(q, 1)
	require.NoError(t, err)
	tau2, err := s.PayloadTorques(q, 2)
	require.NoError(t, err)

	for i := range tau0 {
		assert.InDelta(t, tau1[i]-tau0[i], tau2[i]-tau1[i], 1e-9,
			"joint %d torque must be affine in mass", i)
	}
}

func TestMaxPayloadDownhillConfiguration(t *testing.T) {
	s := newArmSolver(t)

	// Arm hanging straight down: gravity torques vanish and the tip
	// force has no lever arm about any axis, so per-joint capacities
	// blow up; the reported binding joint is still the most constrained
	// one and the mass stays finite or +Inf, never NaN.
	mass, _, err := s.MaxPayload([]float64{math.Pi / 2, 0, 0})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(mass), "payload must not be NaN")
}
