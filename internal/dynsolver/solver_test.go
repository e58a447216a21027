package dynsolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kvetner/armdyn/internal/chain"
	"github.com/kvetner/armdyn/internal/model"
	"github.com/kvetner/armdyn/internal/spatial"
)

const g = 9.81

var gravity = r3.Vec{Z: -g}

// planarArm builds a 3R planar arm in the x-z plane (joints about +y,
// links along +x) with a fixed tool flange, plus invalid sibling groups.
// effort overrides the 10 N*m default limit on j1 when non-zero.
func planarArm(t *testing.T, effort float64) *model.Model {
	t.Helper()
	limit := func(e float64) *model.Limit { return &model.Limit{Lower: -3.1416, Upper: 3.1416, Effort: e, Velocity: 2} }
	j1Effort := 10.0
	if effort != 0 {
		j1Effort = effort
	}
	m := &model.Model{
		Name: "planar3",
		Links: []*model.Link{
			{Name: "base_link"},
			{Name: "link1", Inertial: &model.Inertial{Mass: 0.5, Origin: &model.Origin{XYZ: []float64{0.15, 0, 0}}}},
			{Name: "link2", Inertial: &model.Inertial{Mass: 0.5, Origin: &model.Origin{XYZ: []float64{0.15, 0, 0}}}},
			{Name: "link3", Inertial: &model.Inertial{Mass: 0.5, Origin: &model.Origin{XYZ: []float64{0.15, 0, 0}}}},
			{Name: "tool"},
			{Name: "branch"},
			{Name: "finger"},
		},
		Joints: []*model.Joint{
			{Name: "j1", Type: model.Revolute, Parent: "base_link", Child: "link1",
				Axis: []float64{0, 1, 0}, Limit: limit(j1Effort)},
			{Name: "j2", Type: model.Revolute, Parent: "link1", Child: "link2",
				Origin: &model.Origin{XYZ: []float64{0.3, 0, 0}}, Axis: []float64{0, 1, 0}, Limit: limit(10)},
			{Name: "j3", Type: model.Revolute, Parent: "link2", Child: "link3",
				Origin: &model.Origin{XYZ: []float64{0.3, 0, 0}}, Axis: []float64{0, 1, 0}, Limit: limit(10)},
			{Name: "tool_joint", Type: model.Fixed, Parent: "link3", Child: "tool",
				Origin: &model.Origin{XYZ: []float64{0.3, 0, 0}}},
			{Name: "j2b", Type: model.Revolute, Parent: "link1", Child: "branch",
				Axis: []float64{0, 0, 1}},
			{Name: "jm", Type: model.Revolute, Parent: "link3", Child: "finger",
				Axis: []float64{0, 0, 1}, Mimic: &model.Mimic{Joint: "j1", Multiplier: 1}},
		},
		Groups: []*model.Group{
			{Name: "arm", Joints: []string{"j1", "j2", "j3", "tool_joint"}},
			{Name: "branched", Joints: []string{"j1", "j2", "j2b"}},
			{Name: "mimicking", Joints: []string{"j1", "j2", "j3", "jm"}},
		},
	}
	require.NoError(t, m.Init())
	return m
}

func newArmSolver(t *testing.T) *Solver {
	t.Helper()
	s := New(planarArm(t, 0), "arm", gravity)
	require.True(t, s.Valid(), "construction: %v", s.Err())
	return s
}

func TestConstruction(t *testing.T) {
	s := newArmSolver(t)

	assert.Equal(t, 3, s.JointCount())
	assert.Equal(t, 4, s.SegmentCount())
	assert.Equal(t, "base_link", s.BaseLink())
	assert.Equal(t, "tool", s.TipLink())
	assert.Equal(t, []string{"j1", "j2", "j3"}, s.JointNames())
	assert.Equal(t, []float64{10, 10, 10}, s.MaxTorques())
	assert.InDelta(t, g, s.GravityNorm(), 1e-12)
}

func TestInvalidOnBranchedGroup(t *testing.T) {
	s := New(planarArm(t, 0), "branched", gravity)

	require.False(t, s.Valid())
	assert.ErrorIs(t, s.Err(), chain.ErrNotSerial)
	assertInert(t, s)
}

func TestInvalidOnMimicGroup(t *testing.T) {
	s := New(planarArm(t, 0), "mimicking", gravity)

	require.False(t, s.Valid())
	assert.ErrorIs(t, s.Err(), chain.ErrMimicJoint)
	assertInert(t, s)
}

func TestInvalidOnUnknownGroup(t *testing.T) {
	s := New(planarArm(t, 0), "no_such_group", gravity)

	require.False(t, s.Valid())
	assert.ErrorIs(t, s.Err(), ErrUnknownGroup)
	assertInert(t, s)
}

// assertInert checks the uniform failure contract of an invalid solver:
// every query fails the same way and no partial state is observable.
func assertInert(t *testing.T, s *Solver) {
	t.Helper()
	q := []float64{0, 0, 0}

	_, err := s.Torques(q, q, q, make([]spatial.Wrench, 4))
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, _, err = s.MaxPayload(q)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = s.PayloadTorques(q, 1)
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.Nil(t, s.MaxTorques())
	assert.Nil(t, s.JointNames())
	assert.Equal(t, 0, s.JointCount())
	assert.Equal(t, "", s.BaseLink())
}

func TestTorquesDeterministic(t *testing.T) {
	s := newArmSolver(t)
	q := []float64{0.2, -0.5, 0.9}
	zero := []float64{0, 0, 0}
	w := make([]spatial.Wrench, 4)

	first, err := s.Torques(q, zero, zero, w)
	require.NoError(t, err)
	second, err := s.Torques(q, zero, zero, w)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same configuration must give identical torques")
}

func TestTorquesDimensionChecks(t *testing.T) {
	s := newArmSolver(t)
	ok := []float64{0, 0, 0}
	short := []float64{0, 0}
	w := make([]spatial.Wrench, 4)

	cases := []struct {
		name       string
		q, qd, qdd []float64
		wrenches   []spatial.Wrench
	}{
		{"angles", short, ok, ok, w},
		{"velocities", ok, short, ok, w},
		{"accelerations", ok, ok, []float64{0, 0, 0, 0}, w},
		{"wrenches", ok, ok, ok, make([]spatial.Wrench, 3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			torques, err := s.Torques(tc.q, tc.qd, tc.qdd, tc.wrenches)
			assert.ErrorIs(t, err, ErrDimension)
			assert.Nil(t, torques, "no output on failure")
		})
	}
}

func TestTorquesLinearInTipWrench(t *testing.T) {
	s := newArmSolver(t)
	q := []float64{0.3, -0.7, 0.4}
	zero := []float64{0, 0, 0}

	solveWithTip := func(fz float64) []float64 {
		w := make([]spatial.Wrench, 4)
		w[3] = spatial.Wrench{Force: r3.Vec{Z: fz}}
		tau, err := s.Torques(q, zero, zero, w)
		require.NoError(t, err)
		return tau
	}

	zeroTau := solveWithTip(0)
	unitTau := solveWithTip(1)

	for _, k := range []float64{-2.5, -1, 0.5, 3, 17.25} {
		got := solveWithTip(k)
		for i := range got {
			want := zeroTau[i] + k*(unitTau[i]-zeroTau[i])
			assert.InDelta(t, want, got[i], 1e-9, "k=%v joint %d", k, i)
		}
	}
}

type failingEngine struct{}

func (failingEngine) Solve(q, qdot, qdotdot []float64, ext []spatial.Wrench) ([]float64, error) {
	return nil, errors.New("engine exploded")
}

func TestEngineFailurePropagates(t *testing.T) {
	s := newArmSolver(t)
	s.SetEngine(failingEngine{})
	q := []float64{0, 0, 0}

	_, err := s.Torques(q, q, q, make([]spatial.Wrench, 4))
	assert.ErrorContains(t, err, "engine exploded")

	_, _, err = s.MaxPayload(q)
	assert.ErrorContains(t, err, "engine exploded")

	_, err = s.PayloadTorques(q, 0.5)
	assert.ErrorContains(t, err, "engine exploded")
}
