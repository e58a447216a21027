package dynsolver

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kvetner/armdyn/internal/chain"
	"github.com/kvetner/armdyn/internal/model"
	"github.com/kvetner/armdyn/internal/rne"
	"github.com/kvetner/armdyn/internal/spatial"
)

// Engine is the chain dynamics capability the solver funnels every query
// through: recursive inverse dynamics over the bound chain and gravity
// vector. Swappable so tests can substitute the recursion.
type Engine interface {
	Solve(q, qdot, qdotdot []float64, ext []spatial.Wrench) ([]float64, error)
}

// core is the valid variant of a solver: everything derived at
// construction. A Solver either carries a complete core or none at all;
// there is no partially constructed state.
type core struct {
	model      *model.Model
	group      *model.Group
	tree       *chain.Tree
	chain      *chain.Chain
	engine     Engine
	base       string
	tip        string
	maxTorques []float64
	gravity    r3.Vec
	gravNorm   float64
}

// Solver computes joint torques and payload capacity for one joint group
// of a robot model. Construct with New; a solver whose group fails
// validation is permanently inert and answers every query with
// ErrNotInitialized.
//
// A constructed solver has no mutable state: all queries, including the
// payload ones, are safe to run concurrently.
type Solver struct {
	core *core
	err  error
}

// New builds a solver for the named group under the given gravity vector
// (direction and magnitude together, e.g. {0, 0, -9.81}). Construction
// never returns an error: structural problems with the group produce an
// inert solver whose cause is available on Err.
func New(m *model.Model, groupName string, gravity r3.Vec) *Solver {
	s := &Solver{}
	c, err := buildCore(m, groupName, gravity)
	if err != nil {
		s.err = err
		return s
	}
	s.core = c
	return s
}

func buildCore(m *model.Model, groupName string, gravity r3.Vec) (*core, error) {
	g := m.Group(groupName)
	if g == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, groupName)
	}
	if err := chain.ValidateGroup(m, g); err != nil {
		return nil, fmt.Errorf("group %q: %w", groupName, err)
	}

	base, tip := chain.GroupEnds(m, g)

	tree, err := chain.BuildTree(m)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", groupName, err)
	}
	ch, err := tree.Chain(base, tip)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", groupName, err)
	}

	// The movable joints of the extracted chain must be exactly the
	// movable joints of the group; extra joints on the path mean the
	// group does not actually describe this chain.
	movable := 0
	for _, j := range m.GroupJoints(g) {
		if j.Movable() {
			movable++
		}
	}
	if ch.JointCount() != movable {
		return nil, fmt.Errorf("group %q: %w: chain has %d joints, group has %d",
			groupName, chain.ErrNotSerial, ch.JointCount(), movable)
	}

	limits := make([]float64, 0, movable)
	for _, j := range m.GroupJoints(g) {
		if j.Movable() {
			limits = append(limits, j.Effort())
		}
	}

	return &core{
		model:      m,
		group:      g,
		tree:       tree,
		chain:      ch,
		engine:     rne.NewSolver(ch, gravity),
		base:       base,
		tip:        tip,
		maxTorques: limits,
		gravity:    gravity,
		gravNorm:   r3.Norm(gravity),
	}, nil
}

// Valid reports whether construction succeeded.
func (s *Solver) Valid() bool {
	return s.core != nil
}

// Err returns the construction failure, or nil for a valid solver.
func (s *Solver) Err() error {
	return s.err
}

// SetEngine replaces the inverse-dynamics engine on a valid solver.
func (s *Solver) SetEngine(e Engine) {
	if s.core != nil {
		s.core.engine = e
	}
}

// JointCount returns the number of movable joints, or 0 when invalid.
func (s *Solver) JointCount() int {
	if s.core == nil {
		return 0
	}
	return s.core.chain.JointCount()
}

// SegmentCount returns the number of chain segments, or 0 when invalid.
func (s *Solver) SegmentCount() int {
	if s.core == nil {
		return 0
	}
	return s.core.chain.SegmentCount()
}

// BaseLink returns the chain's base link name, or "" when invalid.
func (s *Solver) BaseLink() string {
	if s.core == nil {
		return ""
	}
	return s.core.base
}

// TipLink returns the chain's tip link name, or "" when invalid.
func (s *Solver) TipLink() string {
	if s.core == nil {
		return ""
	}
	return s.core.tip
}

// Group returns the name of the joint group the solver was built for,
// or "" when invalid.
func (s *Solver) Group() string {
	if s.core == nil {
		return ""
	}
	return s.core.group.Name
}

// JointNames returns the movable joint names in chain order, or nil.
func (s *Solver) JointNames() []string {
	if s.core == nil {
		return nil
	}
	return s.core.chain.JointNames()
}

// MaxTorques returns a copy of the per-joint effort limits, parallel to
// JointNames. An invalid solver returns nil.
func (s *Solver) MaxTorques() []float64 {
	if s.core == nil {
		return nil
	}
	out := make([]float64, len(s.core.maxTorques))
	copy(out, s.core.maxTorques)
	return out
}

// GravityNorm returns the magnitude of the gravity vector, or 0.
func (s *Solver) GravityNorm() float64 {
	if s.core == nil {
		return 0
	}
	return s.core.gravNorm
}

// Torques computes the joint torques required to realize the motion
// (q, qdot, qdotdot) under the external segment wrenches. All four inputs
// are length-checked against the chain before any numeric work; the result
// slice is only produced by a fully successful solve.
func (s *Solver) Torques(q, qdot, qdotdot []float64, wrenches []spatial.Wrench) ([]float64, error) {
	if s.core == nil {
		return nil, ErrNotInitialized
	}
	nj := s.core.chain.JointCount()
	ns := s.core.chain.SegmentCount()
	switch {
	case len(q) != nj:
		return nil, fmt.Errorf("%w: angles length %d, want %d", ErrDimension, len(q), nj)
	case len(qdot) != nj:
		return nil, fmt.Errorf("%w: velocities length %d, want %d", ErrDimension, len(qdot), nj)
	case len(qdotdot) != nj:
		return nil, fmt.Errorf("%w: accelerations length %d, want %d", ErrDimension, len(qdotdot), nj)
	case len(wrenches) != ns:
		return nil, fmt.Errorf("%w: wrenches length %d, want %d", ErrDimension, len(wrenches), ns)
	}

	torques, err := s.core.engine.Solve(q, qdot, qdotdot, wrenches)
	if err != nil {
		return nil, fmt.Errorf("dynsolver: inverse dynamics: %w", err)
	}
	return torques, nil
}
