package rstate

import (
	"errors"
	"fmt"

	"github.com/kvetner/armdyn/internal/chain"
	"github.com/kvetner/armdyn/internal/model"
	"github.com/kvetner/armdyn/internal/spatial"
)

// ErrDimension indicates a position slice that does not match a group's
// movable joint count.
var ErrDimension = errors.New("rstate: position dimension mismatch")

// State holds joint positions for a whole robot and answers frame-transform
// queries against them. Unset joints sit at zero. A State is cheap to
// construct; the dynamics solver builds one per payload query instead of
// sharing a mutable instance across calls.
type State struct {
	model *model.Model
	tree  *chain.Tree
	pos   map[string]float64
}

// New returns a zero-configuration state over a model and its link tree.
func New(m *model.Model, t *chain.Tree) *State {
	return &State{model: m, tree: t, pos: make(map[string]float64)}
}

// SetPosition sets a single joint position.
func (s *State) SetPosition(joint string, q float64) {
	s.pos[joint] = q
}

// SetPositions sets several joint positions at once.
func (s *State) SetPositions(pos map[string]float64) {
	for j, q := range pos {
		s.pos[j] = q
	}
}

// SetGroupPositions assigns positions to a group's movable joints in group
// order. Fixed joints in the group take no value.
func (s *State) SetGroupPositions(g *model.Group, q []float64) error {
	movable := make([]*model.Joint, 0, len(g.Joints))
	for _, j := range s.model.GroupJoints(g) {
		if j.Movable() {
			movable = append(movable, j)
		}
	}
	if len(q) != len(movable) {
		return fmt.Errorf("%w: group %q has %d movable joints, got %d positions",
			ErrDimension, g.Name, len(movable), len(q))
	}
	for i, j := range movable {
		s.pos[j.Name] = q[i]
	}
	return nil
}

// Position returns a joint's current position, resolving mimic coupling.
func (s *State) Position(j *model.Joint) float64 {
	if j.Mimic != nil {
		src := s.model.Joint(j.Mimic.Joint)
		return j.Mimic.Multiplier*s.Position(src) + j.Mimic.Offset
	}
	return s.pos[j.Name]
}

// FrameTransform returns the pose of a link in the tree's root frame at
// the current configuration.
func (s *State) FrameTransform(link string) (spatial.Frame, error) {
	if s.model.Link(link) == nil {
		return spatial.Frame{}, fmt.Errorf("%w: %q", model.ErrUnknownLink, link)
	}

	// Collect the joints from the link up to the root, then fold the
	// transforms root-down.
	var joints []*model.Joint
	for cur := link; ; {
		j := s.tree.ParentJoint(cur)
		if j == nil {
			break
		}
		joints = append(joints, j)
		cur = j.Parent
	}

	f := spatial.FrameIdentity()
	for i := len(joints) - 1; i >= 0; i-- {
		j := joints[i]
		f = f.Mul(j.Transform(s.Position(j)))
	}
	return f, nil
}
