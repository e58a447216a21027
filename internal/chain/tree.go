package chain

import (
	"fmt"

	"github.com/kvetner/armdyn/internal/model"
)

// Tree is the link connectivity of a robot model: every link except the
// root has exactly one parent joint.
type Tree struct {
	model  *model.Model
	root   string
	parent map[string]*model.Joint
}

// BuildTree derives the link tree from a model. It fails if a link has two
// parent joints, if no root exists, or if the links form a forest. A joint
// with an empty parent link roots its child (the child still counts as a
// tree root; such joints carry no adjacency).
func BuildTree(m *model.Model) (*Tree, error) {
	parent := make(map[string]*model.Joint, len(m.Joints))
	for _, j := range m.Joints {
		if j.Parent == "" {
			continue
		}
		if prev, ok := parent[j.Child]; ok {
			return nil, fmt.Errorf("%w: link %q (joints %q, %q)", ErrLinkConflict, j.Child, prev.Name, j.Name)
		}
		parent[j.Child] = j
	}

	var roots []string
	for _, l := range m.Links {
		if _, ok := parent[l.Name]; !ok {
			roots = append(roots, l.Name)
		}
	}
	switch {
	case len(roots) == 0:
		return nil, ErrNoRoot
	case len(roots) > 1:
		return nil, fmt.Errorf("%w: %v", ErrMultipleRoots, roots)
	}

	return &Tree{model: m, root: roots[0], parent: parent}, nil
}

// Root returns the root link name.
func (t *Tree) Root() string {
	return t.root
}

// ParentJoint returns the joint above a link, or nil for the root.
func (t *Tree) ParentJoint(link string) *model.Joint {
	return t.parent[link]
}

// pathUp returns the joints from tip up to (exclusive) the stop link, in
// tip-to-stop order, or an error if stop is not an ancestor of tip.
func (t *Tree) pathUp(tip, stop string) ([]*model.Joint, error) {
	if t.model.Link(tip) == nil {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownLink, tip)
	}
	var joints []*model.Joint
	cur := tip
	for cur != stop {
		j, ok := t.parent[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an ancestor of %q", ErrNoChain, stop, tip)
		}
		joints = append(joints, j)
		cur = j.Parent
	}
	return joints, nil
}

// Chain extracts the serial chain from base to tip. The base must be an
// ancestor of the tip in the link tree.
func (t *Tree) Chain(base, tip string) (*Chain, error) {
	if t.model.Link(base) == nil {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownLink, base)
	}
	up, err := t.pathUp(tip, base)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(up))
	joints := 0
	for i := len(up) - 1; i >= 0; i-- {
		j := up[i]
		seg := Segment{
			Name:    j.Child,
			Joint:   j,
			Inertia: t.model.Link(j.Child).Inertial.Inertia(),
		}
		if j.Movable() {
			joints++
		}
		segments = append(segments, seg)
	}
	return &Chain{segments: segments, joints: joints, base: base, tip: tip}, nil
}
