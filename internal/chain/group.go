package chain

import (
	"fmt"

	"github.com/kvetner/armdyn/internal/model"
)

// ValidateGroup checks that a joint group describes a usable serial chain.
// Conditions are checked in a fixed order and the first violation wins:
//
//  1. every joint exists and the group is non-empty,
//  2. the joints form a single unbranched path in declaration order
//     (each joint's child link is the next joint's parent link),
//  3. no joint is a mimic joint,
//  4. the root joint has a parent link.
func ValidateGroup(m *model.Model, g *model.Group) error {
	if len(g.Joints) == 0 {
		return fmt.Errorf("%w: group %q is empty", ErrNotSerial, g.Name)
	}
	joints := make([]*model.Joint, len(g.Joints))
	for i, name := range g.Joints {
		j := m.Joint(name)
		if j == nil {
			return fmt.Errorf("%w: %q in group %q", ErrUnknownJoint, name, g.Name)
		}
		joints[i] = j
	}

	for i := 1; i < len(joints); i++ {
		if joints[i].Parent != joints[i-1].Child {
			return fmt.Errorf("%w: group %q breaks between %q and %q",
				ErrNotSerial, g.Name, joints[i-1].Name, joints[i].Name)
		}
	}

	for _, j := range joints {
		if j.Mimic != nil {
			return fmt.Errorf("%w: %q in group %q mimics %q",
				ErrMimicJoint, j.Name, g.Name, j.Mimic.Joint)
		}
	}

	if joints[0].Parent == "" {
		return fmt.Errorf("%w: group %q root joint %q", ErrNoParentLink, g.Name, joints[0].Name)
	}
	return nil
}

// GroupEnds returns the base link (parent of the root joint) and tip link
// (child of the last joint) of a validated group.
func GroupEnds(m *model.Model, g *model.Group) (base, tip string) {
	joints := m.GroupJoints(g)
	return joints[0].Parent, joints[len(joints)-1].Child
}
