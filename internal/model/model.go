package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kvetner/armdyn/internal/spatial"
)

// Domain errors for model validation.
var (
	ErrDuplicateName = errors.New("model: duplicate name")
	ErrUnknownLink   = errors.New("model: unknown link")
	ErrUnknownJoint  = errors.New("model: unknown joint")
	ErrUnknownGroup  = errors.New("model: unknown group")
	ErrBadJointType  = errors.New("model: unsupported joint type")
	ErrBadAxis       = errors.New("model: bad joint axis")
)

// JointType enumerates the joint kinds the solver understands. They mirror
// the URDF joint types; planar and floating joints are not serial-chain
// joints and are rejected at load time.
type JointType string

const (
	Revolute   JointType = "revolute"
	Continuous JointType = "continuous"
	Prismatic  JointType = "prismatic"
	Fixed      JointType = "fixed"
)

// Origin is a pose given as a translation and fixed-frame roll/pitch/yaw,
// both optional.
type Origin struct {
	XYZ []float64 `yaml:"xyz,flow,omitempty"`
	RPY []float64 `yaml:"rpy,flow,omitempty"`
}

// Frame converts the origin to a rigid transform. A nil origin is identity.
func (o *Origin) Frame() spatial.Frame {
	if o == nil {
		return spatial.FrameIdentity()
	}
	f := spatial.FrameIdentity()
	if len(o.XYZ) == 3 {
		f.P = r3.Vec{X: o.XYZ[0], Y: o.XYZ[1], Z: o.XYZ[2]}
	}
	if len(o.RPY) == 3 {
		f.R = spatial.RotRPY(o.RPY[0], o.RPY[1], o.RPY[2])
	}
	return f
}

// Inertial is the mass distribution of a link: mass, center of mass in the
// link frame, and the six distinct entries of the inertia tensor about the
// center of mass.
type Inertial struct {
	Mass   float64 `yaml:"mass"`
	Origin *Origin `yaml:"origin,omitempty"`
	IXX    float64 `yaml:"ixx,omitempty"`
	IYY    float64 `yaml:"iyy,omitempty"`
	IZZ    float64 `yaml:"izz,omitempty"`
	IXY    float64 `yaml:"ixy,omitempty"`
	IXZ    float64 `yaml:"ixz,omitempty"`
	IYZ    float64 `yaml:"iyz,omitempty"`
}

// Inertia converts to the solver's origin-referenced inertia. A nil
// inertial is a massless link.
func (in *Inertial) Inertia() spatial.Inertia {
	if in == nil {
		return spatial.Inertia{}
	}
	var com r3.Vec
	if in.Origin != nil && len(in.Origin.XYZ) == 3 {
		com = r3.Vec{X: in.Origin.XYZ[0], Y: in.Origin.XYZ[1], Z: in.Origin.XYZ[2]}
	}
	// A rotated inertial origin expresses the tensor in its own frame;
	// bring it back to the link frame.
	if in.Origin != nil && len(in.Origin.RPY) == 3 {
		rot := spatial.RotRPY(in.Origin.RPY[0], in.Origin.RPY[1], in.Origin.RPY[2])
		return spatial.NewInertiaRotated(in.Mass, com, rot, in.IXX, in.IYY, in.IZZ, in.IXY, in.IXZ, in.IYZ)
	}
	return spatial.NewInertia(in.Mass, com, in.IXX, in.IYY, in.IZZ, in.IXY, in.IXZ, in.IYZ)
}

type Link struct {
	Name     string    `yaml:"name"`
	Inertial *Inertial `yaml:"inertial,omitempty"`
}

// Limit carries the declared joint limits. Effort is the rated maximum
// torque (or force, for prismatic joints).
type Limit struct {
	Lower    float64 `yaml:"lower,omitempty"`
	Upper    float64 `yaml:"upper,omitempty"`
	Effort   float64 `yaml:"effort,omitempty"`
	Velocity float64 `yaml:"velocity,omitempty"`
}

// Mimic slaves a joint's position to another joint:
// pos = Multiplier*other + Offset.
type Mimic struct {
	Joint      string  `yaml:"joint"`
	Multiplier float64 `yaml:"multiplier"`
	Offset     float64 `yaml:"offset,omitempty"`
}

type Joint struct {
	Name   string    `yaml:"name"`
	Type   JointType `yaml:"type"`
	Parent string    `yaml:"parent"`
	Child  string    `yaml:"child"`
	Origin *Origin   `yaml:"origin,omitempty"`
	Axis   []float64 `yaml:"axis,flow,omitempty"`
	Limit  *Limit    `yaml:"limit,omitempty"`
	Mimic  *Mimic    `yaml:"mimic,omitempty"`
}

// Movable reports whether the joint has a degree of freedom.
func (j *Joint) Movable() bool {
	return j.Type != Fixed
}

// AxisVec returns the joint axis in the joint (child) frame as a unit
// vector, defaulting to +x as URDF does. Declared axes are normalized so
// that torque projections stay in physical units whatever magnitude the
// model file wrote.
func (j *Joint) AxisVec() r3.Vec {
	if len(j.Axis) == 3 {
		v := r3.Vec{X: j.Axis[0], Y: j.Axis[1], Z: j.Axis[2]}
		if n := r3.Norm(v); n > 0 {
			return r3.Scale(1/n, v)
		}
	}
	return r3.Vec{X: 1}
}

// Effort returns the declared effort limit, or 0 when the joint declares
// none. Zero is a valid degenerate limit, not an error.
func (j *Joint) Effort() float64 {
	if j.Limit == nil {
		return 0
	}
	return j.Limit.Effort
}

// Transform returns the pose of the child link in the parent link frame at
// joint position q: the fixed origin composed with the joint motion.
func (j *Joint) Transform(q float64) spatial.Frame {
	origin := j.Origin.Frame()
	switch j.Type {
	case Revolute, Continuous:
		return origin.Mul(spatial.NewFrame(spatial.RotAxisAngle(j.AxisVec(), q), r3.Vec{}))
	case Prismatic:
		return origin.Mul(spatial.NewFrame(spatial.RotIdentity(), r3.Scale(q, j.AxisVec())))
	default:
		return origin
	}
}

// Group is an ordered set of joints forming a named kinematic group,
// analogous to an SRDF planning group.
type Group struct {
	Name   string   `yaml:"name"`
	Joints []string `yaml:"joints,flow"`
}

// Model is a robot description: links, joints connecting them, and named
// joint groups.
type Model struct {
	Name   string   `yaml:"name"`
	Links  []*Link  `yaml:"links"`
	Joints []*Joint `yaml:"joints"`
	Groups []*Group `yaml:"groups,omitempty"`

	links  map[string]*Link
	joints map[string]*Joint
	groups map[string]*Group
}

// Init builds the lookup tables and validates referential integrity. It
// must be called once after constructing or decoding a model; the loaders
// call it for you.
func (m *Model) Init() error {
	m.links = make(map[string]*Link, len(m.Links))
	m.joints = make(map[string]*Joint, len(m.Joints))
	m.groups = make(map[string]*Group, len(m.Groups))

	for _, l := range m.Links {
		if _, ok := m.links[l.Name]; ok {
			return fmt.Errorf("%w: link %q", ErrDuplicateName, l.Name)
		}
		m.links[l.Name] = l
	}
	for _, j := range m.Joints {
		if _, ok := m.joints[j.Name]; ok {
			return fmt.Errorf("%w: joint %q", ErrDuplicateName, j.Name)
		}
		switch j.Type {
		case Revolute, Continuous, Prismatic, Fixed:
		default:
			return fmt.Errorf("%w: joint %q has type %q", ErrBadJointType, j.Name, j.Type)
		}
		if j.Movable() && len(j.Axis) != 0 {
			if len(j.Axis) != 3 {
				return fmt.Errorf("%w: joint %q axis needs 3 components, has %d", ErrBadAxis, j.Name, len(j.Axis))
			}
			if j.Axis[0] == 0 && j.Axis[1] == 0 && j.Axis[2] == 0 {
				return fmt.Errorf("%w: joint %q axis has zero length", ErrBadAxis, j.Name)
			}
		}
		if j.Parent != "" {
			if _, ok := m.links[j.Parent]; !ok {
				return fmt.Errorf("%w: joint %q parent %q", ErrUnknownLink, j.Name, j.Parent)
			}
		}
		if _, ok := m.links[j.Child]; !ok {
			return fmt.Errorf("%w: joint %q child %q", ErrUnknownLink, j.Name, j.Child)
		}
		m.joints[j.Name] = j
	}
	for _, j := range m.Joints {
		if j.Mimic != nil {
			if _, ok := m.joints[j.Mimic.Joint]; !ok {
				return fmt.Errorf("%w: joint %q mimics %q", ErrUnknownJoint, j.Name, j.Mimic.Joint)
			}
		}
	}
	for _, g := range m.Groups {
		if _, ok := m.groups[g.Name]; ok {
			return fmt.Errorf("%w: group %q", ErrDuplicateName, g.Name)
		}
		for _, jn := range g.Joints {
			if _, ok := m.joints[jn]; !ok {
				return fmt.Errorf("%w: group %q joint %q", ErrUnknownJoint, g.Name, jn)
			}
		}
		m.groups[g.Name] = g
	}
	return nil
}

// Link returns the named link, or nil.
func (m *Model) Link(name string) *Link {
	return m.links[name]
}

// Joint returns the named joint, or nil.
func (m *Model) Joint(name string) *Joint {
	return m.joints[name]
}

// Group returns the named group, or nil.
func (m *Model) Group(name string) *Group {
	return m.groups[name]
}

// ParentJoint returns the joint whose child is the given link, or nil for a
// root link.
func (m *Model) ParentJoint(link string) *Joint {
	for _, j := range m.Joints {
		if j.Child == link {
			return j
		}
	}
	return nil
}

// GroupJoints resolves a group's joints in declaration order.
func (m *Model) GroupJoints(g *Group) []*Joint {
	out := make([]*Joint, 0, len(g.Joints))
	for _, name := range g.Joints {
		out = append(out, m.joints[name])
	}
	return out
}
