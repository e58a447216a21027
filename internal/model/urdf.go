package model

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// URDF wire format. Attribute vectors are space-delimited "x y z" strings.

type urdfRobot struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []urdfLink  `xml:"link"`
	Joints  []urdfJoint `xml:"joint"`
}

type urdfLink struct {
	Name     string        `xml:"name,attr"`
	Inertial *urdfInertial `xml:"inertial"`
}

type urdfInertial struct {
	Origin *urdfOrigin `xml:"origin"`
	Mass   struct {
		Value float64 `xml:"value,attr"`
	} `xml:"mass"`
	Inertia *struct {
		IXX float64 `xml:"ixx,attr"`
		IYY float64 `xml:"iyy,attr"`
		IZZ float64 `xml:"izz,attr"`
		IXY float64 `xml:"ixy,attr"`
		IXZ float64 `xml:"ixz,attr"`
		IYZ float64 `xml:"iyz,attr"`
	} `xml:"inertia"`
}

type urdfOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type urdfJoint struct {
	Name   string `xml:"name,attr"`
	Type   string `xml:"type,attr"`
	Parent struct {
		Link string `xml:"link,attr"`
	} `xml:"parent"`
	Child struct {
		Link string `xml:"link,attr"`
	} `xml:"child"`
	Origin *urdfOrigin `xml:"origin"`
	Axis   *struct {
		XYZ string `xml:"xyz,attr"`
	} `xml:"axis"`
	Limit *struct {
		Lower    float64 `xml:"lower,attr"`
		Upper    float64 `xml:"upper,attr"`
		Effort   float64 `xml:"effort,attr"`
		Velocity float64 `xml:"velocity,attr"`
	} `xml:"limit"`
	Mimic *struct {
		Joint      string   `xml:"joint,attr"`
		Multiplier *float64 `xml:"multiplier,attr"`
		Offset     float64  `xml:"offset,attr"`
	} `xml:"mimic"`
}

// LoadURDF reads a URDF robot description and initializes it. URDF has no
// notion of joint groups; attach groups to the returned model before
// handing it to the solver.
func LoadURDF(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseURDF(data)
}

// ParseURDF decodes a URDF XML document and initializes it.
func ParseURDF(data []byte) (*Model, error) {
	var robot urdfRobot
	if err := xml.Unmarshal(data, &robot); err != nil {
		return nil, fmt.Errorf("model: decode urdf: %w", err)
	}

	m := &Model{Name: robot.Name}
	for _, ul := range robot.Links {
		link := &Link{Name: ul.Name}
		if ul.Inertial != nil {
			inertial := &Inertial{Mass: ul.Inertial.Mass.Value}
			if ul.Inertial.Origin != nil {
				origin, err := parseOrigin(ul.Inertial.Origin)
				if err != nil {
					return nil, fmt.Errorf("model: link %q inertial: %w", ul.Name, err)
				}
				inertial.Origin = origin
			}
			if ul.Inertial.Inertia != nil {
				inertial.IXX = ul.Inertial.Inertia.IXX
				inertial.IYY = ul.Inertial.Inertia.IYY
				inertial.IZZ = ul.Inertial.Inertia.IZZ
				inertial.IXY = ul.Inertial.Inertia.IXY
				inertial.IXZ = ul.Inertial.Inertia.IXZ
				inertial.IYZ = ul.Inertial.Inertia.IYZ
			}
			link.Inertial = inertial
		}
		m.Links = append(m.Links, link)
	}

	for _, uj := range robot.Joints {
		joint := &Joint{
			Name:   uj.Name,
			Type:   JointType(uj.Type),
			Parent: uj.Parent.Link,
			Child:  uj.Child.Link,
		}
		if uj.Origin != nil {
			origin, err := parseOrigin(uj.Origin)
			if err != nil {
				return nil, fmt.Errorf("model: joint %q: %w", uj.Name, err)
			}
			joint.Origin = origin
		}
		if uj.Axis != nil {
			axis, err := parseFloats(uj.Axis.XYZ, 3)
			if err != nil {
				return nil, fmt.Errorf("model: joint %q axis: %w", uj.Name, err)
			}
			joint.Axis = axis
		}
		if uj.Limit != nil {
			joint.Limit = &Limit{
				Lower:    uj.Limit.Lower,
				Upper:    uj.Limit.Upper,
				Effort:   uj.Limit.Effort,
				Velocity: uj.Limit.Velocity,
			}
		}
		if uj.Mimic != nil {
			mult := 1.0
			if uj.Mimic.Multiplier != nil {
				mult = *uj.Mimic.Multiplier
			}
			joint.Mimic = &Mimic{
				Joint:      uj.Mimic.Joint,
				Multiplier: mult,
				Offset:     uj.Mimic.Offset,
			}
		}
		m.Joints = append(m.Joints, joint)
	}

	if err := m.Init(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseOrigin(o *urdfOrigin) (*Origin, error) {
	out := &Origin{}
	if o.XYZ != "" {
		xyz, err := parseFloats(o.XYZ, 3)
		if err != nil {
			return nil, fmt.Errorf("origin xyz: %w", err)
		}
		out.XYZ = xyz
	}
	if o.RPY != "" {
		rpy, err := parseFloats(o.RPY, 3)
		if err != nil {
			return nil, fmt.Errorf("origin rpy: %w", err)
		}
		out.RPY = rpy
	}
	return out, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("want %d values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}
