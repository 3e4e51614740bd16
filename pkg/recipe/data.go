package recipe

import "github.com/chazu/graphite/pkg/geom"

// Transform positions a primitive in the recipe's local frame. Rotation
// is Euler angles in degrees applied X, Y, Z. A nil Transform means the
// primitive sits centered at the origin, unscaled.
type Transform struct {
	Translate geom.Vec3 `json:"translate"`
	Rotate    geom.Vec3 `json:"rotate,omitempty"`
	Scale     geom.Vec3 `json:"scale,omitempty"` // zero component = 1
}

// EffectiveScale returns the scale with zero components replaced by 1.
func (t *Transform) EffectiveScale() geom.Vec3 {
	s := geom.Vec3{X: 1, Y: 1, Z: 1}
	if t == nil {
		return s
	}
	if t.Scale.X != 0 {
		s.X = t.Scale.X
	}
	if t.Scale.Y != 0 {
		s.Y = t.Scale.Y
	}
	if t.Scale.Z != 0 {
		s.Z = t.Scale.Z
	}
	return s
}

// PrimParams is the interface for kind-specific primitive parameters.
// All lengths are millimetres.
type PrimParams interface {
	primParams() // marker method restricting implementations to this package
}

// BoxParams describes a rectangular solid centered at the origin.
type BoxParams struct {
	Size geom.Vec3 `json:"size"` // extents along X, Y, Z
}

func (BoxParams) primParams() {}

// CylinderParams describes a cylinder centered at the origin.
type CylinderParams struct {
	Diameter float64 `json:"diameter"`
	Height   float64 `json:"height"`
	Axis     Axis    `json:"axis"` // axis of revolution
}

func (CylinderParams) primParams() {}

// SphereParams describes a sphere centered at the origin.
type SphereParams struct {
	Diameter float64 `json:"diameter"`
}

func (SphereParams) primParams() {}

// ConeParams describes a truncated cone centered at the origin.
// TopDiameter of zero means a full cone (apex).
type ConeParams struct {
	BottomDiameter float64 `json:"bottom_diameter"`
	TopDiameter    float64 `json:"top_diameter"`
	Height         float64 `json:"height"`
	Axis           Axis    `json:"axis"`
}

func (ConeParams) primParams() {}

// TorusParams describes a torus centered at the origin, ring in the
// plane perpendicular to Z.
type TorusParams struct {
	MajorDiameter float64 `json:"major_diameter"` // center of tube circle
	TubeDiameter  float64 `json:"tube_diameter"`
}

func (TorusParams) primParams() {}

// Primitive is a leaf solid in the recipe. Immutable once generated;
// owned by the part recipe.
type Primitive struct {
	ID        NodeID        `json:"id"`
	Kind      PrimitiveKind `json:"kind"`
	Params    PrimParams    `json:"params"`
	Transform *Transform    `json:"transform,omitempty"`
}

// Operation combines two previously defined nodes with a boolean op.
type Operation struct {
	ID     NodeID `json:"id"`
	Op     OpKind `json:"op"`
	Target NodeID `json:"target"`
	Tool   NodeID `json:"tool"`
}

// Diameter returns the feature diameter for cylindrical and conical
// primitives (the larger end for cones), and 0 for other kinds.
func (p *Primitive) Diameter() float64 {
	switch d := p.Params.(type) {
	case CylinderParams:
		return d.Diameter
	case ConeParams:
		if d.TopDiameter > d.BottomDiameter {
			return d.TopDiameter
		}
		return d.BottomDiameter
	default:
		return 0
	}
}

// FeatureAxis returns the axis of revolution for cylindrical and
// conical primitives. The second result is false for other kinds.
func (p *Primitive) FeatureAxis() (Axis, bool) {
	switch d := p.Params.(type) {
	case CylinderParams:
		return d.Axis, true
	case ConeParams:
		return d.Axis, true
	default:
		return AxisZ, false
	}
}

// FeatureHeight returns the extruded length for cylindrical and conical
// primitives, and 0 for other kinds.
func (p *Primitive) FeatureHeight() float64 {
	switch d := p.Params.(type) {
	case CylinderParams:
		return d.Height
	case ConeParams:
		return d.Height
	default:
		return 0
	}
}

// Center returns the primitive's placed center point.
func (p *Primitive) Center() geom.Vec3 {
	if p.Transform == nil {
		return geom.Vec3{}
	}
	return p.Transform.Translate
}
