// Package section intersects cutting planes with triangle meshes and
// stitches the crossing segments into closed 2D contours classified as
// outer boundaries or holes. When slicing fails or no mesh is
// available, a simplified bounding-box-and-hole fallback is
// synthesized instead; callers treat it as lower fidelity, not an
// error.
package section

import (
	"math"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
)

// PlaneType enumerates section view styles.
type PlaneType int

const (
	Full PlaneType = iota
	Half
	Offset
	Broken
)

// Plane is a cutting plane through the part.
type Plane struct {
	Label      string // drawing label, e.g. "A" -> section "A-A"
	Position   geom.Vec3
	Normal     geom.Vec3
	Type       PlaneType
	ParentView project.ViewKind // view carrying the cutting-plane trace
}

// Winding is the rotational direction of a contour's vertex order.
type Winding int

const (
	CW  Winding = iota // negative shoelace area
	CCW                // positive shoelace area
)

func (w Winding) String() string {
	if w == CCW {
		return "ccw"
	}
	return "cw"
}

// Contour is a closed polygon in the cutting plane's 2D frame. The
// first and last point coincide within tolerance. IsOuter is true for
// the largest-area loop and every loop sharing its winding sign.
type Contour struct {
	Points  []geom.Vec2
	IsOuter bool
	Winding Winding
	Area    float64 // signed shoelace area
}

// Bounds returns the contour's bounding rectangle.
func (c *Contour) Bounds() geom.Rect2 {
	out := geom.EmptyRect2()
	for _, p := range c.Points {
		out = out.Extend(p)
	}
	return out
}

// Diagnostics counts recoverable slicing defects.
type Diagnostics struct {
	DegenerateSegments int // near-zero-length crossings dropped
	OpenLoops          int // walks that never closed, discarded
	NoiseLoops         int // closed loops below the area threshold
}

// Result is the outcome of slicing one plane.
type Result struct {
	Contours []Contour
	Fallback bool // true when the simplified synthesis was used
	Diag     Diagnostics
}

// Basis is the cutting plane's local 2D coordinate frame.
type Basis struct {
	Origin geom.Vec3
	U, V   geom.Vec3 // orthonormal in-plane axes
}

// PlaneBasis derives the deterministic 2D frame for a plane: the
// reference axis is chosen by the dominant component of the normal so
// equal planes always get the same orientation.
func PlaneBasis(p Plane) Basis {
	n := p.Normal.Normalize()

	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	var ref geom.Vec3
	switch {
	case ax >= ay && ax >= az:
		ref = geom.Vec3{Y: 1}
	case ay >= az:
		ref = geom.Vec3{Z: 1}
	default:
		ref = geom.Vec3{X: 1}
	}

	u := ref.Cross(n).Normalize()
	v := n.Cross(u)
	return Basis{Origin: p.Position, U: u, V: v}
}

// Project maps a 3D point into the plane's 2D frame.
func (b Basis) Project(p geom.Vec3) geom.Vec2 {
	d := p.Sub(b.Origin)
	return geom.Vec2{X: d.Dot(b.U), Y: d.Dot(b.V)}
}
