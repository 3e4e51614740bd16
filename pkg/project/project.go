// Package project applies first-angle orthographic view transforms to
// classified 3D edges, producing 2D line segments in page convention
// (Y down). Three fixed views are supported: front, top and right.
package project

import (
	"math"

	"github.com/chazu/graphite/pkg/edges"
	"github.com/chazu/graphite/pkg/geom"
)

// degenerateTol is the minimum projected extent: an edge whose X and Y
// deltas are both below it collapses to a point and is dropped.
const degenerateTol = 0.01

// ViewKind names one of the three orthographic views.
type ViewKind int

const (
	Front ViewKind = iota
	Top
	Right
)

func (v ViewKind) String() string {
	switch v {
	case Front:
		return "front"
	case Top:
		return "top"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// AllViews lists the standard view set in composition order.
var AllViews = []ViewKind{Front, Top, Right}

/// Rotation returns the world-to-view rotation for a view: front is
// identity, top is -90 degrees about X, right is +90 degrees about Y.
func Rotation(v ViewKind) geom.Mat3 {
	switch v {
	case Top:
		return geom.RotateX(-90)
	case Right:
		return geom.RotateY(90)
	default:
		return geom.Identity()
	}
}

// SightDir returns the world-space direction of sight for a view: the
// direction from the viewer into the scene. Used for silhouette
// extraction and visibility ray casting.
func SightDir(v ViewKind) geom.Vec3 {
	// View-space sight is +Z (the viewer sits on the -Z side); map it
	// back to world space with the inverse rotation.
	return Rotation(v).Transpose().MulVec(geom.Vec3{Z: 1})
}

// Line2 is a projected 2D segment with its source classification.
type Line2 struct {
	Start, End geom.Vec2
	Visible    bool
	Kind       edges.Kind
}

// View holds all projected lines for one view plus their 2D bounds.
type View struct {
	Kind   ViewKind
	Lines  []Line2
	Bounds geom.Rect2
}

// Project transforms classified 3D edges into a view's 2D line set.
// An edge with both endpoints behind the view plane is dropped; an
// edge is only drawn visible when its classifier verdict holds and at
// least one endpoint lies in front of the plane. Projected segments
// shorter than 0.01mm on both axes are discarded as degenerate.
func Project(cls []edges.Classified, kind ViewKind) *View {
	rot := Rotation(kind)
	view := &View{Kind: kind, Bounds: geom.EmptyRect2()}

	for _, c := range cls {
		a := rot.MulVec(c.Start)
		b := rot.MulVec(c.End)

		// View space: viewer on the -Z side, so z > 0 is behind the
		// projection plane.
		aBehind := a.Z > 0
		bBehind := b.Z > 0
		if aBehind && bBehind {
			continue
		}

		p := geom.Vec2{X: a.X, Y: -a.Y} // page Y grows downward
		q := geom.Vec2{X: b.X, Y: -b.Y}

		if math.Abs(p.X-q.X) < degenerateTol && math.Abs(p.Y-q.Y) < degenerateTol {
			continue
		}

		inFront := !aBehind || !bBehind
		view.Lines = append(view.Lines, Line2{
			Start:   p,
			End:     q,
			Visible: c.Visible && inFront,
			Kind:    c.Kind,
		})
		view.Bounds = view.Bounds.Extend(p).Extend(q)
	}

	return view
}

// ProjectPoint maps a single world point into a view's 2D page frame.
func ProjectPoint(p geom.Vec3, kind ViewKind) geom.Vec2 {
	v := Rotation(kind).MulVec(p)
	return geom.Vec2{X: v.X, Y: -v.Y}
}

// ProjectDir maps a world direction into the view's 2D page frame,
// dropping the depth component.
func ProjectDir(d geom.Vec3, kind ViewKind) geom.Vec2 {
	v := Rotation(kind).MulVec(d)
	return geom.Vec2{X: v.X, Y: -v.Y}
}
