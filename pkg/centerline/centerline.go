// Package centerline derives chain-line center markers for cylindrical
// and conical features: crossed marks where the feature shows its
// circular face, a single axis line where it shows its extruded side.
package centerline

import (
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
)

const (
	// MinDiameterMM is the feature diameter below which no center
	// lines are drawn.
	MinDiameterMM = 10.0
	// crossLengthMM is the length of each crossed mark segment.
	crossLengthMM = 20.0
	// overshootMM extends the axis line past each end of the feature.
	overshootMM = 5.0
)

// Line is one chain-line segment in a view's 2D page frame.
type Line struct {
	Start, End geom.Vec2
}

// axisDir returns the world direction of a feature axis.
func axisDir(a recipe.Axis) geom.Vec3 {
	switch a {
	case recipe.AxisX:
		return geom.Vec3{X: 1}
	case recipe.AxisY:
		return geom.Vec3{Y: 1}
	default:
		return geom.Vec3{Z: 1}
	}
}

// axisPerpendicularTo reports whether a feature axis points out of the
// given view's plane (the feature shows its circular face there).
func axisPerpendicularTo(a recipe.Axis, view project.ViewKind) bool {
	switch a {
	case recipe.AxisX:
		return view == project.Right
	case recipe.AxisY:
		return view == project.Front
	default:
		return view == project.Top
	}
}

// Generate derives center lines for every qualifying feature in one
// view. Features below the minimum diameter are skipped.
func Generate(r *recipe.Recipe, view project.ViewKind) []Line {
	var out []Line
	for _, p := range r.Features() {
		if p.Diameter() < MinDiameterMM {
			continue
		}
		axis, _ := p.FeatureAxis()
		center := project.ProjectPoint(p.Center(), view)

		if axisPerpendicularTo(axis, view) {
			// Circular face: two crossed chain lines through the center.
			h := crossLengthMM / 2
			out = append(out,
				Line{Start: geom.Vec2{X: center.X - h, Y: center.Y}, End: geom.Vec2{X: center.X + h, Y: center.Y}},
				Line{Start: geom.Vec2{X: center.X, Y: center.Y - h}, End: geom.Vec2{X: center.X, Y: center.Y + h}},
			)
			continue
		}

		// Side elevation: one axis line spanning the feature's length
		// plus overshoot on each end.
		dir := project.ProjectDir(axisDir(axis), view).Normalize()
		if dir == (geom.Vec2{}) {
			continue
		}
		h := p.FeatureHeight()/2 + overshootMM
		out = append(out, Line{
			Start: center.Sub(dir.Scale(h)),
			End:   center.Add(dir.Scale(h)),
		})
	}
	return out
}
