// Package hatch fills sectioned regions with angled parallel lines
// clipped to the section's contours. Crossing parity against all
// contour edges keeps hatch lines out of holes.
package hatch

import (
	"math"
	"sort"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/section"
)

// Pattern describes a hatch fill.
type Pattern struct {
	AngleDeg    float64
	SpacingMM   float64
	LineWidthMM float64
}

// Default returns the general-purpose ISO 128-50 hatch: 45 degrees,
// 3mm spacing.
func Default() Pattern {
	return Pattern{AngleDeg: 45, SpacingMM: 3, LineWidthMM: 0.25}
}

// Line is one clipped hatch segment.
type Line struct {
	Start, End geom.Vec2
}

// Fill generates hatch lines for a sectioned region. All contours
// participate in clipping, so holes stay clear. Candidate lines span
// the contours' bounding box plus a margin of twice the spacing;
// fully-outside candidates are dropped, fully-inside ones kept whole.
func Fill(contours []section.Contour, pat Pattern) []Line {
	if len(contours) == 0 || pat.SpacingMM <= 0 {
		return nil
	}

	bounds := geom.EmptyRect2()
	for i := range contours {
		bounds = bounds.Union(contours[i].Bounds())
	}
	if bounds.IsEmpty() {
		return nil
	}

	rad := pat.AngleDeg * math.Pi / 180
	dir := geom.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
	norm := dir.Perp()

	margin := 2 * pat.SpacingMM
	center := bounds.Center()

	// Signed extents of the inflated box along the line direction and
	// its normal.
	half := geom.Vec2{X: bounds.Width()/2 + margin, Y: bounds.Height()/2 + margin}
	alongExtent := math.Abs(dir.X)*half.X + math.Abs(dir.Y)*half.Y
	normalExtent := math.Abs(norm.X)*half.X + math.Abs(norm.Y)*half.Y

	var out []Line
	for off := -normalExtent; off <= normalExtent; off += pat.SpacingMM {
		base := center.Add(norm.Scale(off))
		p0 := base.Sub(dir.Scale(alongExtent))
		p1 := base.Add(dir.Scale(alongExtent))
		out = append(out, clip(p0, p1, contours)...)
	}
	return out
}

// clip cuts one candidate line against every contour edge and keeps
// the inside runs. Parity is seeded by a point-in-polygon test of the
// candidate's start, which lies outside the inflated bounding box.
func clip(p0, p1 geom.Vec2, contours []section.Contour) []Line {
	var ts []float64
	for i := range contours {
		ts = append(ts, geom.LinePolygonCrossings(p0, p1, contours[i].Points)...)
	}

	if len(ts) == 0 {
		// No crossings: either fully inside (kept whole) or fully
		// outside (dropped).
		if insideRegion(p0.Lerp(p1, 0.5), contours) {
			return []Line{{Start: p0, End: p1}}
		}
		return nil
	}

	sort.Float64s(ts)
	inside := insideRegion(p0, contours)

	var out []Line
	prev := 0.0
	for _, t := range ts {
		if inside && t > prev {
			out = append(out, Line{Start: p0.Lerp(p1, prev), End: p0.Lerp(p1, t)})
		}
		inside = !inside
		prev = t
	}
	if inside && prev < 1 {
		out = append(out, Line{Start: p0.Lerp(p1, prev), End: p1})
	}
	return out
}

// insideRegion applies the even-odd rule across all contours: inside
// the outer boundary and outside holes.
func insideRegion(p geom.Vec2, contours []section.Contour) bool {
	inside := false
	for i := range contours {
		if geom.PointInPolygon(p, contours[i].Points) {
			inside = !inside
		}
	}
	return inside
}
