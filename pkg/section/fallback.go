package section

import (
	"math"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/recipe"
)

// Fallback synthesizes a simplified section from the recipe alone: a
// rectangular outer contour from the part's bounding box on the two
// axes spanned by the plane, with octagonal holes approximating the
// subtractive cylindrical primitives the plane passes through. Lower
// fidelity than mesh slicing, but never fails.
func (s *Slicer) Fallback(r *recipe.Recipe, p Plane) *Result {
	res := &Result{Fallback: true}
	if r == nil {
		return res
	}

	basis := PlaneBasis(p)
	bounds := r.Bounds()
	if bounds.IsEmpty() {
		return res
	}

	// Outer rectangle: project the box corners into the plane frame.
	rect := geom.EmptyRect2()
	for _, c := range bounds.Corners() {
		rect = rect.Extend(basis.Project(c))
	}
	outer := []geom.Vec2{
		rect.Min,
		{X: rect.Max.X, Y: rect.Min.Y},
		rect.Max,
		{X: rect.Min.X, Y: rect.Max.Y},
		rect.Min,
	}
	res.Contours = append(res.Contours, Contour{
		Points:  outer,
		IsOuter: true,
		Winding: CCW,
		Area:    geom.SignedArea(outer),
	})

	// Octagonal holes for subtractive cylinders the plane crosses.
	n := p.Normal.Normalize()
	tools := r.SubtractiveTools()
	for _, prim := range r.Primitives {
		if !tools[prim.ID] {
			continue
		}
		cyl, ok := prim.Params.(recipe.CylinderParams)
		if !ok {
			continue
		}

		// The plane crosses the cylinder when the center's distance to
		// the plane is within the primitive's own half-extent along
		// the normal.
		pb := prim.Bounds()
		halfSpan := pb.Size().Scale(0.5)
		extent := math.Abs(n.X)*halfSpan.X + math.Abs(n.Y)*halfSpan.Y + math.Abs(n.Z)*halfSpan.Z
		dist := math.Abs(prim.Center().Sub(p.Position).Dot(n))
		if dist > extent {
			continue
		}

		center := basis.Project(prim.Center())
		hole := octagon(center, cyl.Diameter/2)
		res.Contours = append(res.Contours, Contour{
			Points:  hole,
			IsOuter: false,
			Winding: CW,
			Area:    geom.SignedArea(hole),
		})
	}

	return res
}

// octagon builds a clockwise octagonal ring (hole winding) of the
// given radius, closed.
func octagon(c geom.Vec2, r float64) []geom.Vec2 {
	pts := make([]geom.Vec2, 0, 9)
	for i := 0; i < 8; i++ {
		a := -2 * math.Pi * float64(i) / 8 // negative sweep = clockwise
		pts = append(pts, geom.Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return append(pts, pts[0])
}
