package recipe

import "github.com/chazu/graphite/pkg/geom"

// localBounds returns the primitive's axis-aligned bounds before any
// transform, centered at the origin.
func (p *Primitive) localBounds() geom.Rect3 {
	half := geom.Vec3{}
	switch d := p.Params.(type) {
	case BoxParams:
		half = d.Size.Scale(0.5)
	case CylinderParams:
		r := d.Diameter / 2
		switch d.Axis {
		case AxisX:
			half = geom.Vec3{X: d.Height / 2, Y: r, Z: r}
		case AxisY:
			half = geom.Vec3{X: r, Y: d.Height / 2, Z: r}
		default:
			half = geom.Vec3{X: r, Y: r, Z: d.Height / 2}
		}
	case SphereParams:
		r := d.Diameter / 2
		half = geom.Vec3{X: r, Y: r, Z: r}
	case ConeParams:
		r := p.Diameter() / 2
		switch d.Axis {
		case AxisX:
			half = geom.Vec3{X: d.Height / 2, Y: r, Z: r}
		case AxisY:
			half = geom.Vec3{X: r, Y: d.Height / 2, Z: r}
		default:
			half = geom.Vec3{X: r, Y: r, Z: d.Height / 2}
		}
	case TorusParams:
		r := (d.MajorDiameter + d.TubeDiameter) / 2
		half = geom.Vec3{X: r, Y: r, Z: d.TubeDiameter / 2}
	}
	return geom.Rect3{Min: half.Scale(-1), Max: half}
}

// Bounds returns the primitive's placed axis-aligned bounding box.
// Rotated primitives get the conservative box of their rotated corners.
func (p *Primitive) Bounds() geom.Rect3 {
	local := p.localBounds()
	if p.Transform == nil {
		return local
	}

	s := p.Transform.EffectiveScale()
	scaled := geom.Rect3{
		Min: geom.Vec3{X: local.Min.X * s.X, Y: local.Min.Y * s.Y, Z: local.Min.Z * s.Z},
		Max: geom.Vec3{X: local.Max.X * s.X, Y: local.Max.Y * s.Y, Z: local.Max.Z * s.Z},
	}

	rot := p.Transform.Rotate
	if rot == (geom.Vec3{}) {
		return geom.Rect3{
			Min: scaled.Min.Add(p.Transform.Translate),
			Max: scaled.Max.Add(p.Transform.Translate),
		}
	}

	m := geom.EulerRotation(rot)
	out := geom.EmptyRect3()
	for _, c := range scaled.Corners() {
		out = out.Extend(m.MulVec(c).Add(p.Transform.Translate))
	}
	return out
}

// Bounds returns the recipe's overall bounding box: the union of all
// primitives that add material. Primitives used only as subtraction
// tools carve holes and do not grow the part.
func (r *Recipe) Bounds() geom.Rect3 {
	tools := r.SubtractiveTools()
	out := geom.EmptyRect3()
	for _, p := range r.Primitives {
		if tools[p.ID] {
			continue
		}
		out = out.Union(p.Bounds())
	}
	if out.IsEmpty() {
		// Subtractive-only recipe; fall back to every primitive.
		for _, p := range r.Primitives {
			out = out.Union(p.Bounds())
		}
	}
	return out
}
