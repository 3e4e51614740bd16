package geom

// SignedArea returns the signed shoelace area of the polygon. Positive
// means counter-clockwise winding in a Y-up frame. The polygon may be
// open or closed; a duplicated final point contributes nothing.
func SignedArea(pts []Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd crossing rule. Points exactly on an edge may land on either
// side; callers needing boundary stability should not rely on them.
func PointInPolygon(p Vec2, pts []Vec2) bool {
	inside := false
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SegmentIntersection computes the intersection of segments a0-a1 and
// b0-b1. It returns the parameters t (along a) and u (along b) and
// whether the segments properly intersect (both parameters in [0,1],
// segments not parallel).
func SegmentIntersection(a0, a1, b0, b1 Vec2) (t, u float64, ok bool) {
	d1 := a1.Sub(a0)
	d2 := b1.Sub(b0)
	denom := d1.Cross(d2)
	if denom == 0 {
		return 0, 0, false
	}
	diff := b0.Sub(a0)
	t = diff.Cross(d2) / denom
	u = diff.Cross(d1) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return t, u, false
	}
	return t, u, true
}

// LinePolygonCrossings returns the sorted parameters t at which the
// infinite-extent segment p0-p1 crosses edges of the polygon.
func LinePolygonCrossings(p0, p1 Vec2, pts []Vec2) []float64 {
	var ts []float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		if t, _, ok := SegmentIntersection(p0, p1, a, b); ok {
			ts = append(ts, t)
		}
	}
	return ts
}
