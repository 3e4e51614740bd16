package section

import (
	"math"

	"github.com/chazu/graphite/pkg/geom"
)

// stitch greedily walks segments into closed loops. From an unvisited
// segment it repeatedly finds the next unvisited segment sharing an
// endpoint within tolerance; a walk that returns to its origin closes
// a loop, a walk with no continuation is discarded as open. Iterations
// are capped at twice the segment count to guard against stitching
// bugs producing endless walks.
func (s *Slicer) stitch(segs []segment2, diag *Diagnostics) [][]geom.Vec2 {
	used := make([]bool, len(segs))
	var loops [][]geom.Vec2

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true

		loop := []geom.Vec2{segs[start].a, segs[start].b}
		origin := segs[start].a
		cur := segs[start].b
		closed := false

		maxIter := 2 * len(segs)
		for iter := 0; iter < maxIter; iter++ {
			if cur.DistanceTo(origin) < s.StitchTolerance {
				closed = true
				break
			}

			next := -1
			var nextPt geom.Vec2
			for i := range segs {
				if used[i] {
					continue
				}
				if segs[i].a.DistanceTo(cur) < s.StitchTolerance {
					next, nextPt = i, segs[i].b
					break
				}
				if segs[i].b.DistanceTo(cur) < s.StitchTolerance {
					next, nextPt = i, segs[i].a
					break
				}
			}
			if next < 0 {
				break // open walk
			}
			used[next] = true
			loop = append(loop, nextPt)
			cur = nextPt
		}

		if !closed {
			diag.OpenLoops++
			continue
		}
		// Snap the closure exactly onto the origin point.
		loop[len(loop)-1] = origin
		loops = append(loops, loop)
	}

	return loops
}

// classify discards noise loops and marks outer/inner status: the loop
// with the largest absolute area is the outer boundary; every other
// loop is outer iff its area sign matches, else it is a hole.
func (s *Slicer) classify(loops [][]geom.Vec2, diag *Diagnostics) []Contour {
	var contours []Contour
	for _, loop := range loops {
		area := geom.SignedArea(loop)
		if math.Abs(area) < s.MinLoopArea {
			diag.NoiseLoops++
			continue
		}
		w := CW
		if area > 0 {
			w = CCW
		}
		contours = append(contours, Contour{Points: loop, Winding: w, Area: area})
	}

	if len(contours) == 0 {
		return contours
	}

	largest := 0
	for i := range contours {
		if math.Abs(contours[i].Area) > math.Abs(contours[largest].Area) {
			largest = i
		}
	}
	outerSign := contours[largest].Area > 0
	for i := range contours {
		contours[i].IsOuter = (contours[i].Area > 0) == outerSign
	}
	return contours
}
