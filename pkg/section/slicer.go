package section

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/kernel"
	"github.com/chazu/graphite/pkg/recipe"
)

// Slicer intersects cutting planes with meshes.
type Slicer struct {
	// OnTolerance classifies a vertex as lying on the plane.
	OnTolerance float64
	// StitchTolerance welds segment endpoints during loop stitching.
	StitchTolerance float64
	// MinLoopArea discards closed loops below this absolute area.
	MinLoopArea float64

	logger *slog.Logger
}

// NewSlicer returns a slicer with default tolerances. A nil logger
// discards.
func NewSlicer(logger *slog.Logger) *Slicer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Slicer{
		OnTolerance:     1e-6,
		StitchTolerance: 1e-3,
		MinLoopArea:     1.0,
		logger:          logger,
	}
}

// segment2 is one plane crossing in the plane's 2D frame.
type segment2 struct {
	a, b geom.Vec2
}

// Slice intersects the plane with the mesh and returns classified
// closed contours. An error is returned only for unusable input; a
// slice that produces no valid loops returns an empty, non-fallback
// result (callers then synthesize the fallback).
func (s *Slicer) Slice(m *kernel.Mesh, p Plane) (*Result, error) {
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("section: no mesh to slice")
	}
	if p.Normal.Length() == 0 {
		return nil, fmt.Errorf("section: plane %q has zero normal", p.Label)
	}

	basis := PlaneBasis(p)
	res := &Result{}

	segs := s.crossings(m, p, basis, &res.Diag)
	loops := s.stitch(segs, &res.Diag)
	res.Contours = s.classify(loops, &res.Diag)

	s.logger.Debug("sliced mesh",
		"plane", p.Label,
		"segments", len(segs),
		"contours", len(res.Contours),
		"open_loops", res.Diag.OpenLoops)
	return res, nil
}

// SliceOrFallback slices the mesh, falling back to the simplified
// recipe synthesis when the mesh is missing or yields no closed
// contours.
func (s *Slicer) SliceOrFallback(r *recipe.Recipe, m *kernel.Mesh, p Plane) *Result {
	if m != nil && !m.IsEmpty() {
		res, err := s.Slice(m, p)
		if err == nil && len(res.Contours) > 0 {
			return res
		}
		if err != nil {
			s.logger.Warn("slice failed, using fallback", "plane", p.Label, "error", err)
		} else {
			s.logger.Warn("slice produced no closed contours, using fallback", "plane", p.Label)
		}
	}
	return s.Fallback(r, p)
}

// crossings computes the 2D intersection segments of every straddling
// triangle with the plane.
func (s *Slicer) crossings(m *kernel.Mesh, p Plane, basis Basis, diag *Diagnostics) []segment2 {
	n := p.Normal.Normalize()
	var segs []segment2

	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)

		var d [3]float64
		above, below := 0, 0
		for i, v := range tri {
			d[i] = v.Sub(p.Position).Dot(n)
			switch {
			case d[i] > s.OnTolerance:
				above++
			case d[i] < -s.OnTolerance:
				below++
			}
		}
		// Entirely on one side, or entirely coplanar (near-tangent
		// plane): no crossing segment.
		if above == 0 || below == 0 {
			continue
		}

		// Collect crossing points: on-plane vertices pass through,
		// straddling edges interpolate.
		var pts []geom.Vec3
		for i := 0; i < 3; i++ {
			if math.Abs(d[i]) <= s.OnTolerance {
				pts = append(pts, tri[i])
			}
			j := (i + 1) % 3
			if (d[i] > s.OnTolerance && d[j] < -s.OnTolerance) ||
				(d[i] < -s.OnTolerance && d[j] > s.OnTolerance) {
				t := d[i] / (d[i] - d[j])
				pts = append(pts, tri[i].Lerp(tri[j], t))
			}
		}

		// Dedup near-coincident points.
		var uniq []geom.Vec3
		for _, q := range pts {
			dup := false
			for _, u := range uniq {
				if q.DistanceTo(u) < s.StitchTolerance {
					dup = true
					break
				}
			}
			if !dup {
				uniq = append(uniq, q)
			}
		}

		if len(uniq) != 2 {
			if len(uniq) > 0 {
				diag.DegenerateSegments++
			}
			continue
		}

		// Orient along plane-normal x face-normal so loops stitch with
		// consistent winding: holes come out opposite the outer loop.
		face := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		if uniq[1].Sub(uniq[0]).Dot(n.Cross(face)) < 0 {
			uniq[0], uniq[1] = uniq[1], uniq[0]
		}

		a := basis.Project(uniq[0])
		b := basis.Project(uniq[1])
		if a.DistanceTo(b) < s.StitchTolerance {
			diag.DegenerateSegments++
			continue
		}
		segs = append(segs, segment2{a: a, b: b})
	}

	return segs
}
