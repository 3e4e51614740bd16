package edges

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/kernel"
)

// rayEpsilon rejects hits at the ray origin so an edge's own surface
// does not occlude it.
const rayEpsilon = 1e-3

// Classifier marks edges visible or hidden for a view by casting rays
// from edge samples toward the viewer against the full mesh.
// Classification is O(edges x triangles); typical parts stay under a
// few thousand edges so no spatial index is used.
type Classifier struct {
	tris [][3]geom.Vec3
}

// NewClassifier precomputes the triangle list for a mesh.
func NewClassifier(m *kernel.Mesh) *Classifier {
	tris := make([][3]geom.Vec3, 0, m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		// Degenerate triangles can never be hit; drop them up front.
		if tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])) == (geom.Vec3{}) {
			continue
		}
		tris = append(tris, tri)
	}
	return &Classifier{tris: tris}
}

// occluded reports whether anything blocks the ray from p toward the
// viewer (opposite the view direction).
func (c *Classifier) occluded(p, viewDir geom.Vec3) bool {
	dir := viewDir.Scale(-1)
	for _, tri := range c.tris {
		if t, ok := rayTriangle(p, dir, tri); ok && t > rayEpsilon {
			return true
		}
	}
	return false
}

// sampleVisible tests one edge sample.
func (c *Classifier) sampleVisible(p, viewDir geom.Vec3) bool {
	return !c.occluded(p, viewDir)
}

// classifyOne applies the 3-sample majority vote: both endpoints plus
// the midpoint are tested, and the edge is visible iff at least two
// samples are unoccluded. The majority vote reduces flicker at tangent
// and grazing angles.
func (c *Classifier) classifyOne(e Edge, viewDir geom.Vec3) bool {
	votes := 0
	for _, p := range [3]geom.Vec3{e.Start, e.Midpoint(), e.End} {
		if c.sampleVisible(p, viewDir) {
			votes++
		}
	}
	return votes >= 2
}

// Classify marks each edge visible or hidden for the view direction.
// Work is spread over a worker pool; each worker writes disjoint
// indices, so the result does not depend on completion order.
func (c *Classifier) Classify(ctx context.Context, in []Classified, viewDir geom.Vec3) ([]Classified, error) {
	out := make([]Classified, len(in))
	copy(out, in)

	workers := runtime.NumCPU()
	if workers > len(out) {
		workers = len(out)
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(out) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(out) {
			hi = len(out)
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				out[i].Visible = c.classifyOne(out[i].Edge, viewDir)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// rayTriangle is the Moller-Trumbore ray/triangle intersection. It
// returns the ray parameter t and whether the ray hits the triangle at
// t >= 0.
func rayTriangle(origin, dir geom.Vec3, tri [3]geom.Vec3) (float64, bool) {
	const eps = 1e-9

	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false // parallel
	}
	inv := 1 / det

	s := origin.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
