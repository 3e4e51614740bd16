package edges

import (
	"math"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/kernel"
)

// SharpAngleDeg is the dihedral angle threshold above which an edge
// between two faces is drawn. Smooth tessellation edges (cylinder wall
// facets) stay below it.
const SharpAngleDeg = 30.0

// weldTolerance quantizes vertex positions when building edge
// adjacency. Marching cubes emits duplicated vertices per triangle, so
// welding by position is required to see shared edges.
const weldTolerance = 1e-4

// edgeKey identifies an undirected edge by its two welded vertex ids,
// smaller id first.
type edgeKey struct {
	a, b int
}

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edgeFaces records up to two adjacent face normals per edge. Count
// may exceed 2 for non-manifold meshes; only the first two normals are
// kept (best effort).
type edgeFaces struct {
	normals [2]geom.Vec3
	count   int
}

// adjacency is the edge -> adjacent-face-normals map for a mesh.
type adjacency struct {
	points []geom.Vec3 // welded vertex positions
	edges  map[edgeKey]*edgeFaces
	diag   Diagnostics
}

// buildAdjacency welds mesh vertices and maps every undirected edge to
// the normals of its adjacent faces. Face normals are computed from
// triangle geometry so smooth vertex normals cannot hide sharp edges.
func buildAdjacency(m *kernel.Mesh) *adjacency {
	adj := &adjacency{edges: make(map[edgeKey]*edgeFaces)}

	weld := make(map[[3]int64]int)
	lookup := func(p geom.Vec3) int {
		key := [3]int64{
			int64(math.Round(p.X / weldTolerance)),
			int64(math.Round(p.Y / weldTolerance)),
			int64(math.Round(p.Z / weldTolerance)),
		}
		if id, ok := weld[key]; ok {
			return id
		}
		id := len(adj.points)
		weld[key] = id
		adj.points = append(adj.points, p)
		return id
	}

	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		n := m.FaceNormal(t)
		if n == (geom.Vec3{}) {
			adj.diag.Degenerate++
			continue
		}

		var ids [3]int
		for j := 0; j < 3; j++ {
			ids[j] = lookup(tri[j])
		}
		if ids[0] == ids[1] || ids[1] == ids[2] || ids[0] == ids[2] {
			adj.diag.Degenerate++
			continue
		}

		for j := 0; j < 3; j++ {
			key := makeEdgeKey(ids[j], ids[(j+1)%3])
			ef := adj.edges[key]
			if ef == nil {
				ef = &edgeFaces{}
				adj.edges[key] = ef
			}
			if ef.count < 2 {
				ef.normals[ef.count] = n
			} else if ef.count == 2 {
				adj.diag.NonManifold++
			}
			ef.count++
		}
	}

	return adj
}

// edge materializes the segment for an edge key.
func (adj *adjacency) edge(k edgeKey) Edge {
	return Edge{Start: adj.points[k.a], End: adj.points[k.b]}
}

// Extractor derives sharp and silhouette edges from a mesh. Build one
// per mesh and reuse it across views; adjacency construction dominates.
type Extractor struct {
	adj         *adjacency
	sharpCosine float64
	sharpKeys   []edgeKey // cached, view independent
	sharpDone   bool
}

// NewExtractor builds the edge adjacency for a mesh. A mesh without
// normals gets them computed first.
func NewExtractor(m *kernel.Mesh) *Extractor {
	if !m.HasNormals() {
		m.ComputeNormals()
	}
	return &Extractor{
		adj:         buildAdjacency(m),
		sharpCosine: math.Cos(SharpAngleDeg * math.Pi / 180),
	}
}

// Diagnostics returns defect counts from adjacency construction.
func (x *Extractor) Diagnostics() Diagnostics {
	return x.adj.diag
}

// sharp returns the keys of all view-independent sharp edges: boundary
// edges (exactly one adjacent face) and edges whose adjacent face
// normals differ by more than the dihedral threshold.
func (x *Extractor) sharp() []edgeKey {
	if x.sharpDone {
		return x.sharpKeys
	}
	var out []edgeKey
	for key, ef := range x.adj.edges {
		switch {
		case ef.count == 1:
			out = append(out, key) // boundary edge
		case ef.normals[0].Dot(ef.normals[1]) < x.sharpCosine:
			out = append(out, key)
		}
	}
	x.sharpKeys = out
	x.sharpDone = true
	return out
}

// silhouette returns the keys of edges whose two adjacent faces face
// opposite ways relative to the view direction: one front-facing, one
// back-facing.
func (x *Extractor) silhouette(viewDir geom.Vec3) []edgeKey {
	var out []edgeKey
	for key, ef := range x.adj.edges {
		if ef.count < 2 {
			continue
		}
		d0 := ef.normals[0].Dot(viewDir)
		d1 := ef.normals[1].Dot(viewDir)
		if d0*d1 < 0 {
			out = append(out, key)
		}
	}
	return out
}

// Sharp returns all view-independent sharp edges.
func (x *Extractor) Sharp() []Edge {
	keys := x.sharp()
	out := make([]Edge, len(keys))
	for i, k := range keys {
		out[i] = x.adj.edge(k)
	}
	return out
}

// Silhouette returns silhouette edges for a view direction.
func (x *Extractor) Silhouette(viewDir geom.Vec3) []Edge {
	keys := x.silhouette(viewDir)
	out := make([]Edge, len(keys))
	for i, k := range keys {
		out[i] = x.adj.edge(k)
	}
	return out
}

// Extract returns the union of sharp and silhouette edges for a view
// direction, tagged by kind. An edge that is both sharp and a
// silhouette is reported once, as sharp.
func (x *Extractor) Extract(viewDir geom.Vec3) []Classified {
	seen := make(map[edgeKey]bool)
	var out []Classified
	for _, k := range x.sharp() {
		seen[k] = true
		out = append(out, Classified{Edge: x.adj.edge(k), Kind: Sharp})
	}
	for _, k := range x.silhouette(viewDir) {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Classified{Edge: x.adj.edge(k), Kind: Silhouette})
	}
	return out
}
