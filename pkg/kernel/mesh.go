package kernel

import (
	"github.com/chazu/graphite/pkg/geom"
)

// Mesh is a triangle mesh in the recipe's local frame, millimetres.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which recipe node this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// HasNormals reports whether per-vertex normals are present for every
// vertex.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0
}

// Vertex returns vertex i as a Vec3.
func (m *Mesh) Vertex(i int) geom.Vec3 {
	return geom.Vec3{
		X: float64(m.Vertices[i*3]),
		Y: float64(m.Vertices[i*3+1]),
		Z: float64(m.Vertices[i*3+2]),
	}
}

// Triangle returns the three corner points of triangle t.
func (m *Mesh) Triangle(t int) [3]geom.Vec3 {
	return [3]geom.Vec3{
		m.Vertex(int(m.Indices[t*3])),
		m.Vertex(int(m.Indices[t*3+1])),
		m.Vertex(int(m.Indices[t*3+2])),
	}
}

// FaceNormal returns the geometric (flat) normal of triangle t,
// computed from its corner positions. Degenerate triangles yield the
// zero vector.
func (m *Mesh) FaceNormal(t int) geom.Vec3 {
	tri := m.Triangle(t)
	return tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
}

// ComputeNormals fills per-vertex normals from face normals. Vertices
// shared between triangles get the normal of the last triangle that
// touches them; meshes from marching cubes do not share vertices, so
// in practice every vertex gets its own face normal.
func (m *Mesh) ComputeNormals() {
	m.Normals = make([]float32, len(m.Vertices))
	for t := 0; t < m.TriangleCount(); t++ {
		n := m.FaceNormal(t)
		for j := 0; j < 3; j++ {
			i := int(m.Indices[t*3+j])
			m.Normals[i*3] = float32(n.X)
			m.Normals[i*3+1] = float32(n.Y)
			m.Normals[i*3+2] = float32(n.Z)
		}
	}
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() geom.Rect3 {
	out := geom.EmptyRect3()
	for i := 0; i < m.VertexCount(); i++ {
		out = out.Extend(m.Vertex(i))
	}
	return out
}
