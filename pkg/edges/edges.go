// Package edges derives drawable edges from a triangle mesh: sharp
// edges from dihedral angles, silhouette edges from front/back facing
// changes, and per-view visibility from ray casting against the mesh.
package edges

import "github.com/chazu/graphite/pkg/geom"

// Edge is an undirected 3D segment in millimetres.
type Edge struct {
	Start, End geom.Vec3
}

// Midpoint returns the edge's midpoint.
func (e Edge) Midpoint() geom.Vec3 {
	return e.Start.Lerp(e.End, 0.5)
}

// Length returns the edge's length.
func (e Edge) Length() float64 {
	return e.Start.DistanceTo(e.End)
}

// Kind distinguishes how an edge was derived.
type Kind int

const (
	Sharp      Kind = iota // dihedral angle above threshold, or boundary
	Silhouette             // front/back facing flip for a view direction
)

func (k Kind) String() string {
	switch k {
	case Sharp:
		return "sharp"
	case Silhouette:
		return "silhouette"
	default:
		return "unknown"
	}
}

// Classified is an edge with its derivation kind and per-view
// visibility.
type Classified struct {
	Edge
	Kind    Kind
	Visible bool
}

// Diagnostics counts recoverable defects encountered during
// extraction. They never abort a drawing; callers log or assert on
// them.
type Diagnostics struct {
	NonManifold int // edges with more than two adjacent faces
	Degenerate  int // zero-length or zero-area elements skipped
}
