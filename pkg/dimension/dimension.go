// Package dimension derives ISO 129-1 style dimensions from a part
// recipe: bounding-box extents per view and radial dimensions for
// cylindrical and conical features, with priority-ordered collision
// resolution between dimension footprints.
package dimension

import (
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
)

// Kind discriminates the dimension union.
type Kind int

const (
	Linear Kind = iota
	Radial
	Angular
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Radial:
		return "radial"
	case Angular:
		return "angular"
	default:
		return "unknown"
	}
}

// Orientation of a linear dimension.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	Aligned
)

// RadialSubtype distinguishes radius from diameter callouts.
type RadialSubtype int

const (
	Radius RadialSubtype = iota
	Diameter
)

// Arrowhead is a filled triangle: tip first, then the two base corners.
type Arrowhead [3]geom.Vec2

// Data is the interface for kind-specific dimension payloads.
type Data interface {
	dimData() // marker method restricting implementations to this package
}

// LinearData is a linear dimension between two measured endpoints.
// Side is the unit direction the dimension line is offset along;
// Offset is the current distance from the feature. The remaining
// fields are derived by rebuild and refreshed after every relocation.
type LinearData struct {
	Orientation Orientation
	P1, P2      geom.Vec2 // measured endpoints on the feature
	Side        geom.Vec2 // unit perpendicular, offset direction
	Offset      float64

	DimLine [2]geom.Vec2
	Ext1    [2]geom.Vec2
	Ext2    [2]geom.Vec2
	Arrows  [2]Arrowhead
}

func (*LinearData) dimData() {}

// RadialData is a radius or diameter callout with a leader line.
type RadialData struct {
	Subtype    RadialSubtype
	Center     geom.Vec2
	Radius     float64
	AngleDeg   float64 // leader direction in page frame
	LeaderLen  float64
	CenterMark bool

	Leader [2]geom.Vec2
	Arrow  Arrowhead
}

func (*RadialData) dimData() {}

// AngularData is an angle dimension: an arc about a vertex with an
// arrowhead at each end.
type AngularData struct {
	Vertex             geom.Vec2
	ArcRadius          float64
	StartDeg, EndDeg   float64
	Arrows             [2]Arrowhead
}

func (*AngularData) dimData() {}

// Dimension is one dimension instance placed in one view. Priority
// governs collision resolution order; larger wins placement first.
type Dimension struct {
	ID       string
	View     project.ViewKind
	Value    float64
	Text     string
	Priority int
	Data     Data

	TextPos geom.Vec2
	// Exhausted marks a dimension that still overlapped after the
	// relocation budget; it keeps its last attempted position.
	Exhausted bool
}

// Config holds the drafting constants for dimension generation.
// All lengths are millimetres at 1:1.
type Config struct {
	OffsetMM           float64 // initial dimension line offset from the outline
	GapMM              float64 // extension line gap from the feature
	OverhangMM         float64 // extension line overhang past the dimension line
	ArrowLengthMM      float64
	ArrowWidthMM       float64
	SpacingMM          float64 // relocation increment
	MarginMM           float64 // collision test margin
	TextHeightMM       float64
	MinFeatureDiameter float64 // radial dims below this are noise, skipped
	LeaderLenMM        float64 // initial radial leader length
	MaxAttempts        int
}

// DefaultConfig returns the ISO 129-1 style defaults.
func DefaultConfig() Config {
	return Config{
		OffsetMM:           8,
		GapMM:              2,
		OverhangMM:         3,
		ArrowLengthMM:      3,
		ArrowWidthMM:       1,
		SpacingMM:          6,
		MarginMM:           1,
		TextHeightMM:       3.5,
		MinFeatureDiameter: 1,
		LeaderLenMM:        10,
		MaxAttempts:        10,
	}
}
