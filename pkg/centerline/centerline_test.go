package centerline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
)

func plateWithHole(dia float64) *recipe.Recipe {
	r := &recipe.Recipe{
		Name: "plate",
		Primitives: []*recipe.Primitive{
			{ID: "plate", Kind: recipe.KindBox, Params: recipe.BoxParams{Size: geom.Vec3{X: 100, Y: 50, Z: 25}}},
			{ID: "hole", Kind: recipe.KindCylinder, Params: recipe.CylinderParams{Diameter: dia, Height: 30, Axis: recipe.AxisZ}},
		},
		Operations: []*recipe.Operation{
			{ID: "drilled", Op: recipe.OpSubtract, Target: "plate", Tool: "hole"},
		},
	}
	r.Index()
	return r
}

func TestGenerateCircularFace(t *testing.T) {
	r := plateWithHole(20)

	// A Z-axis hole shows its circular face in the top view: two
	// crossed 20mm chain lines through the center.
	lines := Generate(r, project.Top)
	require.Len(t, lines, 2)

	h := lines[0]
	assert.Equal(t, geom.Vec2{X: -10, Y: 0}, h.Start)
	assert.Equal(t, geom.Vec2{X: 10, Y: 0}, h.End)

	v := lines[1]
	assert.Equal(t, geom.Vec2{X: 0, Y: -10}, v.Start)
	assert.Equal(t, geom.Vec2{X: 0, Y: 10}, v.End)
}

func TestGenerateAxisLine(t *testing.T) {
	r := plateWithHole(20)

	// The hole's axis runs along the right view's horizontal page axis:
	// a single line spanning the 30mm height plus 5mm overshoot per end.
	lines := Generate(r, project.Right)
	require.Len(t, lines, 1)

	ln := lines[0]
	assert.InDelta(t, 0, ln.Start.Y, 1e-9)
	assert.InDelta(t, 0, ln.End.Y, 1e-9)
	assert.InDelta(t, 40, ln.End.Sub(ln.Start).Length(), 1e-9)
}

func TestGenerateDegenerateAxisSkipped(t *testing.T) {
	r := plateWithHole(20)

	// In the front view the Z axis is the sight direction, so neither a
	// face cross nor an axis line makes sense there.
	assert.Empty(t, Generate(r, project.Front))
}

func TestGenerateSkipsSmallFeatures(t *testing.T) {
	r := plateWithHole(8)
	assert.Empty(t, Generate(r, project.Top))
	assert.Empty(t, Generate(r, project.Right))
}

func TestGenerateThresholdIsInclusive(t *testing.T) {
	r := plateWithHole(MinDiameterMM)
	assert.Len(t, Generate(r, project.Top), 2)
}

func TestGenerateTranslatedFeature(t *testing.T) {
	r := plateWithHole(20)
	r.Primitives[1].Transform = &recipe.Transform{Translate: geom.Vec3{X: 30, Y: 10}}

	lines := Generate(r, project.Top)
	require.Len(t, lines, 2)
	// Top view maps world (x, y, z) to page (x, -z); a Y offset does
	// not move the mark, an X offset does.
	assert.Equal(t, geom.Vec2{X: 20, Y: 0}, lines[0].Start)
	assert.Equal(t, geom.Vec2{X: 40, Y: 0}, lines[0].End)
}

func TestGenerateNoFeatures(t *testing.T) {
	r := &recipe.Recipe{
		Name: "slab",
		Primitives: []*recipe.Primitive{
			{ID: "slab", Kind: recipe.KindBox, Params: recipe.BoxParams{Size: geom.Vec3{X: 10, Y: 10, Z: 10}}},
		},
	}
	r.Index()
	assert.Empty(t, Generate(r, project.Top))
}
