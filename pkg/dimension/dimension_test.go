package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/graphite/internal/testutil"
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{25.4, "25"},
		{10, "10"},
		{9.5, "9.5"},
		{5, "5"},
		{0.5, "0.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "FormatValue(%v)", tt.in)
	}

	assert.Equal(t, "⌀20", FormatDiameter(20))
	assert.Equal(t, "R7.5", FormatRadius(7.5))
	assert.Equal(t, "45°", FormatAngle(45))
}

func drilledPlate(t *testing.T) *recipe.Recipe {
	t.Helper()
	r := &recipe.Recipe{
		Name: "plate",
		Primitives: []*recipe.Primitive{
			{ID: "plate", Kind: recipe.KindBox, Params: recipe.BoxParams{Size: geom.Vec3{X: 100, Y: 50, Z: 25}}},
			{ID: "hole", Kind: recipe.KindCylinder, Params: recipe.CylinderParams{Diameter: 20, Height: 30, Axis: recipe.AxisZ}},
		},
		Operations: []*recipe.Operation{
			{ID: "drilled", Op: recipe.OpSubtract, Target: "plate", Tool: "hole"},
		},
	}
	r.Index()
	require.Empty(t, recipe.Validate(r).Errors)
	return r
}

func TestGenerate(t *testing.T) {
	e := NewEngine(DefaultConfig(), testutil.NewTestLogger(t))
	dims := e.Generate(drilledPlate(t))

	// Width and height per view, plus the hole diameter.
	require.Len(t, dims, 7)

	byID := map[string]*Dimension{}
	for i := range dims {
		byID[dims[i].ID] = &dims[i]
	}

	fw := byID["front-width"]
	require.NotNil(t, fw)
	assert.Equal(t, project.Front, fw.View)
	assert.InDelta(t, 100, fw.Value, 1e-9)
	assert.Equal(t, "100", fw.Text)

	dia := byID["hole-dia"]
	require.NotNil(t, dia)
	assert.Equal(t, "⌀20", dia.Text)
	assert.Equal(t, project.Top, dia.View, "hole along Z reads in the top view")
	assert.Equal(t, priorityFeature, dia.Priority)
}

func TestLinearGeometry(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, nil)
	dims := e.Generate(drilledPlate(t))

	var fw *Dimension
	for i := range dims {
		if dims[i].ID == "front-width" {
			fw = &dims[i]
		}
	}
	require.NotNil(t, fw)
	data := fw.Data.(*LinearData)

	// Dimension line sits OffsetMM along Side from the measured edge.
	assert.InDelta(t, data.P1.Y+cfg.OffsetMM, data.DimLine[0].Y, 1e-9)
	assert.InDelta(t, data.P2.Y+cfg.OffsetMM, data.DimLine[1].Y, 1e-9)
	assert.InDelta(t, data.P1.X, data.DimLine[0].X, 1e-9)

	// Extension lines leave a gap at the feature and overhang past the
	// dimension line.
	assert.InDelta(t, data.P1.Y+cfg.GapMM, data.Ext1[0].Y, 1e-9)
	assert.InDelta(t, data.P1.Y+cfg.OffsetMM+cfg.OverhangMM, data.Ext1[1].Y, 1e-9)

	// Arrowheads have their tips exactly at the dimension line ends.
	assert.Equal(t, data.DimLine[0], data.Arrows[0][0])
	assert.Equal(t, data.DimLine[1], data.Arrows[1][0])

	// Arrow proportions follow the config.
	back := data.Arrows[0][1]
	assert.InDelta(t, cfg.ArrowLengthMM, back.Sub(data.DimLine[0]).X, 1e-9)
}

func TestRadialGeometry(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, nil)
	dims := e.Generate(drilledPlate(t))

	var dia *Dimension
	for i := range dims {
		if dims[i].ID == "hole-dia" {
			dia = &dims[i]
		}
	}
	require.NotNil(t, dia)
	data := dia.Data.(*RadialData)

	// Leader starts on the circle and extends LeaderLen outward.
	assert.InDelta(t, data.Radius, data.Leader[0].Sub(data.Center).Length(), 1e-9)
	assert.InDelta(t, data.Radius+data.LeaderLen, data.Leader[1].Sub(data.Center).Length(), 1e-9)

	// Arrow tip touches the circle.
	assert.Equal(t, data.Leader[0], data.Arrow[0])
}

func twoHolePlate(t *testing.T) *recipe.Recipe {
	t.Helper()
	r := &recipe.Recipe{
		Name: "two-holes",
		Primitives: []*recipe.Primitive{
			{ID: "plate", Kind: recipe.KindBox, Params: recipe.BoxParams{Size: geom.Vec3{X: 100, Y: 50, Z: 25}}},
			{ID: "bore", Kind: recipe.KindCylinder, Params: recipe.CylinderParams{Diameter: 20, Height: 30, Axis: recipe.AxisZ}},
			{ID: "pilot", Kind: recipe.KindCylinder, Params: recipe.CylinderParams{Diameter: 10, Height: 30, Axis: recipe.AxisZ}},
		},
		Operations: []*recipe.Operation{
			{ID: "op1", Op: recipe.OpSubtract, Target: "plate", Tool: "bore"},
			{ID: "op2", Op: recipe.OpSubtract, Target: "op1", Tool: "pilot"},
		},
	}
	r.Index()
	return r
}

func TestResolveSeparatesOverlaps(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg, testutil.NewTestLogger(t))

	// Two dimensions measuring the same edge start stacked on top of
	// each other; the higher-priority one keeps its place and the other
	// steps outward in spacing increments.
	mkDim := func(id string, priority int) Dimension {
		return Dimension{
			ID:       id,
			View:     project.Front,
			Value:    100,
			Text:     "100",
			Priority: priority,
			Data: &LinearData{
				Orientation: Horizontal,
				P1:          geom.Vec2{X: -50, Y: 25},
				P2:          geom.Vec2{X: 50, Y: 25},
				Side:        geom.Vec2{Y: 1},
				Offset:      cfg.OffsetMM,
			},
		}
	}
	dims := []Dimension{mkDim("overall", 10), mkDim("detail", 5)}
	for i := range dims {
		e.rebuild(&dims[i])
	}

	exhausted := e.Resolve(dims)
	assert.Zero(t, exhausted)

	overall := dims[0].Data.(*LinearData)
	detail := dims[1].Data.(*LinearData)
	assert.InDelta(t, cfg.OffsetMM, overall.Offset, 1e-9, "winner keeps its offset")
	assert.Greater(t, detail.Offset, overall.Offset, "loser relocates outward")
	assert.False(t, e.Footprint(&dims[0]).Intersects(e.Footprint(&dims[1])))
}

func TestResolveExhaustion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpacingMM = 0 // relocation cannot make progress
	cfg.MaxAttempts = 1
	e := NewEngine(cfg, testutil.NewTestLogger(t))

	dims := e.Generate(twoHolePlate(t))
	exhausted := e.Resolve(dims)
	assert.Equal(t, 1, exhausted)

	var flagged int
	for i := range dims {
		if dims[i].Exhausted {
			flagged++
		}
	}
	assert.Equal(t, exhausted, flagged)
}

func TestFootprintIncludesText(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	dims := e.Generate(drilledPlate(t))
	for i := range dims {
		fp := e.Footprint(&dims[i])
		assert.True(t, fp.Contains(dims[i].TextPos),
			"footprint of %s must cover its text anchor", dims[i].ID)
	}
}
