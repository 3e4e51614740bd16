package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/graphite/pkg/edges"
	"github.com/chazu/graphite/pkg/geom"
)

func classified(start, end geom.Vec3, visible bool) edges.Classified {
	return edges.Classified{
		Edge:    edges.Edge{Start: start, End: end},
		Kind:    edges.Sharp,
		Visible: visible,
	}
}

func TestSightDirs(t *testing.T) {
	tests := []struct {
		view ViewKind
		want geom.Vec3
	}{
		{Front, geom.Vec3{Z: 1}},
		{Top, geom.Vec3{Y: -1}},
		{Right, geom.Vec3{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			d := SightDir(tt.view)
			assert.InDelta(t, tt.want.X, d.X, 1e-12)
			assert.InDelta(t, tt.want.Y, d.Y, 1e-12)
			assert.InDelta(t, tt.want.Z, d.Z, 1e-12)
			assert.InDelta(t, 1, d.Length(), 1e-12)
		})
	}
}

func TestProjectFrontFlipsY(t *testing.T) {
	v := Project([]edges.Classified{
		classified(geom.Vec3{X: 0, Y: 5, Z: -5}, geom.Vec3{X: 10, Y: 5, Z: -5}, true),
	}, Front)

	require.Len(t, v.Lines, 1)
	l := v.Lines[0]
	assert.Equal(t, geom.Vec2{X: 0, Y: -5}, l.Start)
	assert.Equal(t, geom.Vec2{X: 10, Y: -5}, l.End)
	assert.True(t, l.Visible)
}

func TestProjectDropsEdgesBehindPlane(t *testing.T) {
	v := Project([]edges.Classified{
		// Both endpoints at z > 0: behind the front view plane.
		classified(geom.Vec3{X: 0, Y: 0, Z: 5}, geom.Vec3{X: 10, Y: 0, Z: 5}, true),
	}, Front)
	assert.Empty(t, v.Lines)
}

func TestProjectKeepsStraddlingEdge(t *testing.T) {
	v := Project([]edges.Classified{
		classified(geom.Vec3{X: 0, Y: 0, Z: -5}, geom.Vec3{X: 10, Y: 0, Z: 5}, true),
	}, Front)
	require.Len(t, v.Lines, 1)
	assert.True(t, v.Lines[0].Visible)
}

func TestProjectDropsDegenerateSegments(t *testing.T) {
	v := Project([]edges.Classified{
		// Edge along the sight direction collapses to a point.
		classified(geom.Vec3{X: 1, Y: 1, Z: -5}, geom.Vec3{X: 1, Y: 1, Z: -1}, true),
	}, Front)
	assert.Empty(t, v.Lines)
}

func TestProjectHiddenStaysHidden(t *testing.T) {
	v := Project([]edges.Classified{
		classified(geom.Vec3{X: 0, Y: 0, Z: -5}, geom.Vec3{X: 10, Y: 0, Z: -5}, false),
	}, Front)
	require.Len(t, v.Lines, 1)
	assert.False(t, v.Lines[0].Visible)
}

func TestProjectBounds(t *testing.T) {
	v := Project([]edges.Classified{
		classified(geom.Vec3{X: -5, Y: -5, Z: 0}, geom.Vec3{X: 5, Y: 5, Z: 0}, true),
	}, Front)
	assert.InDelta(t, 10, v.Bounds.Width(), 1e-9)
	assert.InDelta(t, 10, v.Bounds.Height(), 1e-9)
}

func TestProjectTopView(t *testing.T) {
	// A point at +Y (far from a front viewer) maps upward in the top
	// view after the first-angle rotation and page flip.
	p := ProjectPoint(geom.Vec3{X: 3, Y: 7, Z: 0}, Top)
	assert.InDelta(t, 3, p.X, 1e-9)

	q := ProjectPoint(geom.Vec3{X: 3, Y: 7, Z: 2}, Top)
	assert.NotEqual(t, p.Y, q.Y, "top view must resolve depth along Z")
}

func TestProjectDirDropsDepth(t *testing.T) {
	d := ProjectDir(geom.Vec3{Z: 1}, Front)
	assert.InDelta(t, 0, d.X, 1e-12)
	assert.InDelta(t, 0, d.Y, 1e-12)

	d = ProjectDir(geom.Vec3{X: 1}, Front)
	assert.InDelta(t, 1, d.X, 1e-12)
}
