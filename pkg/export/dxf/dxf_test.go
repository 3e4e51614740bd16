package dxf_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/graphite/pkg/compose"
	"github.com/chazu/graphite/pkg/export/dxf"
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/kernel"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
	"github.com/chazu/graphite/pkg/section"
)

func boxMesh(min, max geom.Vec3) *kernel.Mesh {
	m := &kernel.Mesh{}
	add := func(ps ...geom.Vec3) {
		for _, p := range ps {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		}
	}
	quad := func(p0, p1, p2, p3 geom.Vec3) {
		add(p0, p1, p2)
		add(p0, p2, p3)
	}
	quad(geom.Vec3{X: max.X, Y: min.Y, Z: min.Z}, geom.Vec3{X: max.X, Y: max.Y, Z: min.Z},
		geom.Vec3{X: max.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: max.Z})
	quad(geom.Vec3{X: min.X, Y: min.Y, Z: min.Z}, geom.Vec3{X: min.X, Y: min.Y, Z: max.Z},
		geom.Vec3{X: min.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: min.Z})
	quad(geom.Vec3{X: min.X, Y: max.Y, Z: min.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: max.Z},
		geom.Vec3{X: max.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: max.X, Y: max.Y, Z: min.Z})
	quad(geom.Vec3{X: min.X, Y: min.Y, Z: min.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: min.Z},
		geom.Vec3{X: max.X, Y: min.Y, Z: max.Z}, geom.Vec3{X: min.X, Y: min.Y, Z: max.Z})
	quad(geom.Vec3{X: min.X, Y: min.Y, Z: max.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: max.Z},
		geom.Vec3{X: max.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: max.Z})
	return m
}

func composedPlate(t *testing.T, planes []section.Plane) *compose.Drawing {
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

	opts := compose.DefaultOptions()
	opts.Sections = planes
	mesh := boxMesh(geom.Vec3{X: -50, Y: -25, Z: -12.5}, geom.Vec3{X: 50, Y: 25, Z: 12.5})
	d, err := compose.New(opts).Compose(context.Background(), r, mesh)
	require.NoError(t, err)
	return d
}

func TestBuild(t *testing.T) {
	d := composedPlate(t, nil)

	out, err := dxf.Build(d)
	require.NoError(t, err)
	require.NotNil(t, out)

	// Every drafting layer exists, including the shared ones that back
	// more than one line kind.
	for _, layer := range []string{"OUTLINE", "HIDDEN", "CENTERLINES", "DIMENSIONS", dxf.LayerText} {
		assert.NoError(t, out.ChangeLayer(layer), "layer %s missing", layer)
	}
}

func TestBuildWithSection(t *testing.T) {
	d := composedPlate(t, []section.Plane{{
		Label:      "A",
		Normal:     geom.Vec3{Z: 1},
		Type:       section.Full,
		ParentView: project.Top,
	}})

	_, err := dxf.Build(d)
	require.NoError(t, err)
}

func TestSave(t *testing.T) {
	d := composedPlate(t, nil)

	path := filepath.Join(t.TempDir(), "plate.dxf")
	require.NoError(t, dxf.Save(d, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "ENTITIES")
	assert.Contains(t, content, "OUTLINE")
	assert.Contains(t, content, "SCALE 1:1")
}
