package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/kernel"
	"github.com/chazu/graphite/pkg/kernel/sdfx"
	"github.com/chazu/graphite/pkg/recipe"
	"github.com/chazu/graphite/pkg/tessellate"
)

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.NewWithCells(64)
}

func box(id string, x, y, z float64) *recipe.Primitive {
	return &recipe.Primitive{
		ID:     recipe.NodeID(id),
		Kind:   recipe.KindBox,
		Params: recipe.BoxParams{Size: geom.Vec3{X: x, Y: y, Z: z}},
	}
}

func cylinder(id string, dia, height float64, axis recipe.Axis) *recipe.Primitive {
	return &recipe.Primitive{
		ID:   recipe.NodeID(id),
		Kind: recipe.KindCylinder,
		Params: recipe.CylinderParams{
			Diameter: dia,
			Height:   height,
			Axis:     axis,
		},
	}
}

func drilledPlate() *recipe.Recipe {
	r := &recipe.Recipe{
		Name:       "drilled-plate",
		Primitives: []*recipe.Primitive{box("plate", 100, 50, 25), cylinder("hole", 20, 30, recipe.AxisZ)},
		Operations: []*recipe.Operation{
			{ID: "drilled", Op: recipe.OpSubtract, Target: "plate", Tool: "hole"},
		},
	}
	r.Index()
	return r
}

func TestEvaluateSinglePrimitive(t *testing.T) {
	r := &recipe.Recipe{
		Name:       "lone-box",
		Primitives: []*recipe.Primitive{box("b", 10, 20, 30)},
	}
	r.Index()

	s, err := tessellate.Evaluate(r, newKernel())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	min, max := s.BoundingBox()
	if max[2]-min[2] < 29 {
		t.Errorf("box z extent = %v, want about 30", max[2]-min[2])
	}
}

func TestEvaluateSubtract(t *testing.T) {
	s, err := tessellate.Evaluate(drilledPlate(), newKernel())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	min, max := s.BoundingBox()
	if max[0]-min[0] < 98 {
		t.Errorf("drilled plate x extent = %v, want about 100", max[0]-min[0])
	}
}

func TestMeshNamesThePart(t *testing.T) {
	m, err := tessellate.Mesh(drilledPlate(), newKernel())
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	if m.PartName != "drilled-plate" {
		t.Errorf("PartName = %q, want %q", m.PartName, "drilled-plate")
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
}

func TestEvaluateTransformedPrimitive(t *testing.T) {
	p := box("b", 10, 10, 10)
	p.Transform = &recipe.Transform{Translate: geom.Vec3{Z: 50}}
	r := &recipe.Recipe{Name: "raised", Primitives: []*recipe.Primitive{p}}
	r.Index()

	s, err := tessellate.Evaluate(r, newKernel())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	min, max := s.BoundingBox()
	cz := (min[2] + max[2]) / 2
	if math.Abs(cz-50) > 1 {
		t.Errorf("translated center z = %v, want 50", cz)
	}
}

func TestEvaluateChainedOperations(t *testing.T) {
	boss := cylinder("boss", 30, 10, recipe.AxisZ)
	boss.Transform = &recipe.Transform{Translate: geom.Vec3{Z: 17.5}}
	r := &recipe.Recipe{
		Name: "bossed-plate",
		Primitives: []*recipe.Primitive{
			box("plate", 100, 50, 25),
			boss,
			cylinder("hole", 10, 80, recipe.AxisZ),
		},
		Operations: []*recipe.Operation{
			{ID: "with-boss", Op: recipe.OpUnion, Target: "plate", Tool: "boss"},
			{ID: "drilled", Op: recipe.OpSubtract, Target: "with-boss", Tool: "hole"},
		},
	}
	r.Index()

	s, err := tessellate.Evaluate(r, newKernel())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	// The union extends the part upward past the plate's top face.
	_, max := s.BoundingBox()
	if max[2] < 20 {
		t.Errorf("bossed plate top = %v, want above 20", max[2])
	}
}

func TestEvaluateUnknownNode(t *testing.T) {
	r := &recipe.Recipe{
		Name:       "broken",
		Primitives: []*recipe.Primitive{box("plate", 10, 10, 10)},
		Operations: []*recipe.Operation{
			{ID: "bad", Op: recipe.OpSubtract, Target: "plate", Tool: "missing"},
		},
	}
	r.Index()

	if _, err := tessellate.Evaluate(r, newKernel()); err == nil {
		t.Fatal("Evaluate succeeded with a dangling tool reference")
	}
}

func TestEvaluateEmptyRecipe(t *testing.T) {
	r := &recipe.Recipe{Name: "empty"}
	r.Index()
	if _, err := tessellate.Evaluate(r, newKernel()); err == nil {
		t.Fatal("Evaluate succeeded on an empty recipe")
	}
}

func TestPrimitiveMesh(t *testing.T) {
	r := drilledPlate()
	m, err := tessellate.PrimitiveMesh(r, newKernel(), "hole")
	if err != nil {
		t.Fatalf("PrimitiveMesh failed: %v", err)
	}
	b := m.Bounds()
	if math.Abs(b.Size().X-20) > 2 {
		t.Errorf("hole mesh x extent = %v, want about 20", b.Size().X)
	}
}
