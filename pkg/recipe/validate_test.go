package recipe

import (
	"strings"
	"testing"

	"github.com/chazu/graphite/pkg/geom"
)

func validPlate() *Recipe {
	r := &Recipe{
		Name: "plate",
		Primitives: []*Primitive{
			{ID: "plate", Kind: KindBox, Params: BoxParams{Size: geom.Vec3{X: 100, Y: 50, Z: 25}}},
			{ID: "hole", Kind: KindCylinder, Params: CylinderParams{Diameter: 20, Height: 30, Axis: AxisZ}},
		},
		Operations: []*Operation{
			{ID: "drilled", Op: OpSubtract, Target: "plate", Tool: "hole"},
		},
	}
	r.Index()
	return r
}

func errorMessages(res ValidationResult) string {
	var msgs []string
	for _, e := range res.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func TestValidateAcceptsWellFormedRecipe(t *testing.T) {
	res := Validate(validPlate())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %s", errorMessages(res))
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	r := validPlate()
	r.Primitives = append(r.Primitives, &Primitive{
		ID: "plate", Kind: KindBox, Params: BoxParams{Size: geom.Vec3{X: 1, Y: 1, Z: 1}},
	})
	r.Index()

	res := Validate(r)
	if len(res.Errors) == 0 {
		t.Fatal("expected duplicate ID error")
	}
}

func TestValidateDanglingReference(t *testing.T) {
	r := validPlate()
	r.Operations[0].Tool = "missing"
	r.Index()

	res := Validate(r)
	if len(res.Errors) == 0 {
		t.Fatal("expected dangling reference error")
	}
}

func TestValidateForwardReference(t *testing.T) {
	r := &Recipe{
		Name: "forward",
		Primitives: []*Primitive{
			{ID: "a", Kind: KindBox, Params: BoxParams{Size: geom.Vec3{X: 1, Y: 1, Z: 1}}},
			{ID: "b", Kind: KindBox, Params: BoxParams{Size: geom.Vec3{X: 1, Y: 1, Z: 1}}},
		},
		Operations: []*Operation{
			// op1 references op2 before it is defined
			{ID: "op1", Op: OpUnion, Target: "a", Tool: "op2"},
			{ID: "op2", Op: OpUnion, Target: "a", Tool: "b"},
		},
	}
	r.Index()

	res := Validate(r)
	if len(res.Errors) == 0 {
		t.Fatal("expected forward reference error")
	}
}

func TestValidateSelfReference(t *testing.T) {
	r := &Recipe{
		Name: "cyclic",
		Primitives: []*Primitive{
			{ID: "a", Kind: KindBox, Params: BoxParams{Size: geom.Vec3{X: 1, Y: 1, Z: 1}}},
		},
		Operations: []*Operation{
			{ID: "loop", Op: OpUnion, Target: "a", Tool: "loop"},
		},
	}
	r.Index()

	res := Validate(r)
	if len(res.Errors) == 0 {
		t.Fatal("expected cycle error")
	}
}

func TestValidateParamPositivity(t *testing.T) {
	tests := []struct {
		name string
		prim Primitive
	}{
		{"zero box", Primitive{ID: "p", Kind: KindBox, Params: BoxParams{}}},
		{"negative cylinder", Primitive{ID: "p", Kind: KindCylinder, Params: CylinderParams{Diameter: -5, Height: 10}}},
		{"zero sphere", Primitive{ID: "p", Kind: KindSphere, Params: SphereParams{}}},
		{"negative cone", Primitive{ID: "p", Kind: KindCone, Params: ConeParams{BottomDiameter: 10, TopDiameter: -1, Height: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{Name: "bad", Primitives: []*Primitive{&tt.prim}}
			r.Index()
			res := Validate(r)
			if len(res.Errors) == 0 {
				t.Error("expected parameter error")
			}
		})
	}
}

func TestValidateTorusSelfIntersectionIsWarning(t *testing.T) {
	r := &Recipe{
		Name: "fat-torus",
		Primitives: []*Primitive{
			{ID: "t", Kind: KindTorus, Params: TorusParams{MajorDiameter: 10, TubeDiameter: 12}},
		},
	}
	r.Index()

	res := Validate(r)
	if len(res.Errors) != 0 {
		t.Fatalf("self-intersecting torus should not be an error: %s", errorMessages(res))
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected self-intersection warning")
	}
}

func TestFinalNode(t *testing.T) {
	t.Run("last operation wins", func(t *testing.T) {
		r := validPlate()
		id, err := r.FinalNode()
		if err != nil {
			t.Fatal(err)
		}
		if id != "drilled" {
			t.Errorf("FinalNode() = %s, want drilled", id)
		}
	})

	t.Run("explicit root", func(t *testing.T) {
		r := validPlate()
		r.Root = "plate"
		id, err := r.FinalNode()
		if err != nil {
			t.Fatal(err)
		}
		if id != "plate" {
			t.Errorf("FinalNode() = %s, want plate", id)
		}
	})

	t.Run("sole primitive", func(t *testing.T) {
		r := &Recipe{
			Name:       "lone",
			Primitives: []*Primitive{{ID: "a", Kind: KindBox, Params: BoxParams{Size: geom.Vec3{X: 1, Y: 1, Z: 1}}}},
		}
		r.Index()
		id, err := r.FinalNode()
		if err != nil {
			t.Fatal(err)
		}
		if id != "a" {
			t.Errorf("FinalNode() = %s, want a", id)
		}
	})

	t.Run("empty recipe", func(t *testing.T) {
		r := &Recipe{Name: "empty"}
		r.Index()
		if _, err := r.FinalNode(); err == nil {
			t.Error("expected error for empty recipe")
		}
	})
}

func TestSubtractiveTools(t *testing.T) {
	r := validPlate()
	tools := r.SubtractiveTools()
	if !tools["hole"] {
		t.Error("hole should be a subtractive tool")
	}
	if tools["plate"] {
		t.Error("plate is not a subtractive tool")
	}
}

func TestFeatures(t *testing.T) {
	r := validPlate()
	feats := r.Features()
	if len(feats) != 1 || feats[0].ID != "hole" {
		t.Fatalf("Features() = %v, want [hole]", feats)
	}
	if feats[0].Diameter() != 20 {
		t.Errorf("Diameter() = %v, want 20", feats[0].Diameter())
	}
}
