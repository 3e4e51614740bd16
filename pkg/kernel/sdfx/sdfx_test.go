package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/graphite/pkg/kernel"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()
	if min[0] > -49 || max[0] < 49 {
		t.Errorf("box x bounds = [%v, %v], want about [-50, 50]", min[0], max[0])
	}

	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestCylinderAxes(t *testing.T) {
	k := New()
	tests := []struct {
		name string
		axis int
		long int // index of the long bounding box dimension
	}{
		{"z axis", kernel.AxisZ, 2},
		{"y axis", kernel.AxisY, 1},
		{"x axis", kernel.AxisX, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cyl := k.Cylinder(50, 10, tt.axis)
			min, max := cyl.BoundingBox()
			for i := 0; i < 3; i++ {
				extent := max[i] - min[i]
				if i == tt.long {
					if extent < 49 {
						t.Errorf("axis %d extent = %v, want about 50", i, extent)
					}
				} else if extent > 25 {
					t.Errorf("axis %d extent = %v, want about 20", i, extent)
				}
			}
		})
	}
}

func TestSphereMeshBounds(t *testing.T) {
	k := NewWithCells(64)
	mesh, err := k.ToMesh(k.Sphere(10))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	b := mesh.Bounds()
	size := b.Size()
	for _, d := range []float64{size.X, size.Y, size.Z} {
		if math.Abs(d-20) > 2 {
			t.Errorf("sphere mesh extent = %v, want about 20", d)
		}
	}
}

func TestConeBoundingBox(t *testing.T) {
	k := New()
	cone := k.Cone(30, 15, 5, kernel.AxisZ)
	min, max := cone.BoundingBox()
	if max[2]-min[2] < 29 {
		t.Errorf("cone height = %v, want about 30", max[2]-min[2])
	}
	if max[0]-min[0] < 29 {
		t.Errorf("cone width = %v, want about 30", max[0]-min[0])
	}
}

func TestTorusBoundingBox(t *testing.T) {
	k := New()
	torus := k.Torus(20, 5)
	min, max := torus.BoundingBox()
	if max[0]-min[0] < 49 {
		t.Errorf("torus outer diameter = %v, want about 50", max[0]-min[0])
	}
	if max[2]-min[2] > 11 {
		t.Errorf("torus thickness = %v, want about 10", max[2]-min[2])
	}
}

func TestDifferenceThroughHole(t *testing.T) {
	k := New()
	plate := k.Box(100, 50, 25)
	hole := k.Cylinder(30, 10, kernel.AxisZ)
	drilled := k.Difference(plate, hole)

	mesh, err := k.ToMesh(drilled)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	// The drilled plate still spans the plate's bounding box.
	b := mesh.Bounds()
	if b.Size().X < 98 {
		t.Errorf("drilled plate x extent = %v, want about 100", b.Size().X)
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	s := k.Translate(k.Sphere(5), 10, 20, 30)
	min, max := s.BoundingBox()
	cx := (min[0] + max[0]) / 2
	cy := (min[1] + max[1]) / 2
	cz := (min[2] + max[2]) / 2
	if math.Abs(cx-10) > 1 || math.Abs(cy-20) > 1 || math.Abs(cz-30) > 1 {
		t.Errorf("translated center = (%v, %v, %v), want (10, 20, 30)", cx, cy, cz)
	}
}

func TestScale(t *testing.T) {
	k := New()
	s := k.Scale(k.Box(10, 10, 10), 2, 1, 1)
	min, max := s.BoundingBox()
	if max[0]-min[0] < 19 {
		t.Errorf("scaled x extent = %v, want about 20", max[0]-min[0])
	}
	if max[1]-min[1] > 11 {
		t.Errorf("scaled y extent = %v, want about 10", max[1]-min[1])
	}
}
