// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx) provide solid modeling and boolean operations
// behind this interface. The kernel abstraction allows swapping
// backends without changing the rest of the system.
//
// All primitives are centered at the origin; cylinders and cones take
// an explicit axis of revolution. Lengths are millimetres.
package kernel

// Axis constants for Cylinder and Cone.
const (
	AxisX = iota
	AxisY
	AxisZ
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, axis int) Solid
	Sphere(radius float64) Solid
	// Cone is a truncated cone; topRadius 0 means a full cone.
	Cone(height, bottomRadius, topRadius float64, axis int) Solid
	Torus(majorRadius, tubeRadius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	Scale(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
