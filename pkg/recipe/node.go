package recipe

// NodeID identifies a primitive or operation within a recipe.
type NodeID string

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool { return id == "" }

// Axis names a principal axis of the recipe's local frame.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// PrimitiveKind enumerates the supported primitive solids.
type PrimitiveKind int

const (
	KindBox PrimitiveKind = iota
	KindCylinder
	KindSphere
	KindCone
	KindTorus
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	case KindCone:
		return "cone"
	case KindTorus:
		return "torus"
	default:
		return "unknown"
	}
}

// OpKind enumerates boolean operations.
type OpKind int

const (
	OpUnion OpKind = iota
	OpSubtract
	OpIntersect
)

func (k OpKind) String() string {
	switch k {
	case OpUnion:
		return "union"
	case OpSubtract:
		return "subtract"
	case OpIntersect:
		return "intersect"
	default:
		return "unknown"
	}
}
