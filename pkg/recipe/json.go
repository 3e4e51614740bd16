package recipe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/chazu/graphite/pkg/geom"
)

// primitiveJSON is the wire form of a Primitive. Kind is a string tag
// selecting which params field is populated.
type primitiveJSON struct {
	ID        NodeID          `json:"id"`
	Kind      string          `json:"kind"`
	Params    json.RawMessage `json:"params"`
	Transform *Transform      `json:"transform,omitempty"`
}

// axisJSON mirrors Axis as a string for readability in recipe files.
type axisJSON struct {
	Axis string `json:"axis"`
}

func axisFromString(s string) (Axis, error) {
	switch s {
	case "", "z":
		return AxisZ, nil
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	default:
		return AxisZ, fmt.Errorf("unknown axis %q", s)
	}
}

// cylinderJSON and coneJSON carry the axis as a string.
type cylinderJSON struct {
	Diameter float64 `json:"diameter"`
	Height   float64 `json:"height"`
	Axis     string  `json:"axis,omitempty"`
}

type coneJSON struct {
	BottomDiameter float64 `json:"bottom_diameter"`
	TopDiameter    float64 `json:"top_diameter"`
	Height         float64 `json:"height"`
	Axis           string  `json:"axis,omitempty"`
}

// UnmarshalJSON decodes the kind-tagged primitive union.
func (p *Primitive) UnmarshalJSON(data []byte) error {
	var w primitiveJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.ID = w.ID
	p.Transform = w.Transform

	switch w.Kind {
	case "box":
		p.Kind = KindBox
		var sz struct {
			Size geom.Vec3 `json:"size"`
		}
		if err := json.Unmarshal(w.Params, &sz); err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		p.Params = BoxParams{Size: sz.Size}
	case "cylinder":
		p.Kind = KindCylinder
		var c cylinderJSON
		if err := json.Unmarshal(w.Params, &c); err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		axis, err := axisFromString(c.Axis)
		if err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		p.Params = CylinderParams{Diameter: c.Diameter, Height: c.Height, Axis: axis}
	case "sphere":
		p.Kind = KindSphere
		var s SphereParams
		if err := json.Unmarshal(w.Params, &s); err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		p.Params = s
	case "cone":
		p.Kind = KindCone
		var c coneJSON
		if err := json.Unmarshal(w.Params, &c); err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		axis, err := axisFromString(c.Axis)
		if err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		p.Params = ConeParams{
			BottomDiameter: c.BottomDiameter,
			TopDiameter:    c.TopDiameter,
			Height:         c.Height,
			Axis:           axis,
		}
	case "torus":
		p.Kind = KindTorus
		var t TorusParams
		if err := json.Unmarshal(w.Params, &t); err != nil {
			return fmt.Errorf("primitive %s: %w", w.ID, err)
		}
		p.Params = t
	default:
		return fmt.Errorf("primitive %s: unknown kind %q", w.ID, w.Kind)
	}
	return nil
}

// MarshalJSON encodes the kind-tagged primitive union.
func (p *Primitive) MarshalJSON() ([]byte, error) {
	var params any
	switch d := p.Params.(type) {
	case CylinderParams:
		params = cylinderJSON{Diameter: d.Diameter, Height: d.Height, Axis: d.Axis.String()}
	case ConeParams:
		params = coneJSON{
			BottomDiameter: d.BottomDiameter,
			TopDiameter:    d.TopDiameter,
			Height:         d.Height,
			Axis:           d.Axis.String(),
		}
	default:
		params = p.Params
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(primitiveJSON{
		ID:        p.ID,
		Kind:      p.Kind.String(),
		Params:    raw,
		Transform: p.Transform,
	})
}

// operationJSON is the wire form of an Operation with a string op tag.
type operationJSON struct {
	ID     NodeID `json:"id"`
	Op     string `json:"op"`
	Target NodeID `json:"target"`
	Tool   NodeID `json:"tool"`
}

// UnmarshalJSON decodes the string op tag.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var w operationJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	o.ID = w.ID
	o.Target = w.Target
	o.Tool = w.Tool
	switch w.Op {
	case "union":
		o.Op = OpUnion
	case "subtract":
		o.Op = OpSubtract
	case "intersect":
		o.Op = OpIntersect
	default:
		return fmt.Errorf("operation %s: unknown op %q", w.ID, w.Op)
	}
	return nil
}

// MarshalJSON encodes the string op tag.
func (o *Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(operationJSON{
		ID:     o.ID,
		Op:     o.Op.String(),
		Target: o.Target,
		Tool:   o.Tool,
	})
}

// Load reads a recipe from JSON, indexes it, and validates it. Blocking
// validation findings are returned as an error; warnings are dropped.
func Load(r io.Reader) (*Recipe, error) {
	var rec Recipe
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("recipe: decode: %w", err)
	}
	rec.Index()
	result := Validate(&rec)
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("recipe: invalid: %s", result.Errors[0].Error())
	}
	return &rec, nil
}

// LoadFile reads a recipe from a JSON file.
func LoadFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	defer f.Close()
	return Load(f)
}
