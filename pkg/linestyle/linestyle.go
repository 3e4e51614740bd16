// Package linestyle is the registry of drafting line styles used
// throughout the drawing engine: stroke widths and dash patterns per
// ISO 128 line kind. The table is built once and read-only afterwards.
package linestyle

// Kind is a semantic line kind on an engineering drawing.
type Kind int

const (
	Visible      Kind = iota // visible edges, outlines
	Hidden                   // hidden edges
	Center                   // center lines, axes
	Dimension                // dimension, extension and leader lines
	Hatch                    // section hatching
	CuttingPlane             // cutting plane traces
)

func (k Kind) String() string {
	switch k {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Center:
		return "center"
	case Dimension:
		return "dimension"
	case Hatch:
		return "hatch"
	case CuttingPlane:
		return "cutting-plane"
	default:
		return "unknown"
	}
}

// Style describes how a line kind is stroked. Dash is an on/off run
// length pattern in millimetres at scale 1:1; empty means continuous.
type Style struct {
	Kind    Kind
	WidthMM float64
	Dash    []float64
	Color   string // SVG stroke color
	Layer   string // DXF layer name
}

// DashPattern returns the dash pattern scaled by the drawing scale, or
// nil for continuous lines.
func (s Style) DashPattern(scale float64) []float64 {
	if len(s.Dash) == 0 {
		return nil
	}
	out := make([]float64, len(s.Dash))
	for i, d := range s.Dash {
		out[i] = d * scale
	}
	return out
}

// registry maps each kind to its style. The chain pattern
// (long/gap/short/gap) follows ISO 128-24.
var registry = map[Kind]Style{
	Visible:      {Kind: Visible, WidthMM: 0.5, Color: "#000000", Layer: "OUTLINE"},
	Hidden:       {Kind: Hidden, WidthMM: 0.35, Dash: []float64{4, 2}, Color: "#555555", Layer: "HIDDEN"},
	Center:       {Kind: Center, WidthMM: 0.25, Dash: []float64{8, 2, 2, 2}, Color: "#b00000", Layer: "CENTERLINES"},
	Dimension:    {Kind: Dimension, WidthMM: 0.25, Color: "#0000b0", Layer: "DIMENSIONS"},
	Hatch:        {Kind: Hatch, WidthMM: 0.25, Color: "#000000", Layer: "OUTLINE"},
	CuttingPlane: {Kind: CuttingPlane, WidthMM: 0.5, Dash: []float64{8, 2, 2, 2}, Color: "#000000", Layer: "CENTERLINES"},
}

// Get returns the style for a kind. Unknown kinds get the visible
// style.
func Get(k Kind) Style {
	s, ok := registry[k]
	if !ok {
		return registry[Visible]
	}
	return s
}

// All returns every registered style in kind order.
func All() []Style {
	out := make([]Style, 0, len(registry))
	for k := Visible; k <= CuttingPlane; k++ {
		out = append(out, registry[k])
	}
	return out
}
