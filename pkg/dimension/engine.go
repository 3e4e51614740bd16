package dimension

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
)

// Priorities: bounding-box dimensions place before feature dimensions.
const (
	priorityBBox    = 10
	priorityFeature = 5
)

// Engine generates and lays out dimensions for a recipe.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

// NewEngine returns an engine with the given config. A nil logger
// discards.
func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{cfg: cfg, logger: logger}
}

// featureView maps a feature's axis of revolution to the view showing
// its circular face.
func featureView(a recipe.Axis) project.ViewKind {
	switch a {
	case recipe.AxisX:
		return project.Right
	case recipe.AxisY:
		return project.Front
	default:
		return project.Top
	}
}

// Generate derives all dimensions for the recipe, in priority order:
// six bounding-box dimensions (width and height per view), then one
// diameter dimension per cylindrical or conical feature at or above
// the minimum diameter. Dimensions are not yet collision-resolved;
// call Resolve next.
func (e *Engine) Generate(r *recipe.Recipe) []Dimension {
	var dims []Dimension
	dims = append(dims, e.boundingBoxDims(r)...)
	dims = append(dims, e.featureDims(r)...)
	for i := range dims {
		e.rebuild(&dims[i])
	}
	return dims
}

// boundingBoxDims builds the width and height dimension for each view
// from the recipe's overall bounding box.
func (e *Engine) boundingBoxDims(r *recipe.Recipe) []Dimension {
	bounds := r.Bounds()
	if bounds.IsEmpty() {
		return nil
	}

	var dims []Dimension
	for _, view := range project.AllViews {
		rect := geom.EmptyRect2()
		for _, c := range bounds.Corners() {
			rect = rect.Extend(project.ProjectPoint(c, view))
		}

		width := rect.Width()
		height := rect.Height()

		// Width runs along the bottom edge, offset downward (page Y+).
		dims = append(dims, Dimension{
			ID:       fmt.Sprintf("%s-width", view),
			View:     view,
			Value:    width,
			Text:     FormatValue(width),
			Priority: priorityBBox,
			Data: &LinearData{
				Orientation: Horizontal,
				P1:          geom.Vec2{X: rect.Min.X, Y: rect.Max.Y},
				P2:          geom.Vec2{X: rect.Max.X, Y: rect.Max.Y},
				Side:        geom.Vec2{Y: 1},
				Offset:      e.cfg.OffsetMM,
			},
		})

		// Height runs along the left edge, offset leftward (page X-).
		dims = append(dims, Dimension{
			ID:       fmt.Sprintf("%s-height", view),
			View:     view,
			Value:    height,
			Text:     FormatValue(height),
			Priority: priorityBBox,
			Data: &LinearData{
				Orientation: Vertical,
				P1:          geom.Vec2{X: rect.Min.X, Y: rect.Min.Y},
				P2:          geom.Vec2{X: rect.Min.X, Y: rect.Max.Y},
				Side:        geom.Vec2{X: -1},
				Offset:      e.cfg.OffsetMM,
			},
		})
	}
	return dims
}

// featureDims builds a diameter dimension for each cylindrical or
// conical primitive, placed in the view where the feature's axis is
// perpendicular to the view plane.
func (e *Engine) featureDims(r *recipe.Recipe) []Dimension {
	var dims []Dimension
	for _, p := range r.Features() {
		dia := p.Diameter()
		if dia < e.cfg.MinFeatureDiameter {
			e.logger.Debug("skipping sub-threshold feature", "id", p.ID, "diameter", dia)
			continue
		}
		axis, _ := p.FeatureAxis()
		view := featureView(axis)
		dims = append(dims, Dimension{
			ID:       fmt.Sprintf("%s-dia", p.ID),
			View:     view,
			Value:    dia,
			Text:     FormatDiameter(dia),
			Priority: priorityFeature,
			Data: &RadialData{
				Subtype:    Diameter,
				Center:     project.ProjectPoint(p.Center(), view),
				Radius:     dia / 2,
				AngleDeg:   -45, // up-right in page frame
				LeaderLen:  e.cfg.LeaderLenMM,
				CenterMark: true,
			},
		})
	}
	return dims
}

// rebuild recomputes a dimension's derived geometry (lines, arrows,
// text anchor) from its current offset parameters. Called after
// generation and after every relocation.
func (e *Engine) rebuild(d *Dimension) {
	switch data := d.Data.(type) {
	case *LinearData:
		e.rebuildLinear(d, data)
	case *RadialData:
		e.rebuildRadial(d, data)
	case *AngularData:
		e.rebuildAngular(d, data)
	}
}

func (e *Engine) rebuildLinear(d *Dimension, data *LinearData) {
	u := data.P2.Sub(data.P1).Normalize()
	w := data.Side

	d1 := data.P1.Add(w.Scale(data.Offset))
	d2 := data.P2.Add(w.Scale(data.Offset))
	data.DimLine = [2]geom.Vec2{d1, d2}

	// Extension lines: gap from the feature, overhang past the
	// dimension line. They may cross other geometry by convention.
	data.Ext1 = [2]geom.Vec2{
		data.P1.Add(w.Scale(e.cfg.GapMM)),
		data.P1.Add(w.Scale(data.Offset + e.cfg.OverhangMM)),
	}
	data.Ext2 = [2]geom.Vec2{
		data.P2.Add(w.Scale(e.cfg.GapMM)),
		data.P2.Add(w.Scale(data.Offset + e.cfg.OverhangMM)),
	}

	data.Arrows = [2]Arrowhead{
		e.arrowhead(d1, u),
		e.arrowhead(d2, u.Scale(-1)),
	}

	mid := d1.Lerp(d2, 0.5)
	d.TextPos = mid.Add(w.Scale(1 + e.cfg.TextHeightMM/2))
}

func (e *Engine) rebuildRadial(d *Dimension, data *RadialData) {
	rad := data.AngleDeg * math.Pi / 180
	dir := geom.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}

	onCircle := data.Center.Add(dir.Scale(data.Radius))
	tail := onCircle.Add(dir.Scale(data.LeaderLen))
	data.Leader = [2]geom.Vec2{onCircle, tail}

	// Arrow tip on the circle, body along the leader.
	data.Arrow = e.arrowhead(onCircle, dir)

	d.TextPos = tail.Add(dir.Scale(textWidth(d.Text, e.cfg.TextHeightMM) / 2))
}

func (e *Engine) rebuildAngular(d *Dimension, data *AngularData) {
	s := data.StartDeg * math.Pi / 180
	t := data.EndDeg * math.Pi / 180
	p0 := data.Vertex.Add(geom.Vec2{X: math.Cos(s), Y: math.Sin(s)}.Scale(data.ArcRadius))
	p1 := data.Vertex.Add(geom.Vec2{X: math.Cos(t), Y: math.Sin(t)}.Scale(data.ArcRadius))

	// Arrowheads tangent to the arc at its endpoints.
	t0 := geom.Vec2{X: -math.Sin(s), Y: math.Cos(s)}
	t1 := geom.Vec2{X: -math.Sin(t), Y: math.Cos(t)}
	data.Arrows = [2]Arrowhead{
		e.arrowhead(p0, t0),
		e.arrowhead(p1, t1.Scale(-1)),
	}

	m := (s + t) / 2
	d.TextPos = data.Vertex.Add(geom.Vec2{X: math.Cos(m), Y: math.Sin(m)}.Scale(data.ArcRadius + e.cfg.TextHeightMM))
}

// arrowhead builds a filled triangle with its tip at p, body extending
// along dir (unit). The 3:1 length-to-width ratio is fixed.
func (e *Engine) arrowhead(p, dir geom.Vec2) Arrowhead {
	back := p.Add(dir.Scale(e.cfg.ArrowLengthMM))
	half := dir.Perp().Scale(e.cfg.ArrowWidthMM / 2)
	return Arrowhead{p, back.Add(half), back.Sub(half)}
}
