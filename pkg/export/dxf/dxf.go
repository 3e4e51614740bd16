// Package dxf serializes a composed drawing to DXF with one layer per
// drafting line kind. DXF model space is Y-up, so page coordinates are
// flipped about the horizontal axis on the way out.
package dxf

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/chazu/graphite/pkg/compose"
	"github.com/chazu/graphite/pkg/dimension"
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/linestyle"
)

const textHeightMM = 3.5

// LayerText holds annotation text; line work lives on the per-kind
// layers from the linestyle registry.
const LayerText = "TEXT"

// Build assembles the DXF drawing in memory.
func Build(d *compose.Drawing) (*drawing.Drawing, error) {
	out := dxf.NewDrawing()
	out.Header().LtScale = 1.0

	seen := map[string]bool{}
	for _, st := range linestyle.All() {
		if seen[st.Layer] {
			continue
		}
		seen[st.Layer] = true
		if _, err := out.AddLayer(st.Layer, layerColor(st.Kind), layerLineType(st.Kind), false); err != nil {
			return nil, fmt.Errorf("dxf: add layer %s: %w", st.Layer, err)
		}
	}
	if _, err := out.AddLayer(LayerText, color.White, table.LT_CONTINUOUS, false); err != nil {
		return nil, fmt.Errorf("dxf: add text layer: %w", err)
	}

	s := &serializer{out: out, d: d}
	if err := s.edges(); err != nil {
		return nil, err
	}
	if err := s.centerAndCutLines(); err != nil {
		return nil, err
	}
	if err := s.sections(); err != nil {
		return nil, err
	}
	if err := s.dimensions(); err != nil {
		return nil, err
	}
	if err := s.titleBlock(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save builds the drawing and writes it to path.
func Save(d *compose.Drawing, path string) error {
	out, err := Build(d)
	if err != nil {
		return err
	}
	if err := out.SaveAs(path); err != nil {
		return fmt.Errorf("dxf: save %s: %w", path, err)
	}
	return nil
}

func layerColor(k linestyle.Kind) color.ColorNumber {
	switch k {
	case linestyle.Hidden:
		return color.Cyan
	case linestyle.Center, linestyle.CuttingPlane:
		return color.Yellow
	case linestyle.Dimension, linestyle.Hatch:
		return color.Green
	default:
		return color.White
	}
}

func layerLineType(k linestyle.Kind) *table.LineType {
	switch k {
	case linestyle.Hidden:
		return table.LT_HIDDEN
	case linestyle.Center, linestyle.CuttingPlane:
		return table.LT_DASHDOT
	default:
		return table.LT_CONTINUOUS
	}
}

type serializer struct {
	out *drawing.Drawing
	d   *compose.Drawing
}

// mapPoint places a view-local point onto the page and flips to Y-up.
func (s *serializer) mapPoint(origin, p geom.Vec2) geom.Vec2 {
	q := origin.Add(p.Scale(s.d.Scale))
	return geom.Vec2{X: q.X, Y: s.d.Page.HeightMM - q.Y}
}

func (s *serializer) line(layer string, a, b geom.Vec2) error {
	if err := s.out.ChangeLayer(layer); err != nil {
		return fmt.Errorf("dxf: layer %s: %w", layer, err)
	}
	if _, err := s.out.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
		return fmt.Errorf("dxf: line: %w", err)
	}
	return nil
}

func (s *serializer) text(layer string, p geom.Vec2, str string) error {
	if err := s.out.ChangeLayer(layer); err != nil {
		return fmt.Errorf("dxf: layer %s: %w", layer, err)
	}
	if _, err := s.out.Text(str, p.X, p.Y, 0, textHeightMM); err != nil {
		return fmt.Errorf("dxf: text: %w", err)
	}
	return nil
}

func (s *serializer) edges() error {
	for _, pv := range s.d.Views {
		for _, l := range pv.View.Lines {
			st := linestyle.Get(linestyle.Hidden)
			if l.Visible {
				st = linestyle.Get(linestyle.Visible)
			}
			a := s.mapPoint(pv.Origin, l.Start)
			b := s.mapPoint(pv.Origin, l.End)
			if err := s.line(st.Layer, a, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *serializer) centerAndCutLines() error {
	for _, pv := range s.d.Views {
		for _, l := range pv.CenterLines {
			if err := s.line(linestyle.Get(linestyle.Center).Layer,
				s.mapPoint(pv.Origin, l.Start), s.mapPoint(pv.Origin, l.End)); err != nil {
				return err
			}
		}
		for _, t := range pv.CutTraces {
			a := s.mapPoint(pv.Origin, t.Start)
			b := s.mapPoint(pv.Origin, t.End)
			if err := s.line(linestyle.Get(linestyle.CuttingPlane).Layer, a, b); err != nil {
				return err
			}
			if t.Label == "" {
				continue
			}
			dir := b.Sub(a).Normalize()
			if dir == (geom.Vec2{}) {
				continue
			}
			off := dir.Scale(1.5 * textHeightMM)
			for _, p := range []geom.Vec2{a.Sub(off), b.Add(off)} {
				if err := s.text(LayerText, p, t.Label); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *serializer) sections() error {
	outlineLayer := linestyle.Get(linestyle.Visible).Layer
	hatchLayer := linestyle.Get(linestyle.Hatch).Layer
	for _, ps := range s.d.Sections {
		for _, c := range ps.Result.Contours {
			for i := 0; i+1 < len(c.Points); i++ {
				if err := s.line(outlineLayer,
					s.mapPoint(ps.Origin, c.Points[i]), s.mapPoint(ps.Origin, c.Points[i+1])); err != nil {
					return err
				}
			}
		}
		for _, l := range ps.HatchLns {
			if err := s.line(hatchLayer,
				s.mapPoint(ps.Origin, l.Start), s.mapPoint(ps.Origin, l.End)); err != nil {
				return err
			}
		}
		if ps.Label != "" {
			b := geom.EmptyRect2()
			for i := range ps.Result.Contours {
				b = b.Union(ps.Result.Contours[i].Bounds())
			}
			anchor := s.mapPoint(ps.Origin, geom.Vec2{X: b.Center().X, Y: b.Max.Y})
			anchor.Y -= 2 * textHeightMM
			if err := s.text(LayerText, anchor, fmt.Sprintf("%s-%s", ps.Label, ps.Label)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *serializer) dimensions() error {
	layer := linestyle.Get(linestyle.Dimension).Layer
	for i := range s.d.Dimensions {
		dim := &s.d.Dimensions[i]
		origin := s.d.ViewOrigin(dim.View)

		line := func(a, b geom.Vec2) error {
			return s.line(layer, s.mapPoint(origin, a), s.mapPoint(origin, b))
		}
		// Arrowheads become closed triangles of three lines; R12 has no
		// solid entity worth the trouble here.
		arrow := func(a dimension.Arrowhead) error {
			for j := 0; j < 3; j++ {
				if err := line(a[j], a[(j+1)%3]); err != nil {
					return err
				}
			}
			return nil
		}

		var err error
		switch data := dim.Data.(type) {
		case *dimension.LinearData:
			for _, seg := range [][2]geom.Vec2{data.DimLine, data.Ext1, data.Ext2} {
				if err = line(seg[0], seg[1]); err != nil {
					return err
				}
			}
			if err = arrow(data.Arrows[0]); err != nil {
				return err
			}
			if err = arrow(data.Arrows[1]); err != nil {
				return err
			}
		case *dimension.RadialData:
			if err = line(data.Leader[0], data.Leader[1]); err != nil {
				return err
			}
			if err = arrow(data.Arrow); err != nil {
				return err
			}
		case *dimension.AngularData:
			if err = arrow(data.Arrows[0]); err != nil {
				return err
			}
			if err = arrow(data.Arrows[1]); err != nil {
				return err
			}
		}

		if err = s.text(LayerText, s.mapPoint(origin, dim.TextPos), dim.Text); err != nil {
			return err
		}
	}
	return nil
}

func (s *serializer) titleBlock() error {
	page := s.d.Page
	const blockW, blockH = 70.0, 18.0
	x0 := page.WidthMM - page.MarginMM - blockW
	y0 := page.MarginMM // Y-up: margin above the bottom edge
	layer := linestyle.Get(linestyle.Visible).Layer

	corners := [][2]geom.Vec2{
		{{X: x0, Y: y0}, {X: x0 + blockW, Y: y0}},
		{{X: x0, Y: y0 + blockH}, {X: x0 + blockW, Y: y0 + blockH}},
		{{X: x0, Y: y0}, {X: x0, Y: y0 + blockH}},
		{{X: x0 + blockW, Y: y0}, {X: x0 + blockW, Y: y0 + blockH}},
		{{X: x0, Y: y0 + blockH/2}, {X: x0 + blockW, Y: y0 + blockH/2}},
	}
	for _, seg := range corners {
		if err := s.out.ChangeLayer(layer); err != nil {
			return fmt.Errorf("dxf: layer %s: %w", layer, err)
		}
		if _, err := s.out.Line(seg[0].X, seg[0].Y, 0, seg[1].X, seg[1].Y, 0); err != nil {
			return fmt.Errorf("dxf: line: %w", err)
		}
	}

	name := s.d.Title.Name
	if name == "" {
		name = "part"
	}
	if err := s.text(LayerText, geom.Vec2{X: x0 + 2, Y: y0 + blockH/2 + 2}, name); err != nil {
		return err
	}
	return s.text(LayerText, geom.Vec2{X: x0 + 2, Y: y0 + 2},
		fmt.Sprintf("SCALE %s  UNITS %s  %s", s.d.Title.ScaleText, s.d.Title.Units, s.d.Title.Sheet))
}
