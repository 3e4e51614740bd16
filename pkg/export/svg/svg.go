// Package svg serializes a composed drawing to SVG, one layered group
// per drafting line kind, with a viewBox sized to the physical page in
// millimetres.
package svg

import (
	"fmt"
	"io"
	"strings"

	"zappem.net/pub/graphics/svgof"

	"github.com/chazu/graphite/pkg/compose"
	"github.com/chazu/graphite/pkg/dimension"
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/linestyle"
)

// textHeightMM is the on-paper annotation text height, independent of
// the drawing scale.
const textHeightMM = 3.5

// Write serializes the drawing to w.
func Write(w io.Writer, d *compose.Drawing) error {
	canvas := svgof.New(w)
	canvas.StartviewUnit(d.Page.WidthMM, d.Page.HeightMM, "mm", 0, 0, d.Page.WidthMM, d.Page.HeightMM)

	s := &serializer{canvas: canvas, d: d}
	s.layer(linestyle.Visible, s.edgeLines(true))
	s.layer(linestyle.Hidden, s.edgeLines(false))
	s.layer(linestyle.Center, s.centerLines())
	s.layer(linestyle.Hatch, s.hatchLines())
	s.layer(linestyle.CuttingPlane, s.cutLines())
	s.cutLabels()
	s.dimensionLayer()
	s.sectionOutlines()
	s.titleBlock()

	canvas.End()
	return nil
}

type segment struct {
	a, b geom.Vec2
}

type serializer struct {
	canvas *svgof.SVG
	d      *compose.Drawing
}

// mapPoint places a view-local point onto the page.
func (s *serializer) mapPoint(origin, p geom.Vec2) geom.Vec2 {
	return origin.Add(p.Scale(s.d.Scale))
}

// strokeStyle renders a line style as SVG presentation attributes.
// Stroke widths are paper widths and do not scale with the drawing.
func strokeStyle(st linestyle.Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, "stroke:%s;stroke-width:%g;fill:none", st.Color, st.WidthMM)
	if dash := st.DashPattern(1); dash != nil {
		parts := make([]string, len(dash))
		for i, v := range dash {
			parts[i] = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(&b, ";stroke-dasharray:%s", strings.Join(parts, ","))
	}
	return b.String()
}

// layer emits one group of segments under the style of a line kind.
func (s *serializer) layer(kind linestyle.Kind, segs []segment) {
	if len(segs) == 0 {
		return
	}
	st := linestyle.Get(kind)
	s.canvas.Gid(kind.String())
	style := strokeStyle(st)
	for _, seg := range segs {
		s.canvas.Line(seg.a.X, seg.a.Y, seg.b.X, seg.b.Y, style)
	}
	s.canvas.Gend()
}

// edgeLines collects projected edges across all views by visibility.
func (s *serializer) edgeLines(visible bool) []segment {
	var out []segment
	for _, pv := range s.d.Views {
		for _, l := range pv.View.Lines {
			if l.Visible != visible {
				continue
			}
			out = append(out, segment{
				a: s.mapPoint(pv.Origin, l.Start),
				b: s.mapPoint(pv.Origin, l.End),
			})
		}
	}
	return out
}

func (s *serializer) centerLines() []segment {
	var out []segment
	for _, pv := range s.d.Views {
		for _, l := range pv.CenterLines {
			out = append(out, segment{
				a: s.mapPoint(pv.Origin, l.Start),
				b: s.mapPoint(pv.Origin, l.End),
			})
		}
	}
	return out
}

func (s *serializer) hatchLines() []segment {
	var out []segment
	for _, ps := range s.d.Sections {
		for _, l := range ps.HatchLns {
			out = append(out, segment{
				a: s.mapPoint(ps.Origin, l.Start),
				b: s.mapPoint(ps.Origin, l.End),
			})
		}
	}
	return out
}

func (s *serializer) cutLines() []segment {
	var out []segment
	for _, pv := range s.d.Views {
		for _, t := range pv.CutTraces {
			out = append(out, segment{
				a: s.mapPoint(pv.Origin, t.Start),
				b: s.mapPoint(pv.Origin, t.End),
			})
		}
	}
	return out
}

// cutLabels writes the plane letter at both ends of each cutting-plane
// trace, nudged outward along the trace.
func (s *serializer) cutLabels() {
	for _, pv := range s.d.Views {
		for _, t := range pv.CutTraces {
			if t.Label == "" {
				continue
			}
			a := s.mapPoint(pv.Origin, t.Start)
			b := s.mapPoint(pv.Origin, t.End)
			dir := b.Sub(a).Normalize()
			if dir == (geom.Vec2{}) {
				continue
			}
			off := dir.Scale(1.5 * textHeightMM)
			for _, p := range []geom.Vec2{a.Sub(off), b.Add(off)} {
				s.text(p.X, p.Y, t.Label, "middle")
			}
		}
	}
}

// sectionOutlines draws section contours with the visible style and
// the section label beneath each.
func (s *serializer) sectionOutlines() {
	if len(s.d.Sections) == 0 {
		return
	}
	st := linestyle.Get(linestyle.Visible)
	style := strokeStyle(st)
	s.canvas.Gid("sections")
	for _, ps := range s.d.Sections {
		for _, c := range ps.Result.Contours {
			xs := make([]float64, len(c.Points))
			ys := make([]float64, len(c.Points))
			for i, p := range c.Points {
				q := s.mapPoint(ps.Origin, p)
				xs[i], ys[i] = q.X, q.Y
			}
			s.canvas.Polygon(xs, ys, style)
		}
		if ps.Label != "" {
			b := sectionBounds(ps)
			anchor := s.mapPoint(ps.Origin, geom.Vec2{X: b.Center().X, Y: b.Max.Y})
			s.text(anchor.X, anchor.Y+2*textHeightMM, fmt.Sprintf("%s-%s", ps.Label, ps.Label), "middle")
		}
	}
	s.canvas.Gend()
}

// dimensionLayer draws dimension lines, extension lines, arrowheads
// and value text.
func (s *serializer) dimensionLayer() {
	if len(s.d.Dimensions) == 0 {
		return
	}
	st := linestyle.Get(linestyle.Dimension)
	style := strokeStyle(st)
	fill := fmt.Sprintf("fill:%s;stroke:none", st.Color)

	s.canvas.Gid("dimension")
	for i := range s.d.Dimensions {
		dim := &s.d.Dimensions[i]
		origin := s.d.ViewOrigin(dim.View)

		line := func(a, b geom.Vec2) {
			p := s.mapPoint(origin, a)
			q := s.mapPoint(origin, b)
			s.canvas.Line(p.X, p.Y, q.X, q.Y, style)
		}
		arrow := func(a dimension.Arrowhead) {
			xs := make([]float64, 3)
			ys := make([]float64, 3)
			for j, p := range a {
				q := s.mapPoint(origin, p)
				xs[j], ys[j] = q.X, q.Y
			}
			s.canvas.Polygon(xs, ys, fill)
		}

		switch data := dim.Data.(type) {
		case *dimension.LinearData:
			line(data.DimLine[0], data.DimLine[1])
			line(data.Ext1[0], data.Ext1[1])
			line(data.Ext2[0], data.Ext2[1])
			arrow(data.Arrows[0])
			arrow(data.Arrows[1])
		case *dimension.RadialData:
			line(data.Leader[0], data.Leader[1])
			arrow(data.Arrow)
			if data.CenterMark {
				const m = 2.0
				c := data.Center
				line(geom.Vec2{X: c.X - m, Y: c.Y}, geom.Vec2{X: c.X + m, Y: c.Y})
				line(geom.Vec2{X: c.X, Y: c.Y - m}, geom.Vec2{X: c.X, Y: c.Y + m})
			}
		case *dimension.AngularData:
			arrow(data.Arrows[0])
			arrow(data.Arrows[1])
		}

		pos := s.mapPoint(origin, dim.TextPos)
		s.text(pos.X, pos.Y, dim.Text, "middle")
	}
	s.canvas.Gend()
}

// text emits annotation text at a fixed paper height.
func (s *serializer) text(x, y float64, t, anchor string) {
	s.canvas.Text(x, y, t,
		fmt.Sprintf("font-family:sans-serif;font-size:%gpx;text-anchor:%s;fill:#000000", textHeightMM, anchor))
}

// titleBlock draws the part name, scale and units in the lower-right
// page corner.
func (s *serializer) titleBlock() {
	page := s.d.Page
	const blockW, blockH = 70.0, 18.0
	x0 := page.WidthMM - page.MarginMM - blockW
	y0 := page.HeightMM - page.MarginMM - blockH

	st := linestyle.Get(linestyle.Visible)
	style := strokeStyle(st)
	s.canvas.Gid("title-block")
	s.canvas.Line(x0, y0, x0+blockW, y0, style)
	s.canvas.Line(x0, y0+blockH, x0+blockW, y0+blockH, style)
	s.canvas.Line(x0, y0, x0, y0+blockH, style)
	s.canvas.Line(x0+blockW, y0, x0+blockW, y0+blockH, style)
	s.canvas.Line(x0, y0+blockH/2, x0+blockW, y0+blockH/2, style)

	name := s.d.Title.Name
	if name == "" {
		name = "part"
	}
	s.text(x0+blockW/2, y0+blockH/2-2, name, "middle")
	s.text(x0+blockW/2, y0+blockH-2,
		fmt.Sprintf("SCALE %s  UNITS %s  %s", s.d.Title.ScaleText, s.d.Title.Units, s.d.Title.Sheet), "middle")
	s.canvas.Gend()
}

func sectionBounds(ps compose.PlacedSection) geom.Rect2 {
	b := geom.EmptyRect2()
	for i := range ps.Result.Contours {
		b = b.Union(ps.Result.Contours[i].Bounds())
	}
	return b
}
