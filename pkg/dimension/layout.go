package dimension

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/project"
)

// placedBox wraps an accepted dimension footprint for the R-tree.
type placedBox struct {
	id   string
	rect rtreego.Rect
}

func (b *placedBox) Bounds() rtreego.Rect { return b.rect }

// toRTreeRect converts a Rect2, clamping degenerate extents to a hair
// above zero as rtreego rejects non-positive lengths.
func toRTreeRect(r geom.Rect2) rtreego.Rect {
	w := math.Max(r.Width(), 1e-6)
	h := math.Max(r.Height(), 1e-6)
	rect, err := rtreego.NewRect(rtreego.Point{r.Min.X, r.Min.Y}, []float64{w, h})
	if err != nil {
		// Only reachable with NaN bounds; treat as a point at origin.
		rect, _ = rtreego.NewRect(rtreego.Point{0, 0}, []float64{1e-6, 1e-6})
	}
	return rect
}

// Footprint returns the dimension's collision bounding box: dimension
// or leader line, arrowheads, and text. Extension lines are excluded;
// drafting convention allows them to cross.
func (e *Engine) Footprint(d *Dimension) geom.Rect2 {
	box := geom.EmptyRect2()
	switch data := d.Data.(type) {
	case *LinearData:
		box = box.Extend(data.DimLine[0]).Extend(data.DimLine[1])
		for _, a := range data.Arrows {
			for _, p := range a {
				box = box.Extend(p)
			}
		}
	case *RadialData:
		box = box.Extend(data.Leader[0]).Extend(data.Leader[1])
		for _, p := range data.Arrow {
			box = box.Extend(p)
		}
	case *AngularData:
		// Sample the arc; endpoints alone undercount bulging arcs.
		for i := 0; i <= 8; i++ {
			t := data.StartDeg + (data.EndDeg-data.StartDeg)*float64(i)/8
			rad := t * math.Pi / 180
			box = box.Extend(data.Vertex.Add(geom.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}.Scale(data.ArcRadius)))
		}
	}

	tw := textWidth(d.Text, e.cfg.TextHeightMM)
	th := e.cfg.TextHeightMM
	box = box.Extend(d.TextPos.Add(geom.Vec2{X: -tw / 2, Y: -th / 2}))
	box = box.Extend(d.TextPos.Add(geom.Vec2{X: tw / 2, Y: th / 2}))
	return box
}

// relocate moves a dimension one spacing increment further out:
// linear dimensions grow their perpendicular offset, radial dimensions
// extend their leader, angular dimensions grow their arc radius.
func (e *Engine) relocate(d *Dimension) {
	switch data := d.Data.(type) {
	case *LinearData:
		data.Offset += e.cfg.SpacingMM
	case *RadialData:
		data.LeaderLen += e.cfg.SpacingMM
	case *AngularData:
		data.ArcRadius += e.cfg.SpacingMM
	}
	e.rebuild(d)
}

// Resolve lays out dimensions per view, independently of other views.
// Dimensions place in priority order (descending, ID ascending for
// determinism); each is relocated outward while its footprint overlaps
// an already-accepted one, up to the attempt budget. A dimension that
// exhausts the budget is accepted at its last position and flagged.
// Returns the number of exhausted dimensions.
func (e *Engine) Resolve(dims []Dimension) int {
	byView := make(map[project.ViewKind][]*Dimension)
	for i := range dims {
		byView[dims[i].View] = append(byView[dims[i].View], &dims[i])
	}

	exhausted := 0
	for _, view := range project.AllViews {
		group := byView[view]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Priority != group[j].Priority {
				return group[i].Priority > group[j].Priority
			}
			return group[i].ID < group[j].ID
		})

		tree := rtreego.NewTree(2, 2, 8)
		for _, d := range group {
			attempts := 0
			for attempts < e.cfg.MaxAttempts {
				probe := toRTreeRect(e.Footprint(d).Inflate(e.cfg.MarginMM))
				if len(tree.SearchIntersect(probe)) == 0 {
					break
				}
				e.relocate(d)
				attempts++
			}
			if attempts >= e.cfg.MaxAttempts {
				d.Exhausted = true
				exhausted++
				e.logger.Warn("dimension placement exhausted retry budget",
					"id", d.ID, "view", d.View.String())
			}
			tree.Insert(&placedBox{id: d.ID, rect: toRTreeRect(e.Footprint(d))})
		}
	}
	return exhausted
}
