// Package compose runs the full drawing pipeline: edge extraction,
// visibility classification, projection, dimensions, center lines,
// sections and scale selection, arranged onto a page. The result is a
// pure function of (recipe, mesh, options); serializers consume it
// without further geometry work.
package compose

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chazu/graphite/pkg/centerline"
	"github.com/chazu/graphite/pkg/dimension"
	"github.com/chazu/graphite/pkg/edges"
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/hatch"
	"github.com/chazu/graphite/pkg/kernel"
	"github.com/chazu/graphite/pkg/pagescale"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
	"github.com/chazu/graphite/pkg/section"
)

// Diagnostics aggregates recoverable defect counts from the whole
// pipeline. Nonzero counts degrade quality but never fail a drawing.
type Diagnostics struct {
	DegenerateEdges     int
	NonManifoldEdges    int
	DegenerateSegments  int
	OpenLoops           int
	NoiseLoops          int
	FallbackSections    int
	ExhaustedDimensions int
}

// PlacedView is one orthographic view positioned on the page. Line
// geometry stays in view-local millimetres; page position follows
// pagePoint = Origin + point * Scale.
type PlacedView struct {
	Kind        project.ViewKind
	Origin      geom.Vec2
	View        *project.View
	CenterLines []centerline.Line
	CutTraces   []CutTrace
}

// CutTrace is a cutting-plane trace drawn on a parent view.
type CutTrace struct {
	Label      string
	Start, End geom.Vec2 // view-local
}

// PlacedSection is one section view positioned on the page.
type PlacedSection struct {
	Label    string
	Origin   geom.Vec2
	Result   *section.Result
	HatchLns []hatch.Line
}

// TitleBlock carries the fields rendered in the page corner.
type TitleBlock struct {
	Name      string
	ScaleText string
	Units     string
	Sheet     string
}

// Drawing is the composed page, ready for serialization.
type Drawing struct {
	Name       string
	Page       pagescale.Page
	Scale      float64
	Views      []PlacedView
	Dimensions []dimension.Dimension
	Sections   []PlacedSection
	Title      TitleBlock
	Diag       Diagnostics
}

// Options configures the composer.
type Options struct {
	Logger    *slog.Logger
	Page      pagescale.Page
	Dimension dimension.Config
	Hatch     hatch.Pattern
	Sections  []section.Plane
}

// DefaultOptions returns the standard A4 setup.
func DefaultOptions() Options {
	return Options{
		Page:      pagescale.A4Landscape(),
		Dimension: dimension.DefaultConfig(),
		Hatch:     hatch.Default(),
	}
}

// Composer generates drawings. Safe for sequential reuse; each Compose
// call allocates its derived structures freshly.
type Composer struct {
	opts   Options
	logger *slog.Logger
}

// New returns a composer. A nil logger discards.
func New(opts Options) *Composer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Composer{opts: opts, logger: logger}
}

// Compose generates the complete drawing for a recipe and its
// tessellated final mesh. The mesh is required; recipes without
// geometry can still be sectioned directly via the section package.
func (c *Composer) Compose(ctx context.Context, r *recipe.Recipe, mesh *kernel.Mesh) (*Drawing, error) {
	if r == nil {
		return nil, fmt.Errorf("compose: nil recipe")
	}
	if mesh == nil || mesh.IsEmpty() {
		return nil, fmt.Errorf("compose: mesh is missing or empty")
	}

	d := &Drawing{
		Name: r.Name,
		Page: c.opts.Page,
	}

	// Per-view edge pipeline: extract, classify, project.
	extractor := edges.NewExtractor(mesh)
	classifier := edges.NewClassifier(mesh)
	xd := extractor.Diagnostics()
	d.Diag.DegenerateEdges = xd.Degenerate
	d.Diag.NonManifoldEdges = xd.NonManifold

	var viewBounds []geom.Rect2
	for _, kind := range project.AllViews {
		sight := project.SightDir(kind)
		cls, err := classifier.Classify(ctx, extractor.Extract(sight), sight)
		if err != nil {
			return nil, fmt.Errorf("compose: classify %s view: %w", kind, err)
		}
		view := project.Project(cls, kind)

		pv := PlacedView{
			Kind:        kind,
			View:        view,
			CenterLines: centerline.Generate(r, kind),
		}
		d.Views = append(d.Views, pv)
		viewBounds = append(viewBounds, viewExtent(&pv))

		c.logger.Debug("projected view", "view", kind.String(), "lines", len(view.Lines))
	}

	// Dimensions: generate then resolve collisions per view.
	eng := dimension.NewEngine(c.opts.Dimension, c.logger)
	d.Dimensions = eng.Generate(r)
	d.Diag.ExhaustedDimensions = eng.Resolve(d.Dimensions)

	// Sections: slice (or fall back), hatch, and trace the cutting
	// plane on the parent view.
	slicer := section.NewSlicer(c.logger)
	for _, plane := range c.opts.Sections {
		res := slicer.SliceOrFallback(r, mesh, plane)
		d.Diag.DegenerateSegments += res.Diag.DegenerateSegments
		d.Diag.OpenLoops += res.Diag.OpenLoops
		d.Diag.NoiseLoops += res.Diag.NoiseLoops
		if res.Fallback {
			d.Diag.FallbackSections++
		}

		ps := PlacedSection{
			Label:    plane.Label,
			Result:   res,
			HatchLns: hatch.Fill(res.Contours, c.opts.Hatch),
		}
		d.Sections = append(d.Sections, ps)
		viewBounds = append(viewBounds, sectionExtent(&ps))

		c.addCutTrace(d, plane)
	}

	// Scale, then place everything on the page grid.
	d.Scale = pagescale.Select(c.opts.Page, viewBounds)
	c.place(d)

	d.Title = TitleBlock{
		Name:      r.Name,
		ScaleText: ScaleText(d.Scale),
		Units:     "mm",
		Sheet:     "A4",
	}

	c.logger.Info("composed drawing",
		"part", r.Name,
		"scale", d.Title.ScaleText,
		"dimensions", len(d.Dimensions),
		"sections", len(d.Sections))
	return d, nil
}

// addCutTrace draws the cutting plane's chain-line trace across its
// parent view.
func (c *Composer) addCutTrace(d *Drawing, plane section.Plane) {
	for i := range d.Views {
		pv := &d.Views[i]
		if pv.Kind != plane.ParentView {
			continue
		}
		b := pv.View.Bounds
		if b.IsEmpty() {
			return
		}

		// The trace runs along the projection of the plane into the
		// parent view, through the plane position.
		n2 := project.ProjectDir(plane.Normal, pv.Kind).Normalize()
		if n2 == (geom.Vec2{}) {
			return // plane parallel to this view, no trace
		}
		dir := n2.Perp()
		center := project.ProjectPoint(plane.Position, pv.Kind)

		half := (b.Width() + b.Height()) / 2 // generous half-span
		pv.CutTraces = append(pv.CutTraces, CutTrace{
			Label: plane.Label,
			Start: center.Sub(dir.Scale(half)),
			End:   center.Add(dir.Scale(half)),
		})
		return
	}
}

// viewExtent returns a view's real-extent box including center lines.
func viewExtent(pv *PlacedView) geom.Rect2 {
	b := pv.View.Bounds
	for _, l := range pv.CenterLines {
		b = b.Extend(l.Start).Extend(l.End)
	}
	return b
}

// sectionExtent returns a section's real-extent box.
func sectionExtent(ps *PlacedSection) geom.Rect2 {
	b := geom.EmptyRect2()
	for i := range ps.Result.Contours {
		b = b.Union(ps.Result.Contours[i].Bounds())
	}
	return b
}

// place assigns page origins: front and right on the top row, top view
// below front (first-angle), sections in the remaining cell.
func (c *Composer) place(d *Drawing) {
	page := d.Page
	cellW, cellH := page.CellSize()

	cellOrigin := func(col, row int) geom.Vec2 {
		return geom.Vec2{
			X: page.MarginMM + float64(col)*(cellW+page.GutterMM),
			Y: page.MarginMM + float64(row)*(cellH+page.GutterMM),
		}
	}

	centerIn := func(cell geom.Vec2, b geom.Rect2) geom.Vec2 {
		if b.IsEmpty() {
			return cell
		}
		mid := b.Center().Scale(d.Scale)
		return geom.Vec2{
			X: cell.X + cellW/2 - mid.X,
			Y: cell.Y + cellH/2 - mid.Y,
		}
	}

	cells := map[project.ViewKind][2]int{
		project.Front: {0, 0},
		project.Right: {1, 0},
		project.Top:   {0, 1},
	}
	for i := range d.Views {
		pv := &d.Views[i]
		cell := cells[pv.Kind]
		pv.Origin = centerIn(cellOrigin(cell[0], cell[1]), viewExtent(pv))
	}
	for i := range d.Sections {
		ps := &d.Sections[i]
		ps.Origin = centerIn(cellOrigin(1, 1), sectionExtent(ps))
	}
}

// ViewOrigin returns the page origin for a view kind; serializers map
// dimension geometry through it. Missing kinds map to the page margin.
func (d *Drawing) ViewOrigin(k project.ViewKind) geom.Vec2 {
	for i := range d.Views {
		if d.Views[i].Kind == k {
			return d.Views[i].Origin
		}
	}
	return geom.Vec2{X: d.Page.MarginMM, Y: d.Page.MarginMM}
}

// ScaleText renders a scale factor as a drawing scale designation.
func ScaleText(s float64) string {
	if s >= 1 {
		return fmt.Sprintf("%s:1", dimension.FormatValue(s))
	}
	return fmt.Sprintf("1:%s", dimension.FormatValue(1/s))
}
