// Package pagescale selects the standard drafting scale that fits a
// drawing's views into a page's content grid.
package pagescale

import "github.com/chazu/graphite/pkg/geom"

// Preferred is the ISO 5455 preferred scale set, descending. Selection
// snaps down to the nearest member, never up.
var Preferred = []float64{50, 20, 10, 5, 2, 1, 0.5, 0.25, 0.2, 0.1, 0.05, 0.02}

// Page describes the output sheet, millimetres.
type Page struct {
	WidthMM  float64
	HeightMM float64
	MarginMM float64 // border on every side
	GutterMM float64 // spacing between grid cells
}

// A4Landscape returns the default sheet.
func A4Landscape() Page {
	return Page{WidthMM: 297, HeightMM: 210, MarginMM: 10, GutterMM: 15}
}

// ContentSize returns the drawable area inside the margins.
func (p Page) ContentSize() (w, h float64) {
	return p.WidthMM - 2*p.MarginMM, p.HeightMM - 2*p.MarginMM
}

// CellSize returns the size of one cell of the 2x2 view grid.
func (p Page) CellSize() (w, h float64) {
	cw, ch := p.ContentSize()
	return (cw - p.GutterMM) / 2, (ch - p.GutterMM) / 2
}

// Select computes the largest uniform scale at which every view's
// real-world extent fits its grid cell, snapped down to the preferred
// set. Views with no extent are ignored; with no usable views the
// result is 1.
func Select(page Page, views []geom.Rect2) float64 {
	cellW, cellH := page.CellSize()
	if cellW <= 0 || cellH <= 0 {
		return Preferred[len(Preferred)-1]
	}

	limit := -1.0
	for _, v := range views {
		w, h := v.Width(), v.Height()
		if w <= 0 && h <= 0 {
			continue
		}
		s := 1e18
		if w > 0 && cellW/w < s {
			s = cellW / w
		}
		if h > 0 && cellH/h < s {
			s = cellH / h
		}
		if limit < 0 || s < limit {
			limit = s
		}
	}
	if limit < 0 {
		return 1
	}
	return SnapDown(limit)
}

// SnapDown returns the largest preferred scale not exceeding s, or the
// smallest preferred scale when s is below the whole set.
func SnapDown(s float64) float64 {
	for _, p := range Preferred {
		if p <= s {
			return p
		}
	}
	return Preferred[len(Preferred)-1]
}
