package geom

import "math"

// Rect2 is an axis-aligned 2D bounding rectangle.
type Rect2 struct {
	Min, Max Vec2
}

// EmptyRect2 returns an inverted rectangle suitable as an accumulator
// for Extend.
func EmptyRect2() Rect2 {
	return Rect2{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// IsEmpty reports whether no point has been added.
func (r Rect2) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Extend grows the rectangle to include p.
func (r Rect2) Extend(p Vec2) Rect2 {
	return Rect2{
		Min: Vec2{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec2{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect2) Union(s Rect2) Rect2 {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return r.Extend(s.Min).Extend(s.Max)
}

// Width returns the horizontal extent, or 0 for an empty rectangle.
func (r Rect2) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent, or 0 for an empty rectangle.
func (r Rect2) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect2) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Inflate returns the rectangle grown by m on every side.
func (r Rect2) Inflate(m float64) Rect2 {
	return Rect2{
		Min: Vec2{r.Min.X - m, r.Min.Y - m},
		Max: Vec2{r.Max.X + m, r.Max.Y + m},
	}
}

// Intersects reports whether r and s overlap.
func (r Rect2) Intersects(s Rect2) bool {
	if r.IsEmpty() || s.IsEmpty() {
		return false
	}
	return r.Min.X <= s.Max.X && s.Min.X <= r.Max.X &&
		r.Min.Y <= s.Max.Y && s.Min.Y <= r.Max.Y
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect2) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Rect3 is an axis-aligned 3D bounding box.
type Rect3 struct {
	Min, Max Vec3
}

// EmptyRect3 returns an inverted box suitable as an accumulator for Extend.
func EmptyRect3() Rect3 {
	return Rect3{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// IsEmpty reports whether no point has been added.
func (r Rect3) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y || r.Min.Z > r.Max.Z
}

// Extend grows the box to include p.
func (r Rect3) Extend(p Vec3) Rect3 {
	return Rect3{
		Min: Vec3{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y), math.Min(r.Min.Z, p.Z)},
		Max: Vec3{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y), math.Max(r.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both r and s.
func (r Rect3) Union(s Rect3) Rect3 {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return r.Extend(s.Min).Extend(s.Max)
}

// Size returns the extents of the box along each axis.
func (r Rect3) Size() Vec3 {
	if r.IsEmpty() {
		return Vec3{}
	}
	return r.Max.Sub(r.Min)
}

// Center returns the midpoint of the box.
func (r Rect3) Center() Vec3 {
	return Vec3{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2, (r.Min.Z + r.Max.Z) / 2}
}

// Corners returns the eight corner points of the box.
func (r Rect3) Corners() [8]Vec3 {
	return [8]Vec3{
		{r.Min.X, r.Min.Y, r.Min.Z},
		{r.Max.X, r.Min.Y, r.Min.Z},
		{r.Min.X, r.Max.Y, r.Min.Z},
		{r.Max.X, r.Max.Y, r.Min.Z},
		{r.Min.X, r.Min.Y, r.Max.Z},
		{r.Max.X, r.Min.Y, r.Max.Z},
		{r.Min.X, r.Max.Y, r.Max.Z},
		{r.Max.X, r.Max.Y, r.Max.Z},
	}
}
