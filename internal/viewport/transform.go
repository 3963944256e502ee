// Package viewport maps between screen (viewport) pixels and logical canvas coordinates.
package viewport

import "math"

const (
	MinScale = 0.1
	MaxScale = 10.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle; Min is the top-left corner.
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Union returns the smallest rectangle covering r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)},
	}
}

type Direction int

const (
	ZoomIn Direction = iota
	ZoomOut
)

func (d Direction) factor() float64 {
	if d == ZoomOut {
		return ZoomOutFactor
	}
	return ZoomInFactor
}

// DirectionFromWheel follows the browser convention: positive deltaY scrolls down and zooms out.
func DirectionFromWheel(deltaY float64) Direction {
	if deltaY > 0 {
		return ZoomOut
	}
	return ZoomIn
}

// Transform is the affine mapping screen = logical*Scale + Translate.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

func Identity() Transform {
	return Transform{Scale: 1}
}

func (t Transform) ToLogical(screen Point) Point {
	return Point{
		X: (screen.X - t.TranslateX) / t.Scale,
		Y: (screen.Y - t.TranslateY) / t.Scale,
	}
}

func (t Transform) ToScreen(logical Point) Point {
	return Point{
		X: logical.X*t.Scale + t.TranslateX,
		Y: logical.Y*t.Scale + t.TranslateY,
	}
}

// RectToScreen projects a logical rectangle. Scale is always positive so corners keep their order.
func (t Transform) RectToScreen(r Rect) Rect {
	return Rect{Min: t.ToScreen(r.Min), Max: t.ToScreen(r.Max)}
}

// Pan moves the translation 1:1 with the pointer; the delta is not scaled.
func (t *Transform) Pan(dx, dy float64) {
	t.TranslateX += dx
	t.TranslateY += dy
}

// ZoomAt scales by one step around the screen point p. The logical point under p is
// computed before scaling and the translation is re-derived from it afterwards, so
// the content under the cursor does not move.
func (t *Transform) ZoomAt(p Point, dir Direction) {
	t.zoomTo(p, t.Scale*dir.factor())
}

func (t *Transform) zoomTo(p Point, scale float64) {
	anchor := t.ToLogical(p)
	t.Scale = ClampScale(scale)
	t.TranslateX = p.X - anchor.X*t.Scale
	t.TranslateY = p.Y - anchor.Y*t.Scale
}

// CenterOn keeps the scale and places the logical point at the middle of a viewport.
func (t *Transform) CenterOn(logical Point, view Size) {
	t.TranslateX = view.Width/2 - logical.X*t.Scale
	t.TranslateY = view.Height/2 - logical.Y*t.Scale
}

// Fit chooses the largest scale that shows bounds inside the viewport with the given
// screen padding, then centers bounds.
func (t *Transform) Fit(bounds Rect, view Size, padding float64) {
	w, h := bounds.Width(), bounds.Height()
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	sx := (view.Width - 2*padding) / w
	sy := (view.Height - 2*padding) / h
	s := math.Min(sx, sy)
	if s <= 0 {
		s = 1
	}
	t.Scale = ClampScale(s)
	t.CenterOn(Point{bounds.Min.X + bounds.Width()/2, bounds.Min.Y + bounds.Height()/2}, view)
}

func ClampScale(s float64) float64 {
	return math.Min(math.Max(s, MinScale), MaxScale)
}
