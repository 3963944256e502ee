package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

var sampleTransforms = []Transform{
	{Scale: 1, TranslateX: -5000, TranslateY: -5000},
	{Scale: 0.1, TranslateX: 12.5, TranslateY: -3},
	{Scale: 2.5, TranslateX: 300, TranslateY: 40},
	{Scale: 10, TranslateX: -123456, TranslateY: 987},
}

func TestTransform_RoundTrip(t *testing.T) {
	points := []Point{{0, 0}, {100, 100}, {5000.25, -42}, {-1e4, 3.75}}
	for _, tr := range sampleTransforms {
		for _, l := range points {
			got := tr.ToLogical(tr.ToScreen(l))
			assert.InDelta(t, l.X, got.X, 1e-6)
			assert.InDelta(t, l.Y, got.Y, 1e-6)
		}
	}
}

func TestTransform_PanIsUnscaled(t *testing.T) {
	tr := Transform{Scale: 4, TranslateX: 10, TranslateY: 20}
	tr.Pan(5, -7)

	assert.Equal(t, 15.0, tr.TranslateX)
	assert.Equal(t, 13.0, tr.TranslateY)
	assert.Equal(t, 4.0, tr.Scale)
}

func TestTransform_ZoomKeepsPointUnderCursor(t *testing.T) {
	cursors := []Point{{0, 0}, {400, 300}, {1234.5, 17}}
	for _, base := range sampleTransforms {
		for _, p := range cursors {
			for _, dir := range []Direction{ZoomIn, ZoomOut} {
				tr := base
				before := tr.ToLogical(p)
				tr.ZoomAt(p, dir)
				after := tr.ToLogical(p)

				assert.InDelta(t, before.X, after.X, 1e-6)
				assert.InDelta(t, before.Y, after.Y, 1e-6)
			}
		}
	}
}

func TestTransform_ZoomStep(t *testing.T) {
	tr := Identity()
	tr.ZoomAt(Point{}, ZoomIn)
	assert.InDelta(t, 1.1, tr.Scale, eps)

	tr = Identity()
	tr.ZoomAt(Point{}, ZoomOut)
	assert.InDelta(t, 0.9, tr.Scale, eps)
}

func TestTransform_ScaleClamp(t *testing.T) {
	tr := Identity()
	for i := 0; i < 200; i++ {
		tr.ZoomAt(Point{X: 50, Y: 50}, ZoomOut)
		assert.GreaterOrEqual(t, tr.Scale, MinScale)
	}
	assert.Equal(t, MinScale, tr.Scale)

	tr = Identity()
	for i := 0; i < 200; i++ {
		tr.ZoomAt(Point{X: 50, Y: 50}, ZoomIn)
		assert.LessOrEqual(t, tr.Scale, MaxScale)
	}
	assert.Equal(t, MaxScale, tr.Scale)
}

func TestTransform_ZoomAtClampedScaleDoesNotDrift(t *testing.T) {
	tr := Transform{Scale: MaxScale, TranslateX: 7, TranslateY: 9}
	tr.ZoomAt(Point{X: 100, Y: 100}, ZoomIn)

	assert.Equal(t, MaxScale, tr.Scale)
	assert.InDelta(t, 7, tr.TranslateX, 1e-9)
	assert.InDelta(t, 9, tr.TranslateY, 1e-9)
}

func TestDirectionFromWheel(t *testing.T) {
	assert.Equal(t, ZoomOut, DirectionFromWheel(120))
	assert.Equal(t, ZoomIn, DirectionFromWheel(-120))
	assert.Equal(t, ZoomIn, DirectionFromWheel(0))
}

func TestTransform_CenterOn(t *testing.T) {
	tr := Transform{Scale: 2}
	tr.CenterOn(Point{X: 5000, Y: 5000}, Size{Width: 800, Height: 600})

	got := tr.ToScreen(Point{X: 5000, Y: 5000})
	assert.InDelta(t, 400, got.X, eps)
	assert.InDelta(t, 300, got.Y, eps)
	assert.Equal(t, 2.0, tr.Scale)
}

func TestTransform_Fit(t *testing.T) {
	tr := Identity()
	bounds := Rect{Min: Point{0, 0}, Max: Point{1000, 500}}
	tr.Fit(bounds, Size{Width: 520, Height: 520}, 10)

	assert.InDelta(t, 0.5, tr.Scale, eps)
	lo := tr.ToScreen(bounds.Min)
	hi := tr.ToScreen(bounds.Max)
	assert.InDelta(t, 10, lo.X, eps)
	assert.InDelta(t, 510, hi.X, eps)
	assert.InDelta(t, 260, (lo.Y+hi.Y)/2, eps)
}

func TestTransform_FitClampsScale(t *testing.T) {
	tr := Identity()
	tr.Fit(Rect{Min: Point{0, 0}, Max: Point{1, 1}}, Size{Width: 10000, Height: 10000}, 0)
	assert.Equal(t, MaxScale, tr.Scale)
}

func TestRect_Union(t *testing.T) {
	a := Rect{Min: Point{0, 0}, Max: Point{10, 10}}
	b := Rect{Min: Point{-5, 3}, Max: Point{4, 20}}
	assert.Equal(t, Rect{Min: Point{-5, 0}, Max: Point{10, 20}}, a.Union(b))
}
