package render

import (
	"math"

	"github.com/fogleman/gg"

	"mindweaver/internal/diagram"
	"mindweaver/internal/editor"
	"mindweaver/internal/viewport"
)

const (
	arrowSize  = 10.0 // screen px
	arrowAngle = 0.5
	markerSize = 4.0
	portSize   = 5.0
)

// raster draws the frame onto a cols x rows*2 pixel grid; each terminal cell covers two
// vertically stacked pixels.
type raster struct {
	dc           *gg.Context
	cellW, cellH float64
}

func (r *raster) reset(cols, rows int) {
	if r.dc == nil || r.dc.Width() != cols || r.dc.Height() != rows*2 {
		r.dc = gg.NewContext(cols, rows*2)
		return
	}
	r.dc.SetRGBA(0, 0, 0, 0)
	r.dc.Clear()
}

func (r *raster) px(p viewport.Point) (float64, float64) {
	return p.X / r.cellW, p.Y / (r.cellH / 2)
}

// lengths scale by the horizontal cell size so strokes stay visible on either axis.
func (r *raster) toPx(v float64) float64 { return v / r.cellW }

func (r *raster) draw(f editor.Frame) {
	for _, e := range f.Edges {
		r.drawEdge(e, f.Transform.Scale)
	}
	for _, n := range f.Nodes {
		r.drawNode(n, f.Transform.Scale)
	}
	if f.Pending {
		x, y := r.px(f.PendingAt)
		r.dc.SetColor(parseHex(pendingPort))
		r.dc.DrawCircle(x, y, math.Max(r.toPx(portSize*2), 1))
		r.dc.Fill()
	}
}

func (r *raster) drawEdge(e editor.EdgeView, scale float64) {
	dc := r.dc
	style := e.Connection.Style
	x1, y1 := r.px(e.From)
	x2, y2 := r.px(e.To)
	width := math.Max(r.toPx(float64(style.StrokeWidth)*scale), 1)

	if e.Selected {
		dc.SetColor(parseHex(edgeHalo))
		dc.SetLineWidth(width + 2)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	dc.SetColor(parseHex(style.Color))
	dc.SetLineWidth(width)
	if style.LineStyle == diagram.LineDashed {
		dc.SetDash(3*width, 2*width)
	}
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
	dc.SetDash()

	switch style.Arrow {
	case diagram.ArrowHead:
		r.drawArrow(x1, y1, x2, y2, math.Max(r.toPx(arrowSize*scale), 1.5))
	case diagram.ArrowCircle:
		dc.DrawCircle(x2, y2, math.Max(r.toPx(markerSize*scale), 0.8))
		dc.Fill()
	}
}

func (r *raster) drawArrow(fx, fy, tx, ty, size float64) {
	dx := tx - fx
	dy := ty - fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	dc := r.dc
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*dx+size*dy*arrowAngle, ty-size*dy-size*dx*arrowAngle)
	dc.LineTo(tx-size*dx-size*dy*arrowAngle, ty-size*dy+size*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

func (r *raster) drawNode(n editor.NodeView, scale float64) {
	dc := r.dc
	x, y := r.px(n.Rect.Min)
	x2, y2 := r.px(n.Rect.Max)
	radius := math.Min(r.toPx(8*scale), math.Min(x2-x, y2-y)/2)

	dc.DrawRoundedRectangle(x, y, x2-x, y2-y, radius)
	dc.SetColor(parseHex(n.Node.Color.Hex()))
	dc.FillPreserve()
	switch {
	case n.Selected:
		dc.SetColor(parseHex(selectedBorder))
		dc.SetLineWidth(1.5)
		dc.Stroke()
	case n.Hovered:
		dc.SetColor(parseHex(hoveredBorder))
		dc.SetLineWidth(1)
		dc.Stroke()
	default:
		dc.ClearPath()
	}

	if !n.PortsVisible {
		return
	}
	pr := math.Max(r.toPx(portSize), 0.8)
	for _, p := range n.Ports {
		px, py := r.px(p)
		dc.DrawCircle(px, py, pr)
		dc.SetColor(parseHex(portFill))
		dc.FillPreserve()
		dc.SetColor(parseHex(portStroke))
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}
}
