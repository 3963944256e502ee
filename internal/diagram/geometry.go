package diagram

import (
	"math"

	"mindweaver/internal/viewport"
)

// AnchorPoint returns the midpoint of the given edge of the node, in logical space.
func AnchorPoint(n Node, side Side) viewport.Point {
	d := n.Size.Dimensions()
	switch side {
	case SideTop:
		return viewport.Point{X: n.X + d.Width/2, Y: n.Y}
	case SideRight:
		return viewport.Point{X: n.X + d.Width, Y: n.Y + d.Height/2}
	case SideBottom:
		return viewport.Point{X: n.X + d.Width/2, Y: n.Y + d.Height}
	case SideLeft:
		return viewport.Point{X: n.X, Y: n.Y + d.Height/2}
	}
	return viewport.Point{X: n.X + d.Width/2, Y: n.Y + d.Height/2}
}

// Segment is a connection projected to screen space.
type Segment struct {
	Connection Connection
	From       viewport.Point
	To         viewport.Point
}

// Segments recomputes both ends of every connection from current node positions.
// Connections whose nodes are missing are skipped.
func Segments(nodes []Node, conns []Connection, t viewport.Transform) []Segment {
	byID := make(map[int]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	out := make([]Segment, 0, len(conns))
	for _, c := range conns {
		from, ok := byID[c.From.NodeID]
		if !ok {
			continue
		}
		to, ok := byID[c.To.NodeID]
		if !ok {
			continue
		}
		out = append(out, Segment{
			Connection: c,
			From:       t.ToScreen(AnchorPoint(from, c.From.Side)),
			To:         t.ToScreen(AnchorPoint(to, c.To.Side)),
		})
	}
	return out
}

// DistanceToSegment is the euclidean distance from p to the closest point on ab.
func DistanceToSegment(p, a, b viewport.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	u := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	u = math.Max(0, math.Min(1, u))
	cx, cy := a.X+u*dx, a.Y+u*dy
	return math.Hypot(p.X-cx, p.Y-cy)
}
