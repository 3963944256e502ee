package editor

import (
	"math"

	"mindweaver/internal/diagram"
	"mindweaver/internal/viewport"
)

// HitTest classifies a screen point. Visible ports win over node bodies, node bodies
// over connections, and anything else is background. Later nodes paint on top, so
// they are tested first.
func (e *Editor) HitTest(screen viewport.Point) Target {
	nodes := e.diagram.Nodes()

	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if !e.PortsVisible(n.ID) {
			continue
		}
		for _, side := range diagram.Sides() {
			p := e.transform.ToScreen(diagram.AnchorPoint(n, side))
			if math.Hypot(screen.X-p.X, screen.Y-p.Y) <= e.opts.PortRadius {
				return Target{Kind: TargetPort, NodeID: n.ID, Side: side}
			}
		}
	}

	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if e.transform.RectToScreen(n.Bounds()).Contains(screen) {
			return Target{Kind: TargetNode, NodeID: n.ID}
		}
	}

	segs := e.diagram.Segments(e.transform)
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		tolerance := e.opts.EdgeTolerance + float64(s.Connection.Style.StrokeWidth)*e.transform.Scale/2
		if diagram.DistanceToSegment(screen, s.From, s.To) <= tolerance {
			return Target{Kind: TargetConnection, ConnectionID: s.Connection.ID}
		}
	}

	return Target{Kind: TargetBackground}
}
