package editor

import (
	"mindweaver/internal/diagram"
	"mindweaver/internal/viewport"
)

type NodeView struct {
	Node         diagram.Node
	Rect         viewport.Rect
	Hovered      bool
	Selected     bool
	PortsVisible bool
	// Ports holds the screen position of each side, indexed by diagram.Side.
	Ports [4]viewport.Point
}

type EdgeView struct {
	diagram.Segment
	Selected bool
}

// Frame is a read-only snapshot for the render surface. Every screen position in it is
// derived from the live transform at the time Frame was called.
type Frame struct {
	Transform viewport.Transform
	State     State
	Nodes     []NodeView
	Edges     []EdgeView
	// Pending is set while a connection is being built.
	Pending     bool
	PendingFrom diagram.Endpoint
	PendingAt   viewport.Point
}

func (e *Editor) Frame() Frame {
	f := Frame{
		Transform: e.transform,
		State:     e.State(),
	}

	nodes := e.diagram.Nodes()
	f.Nodes = make([]NodeView, 0, len(nodes))
	for _, n := range nodes {
		v := NodeView{
			Node:         n,
			Rect:         e.transform.RectToScreen(n.Bounds()),
			Hovered:      e.hovered == n.ID,
			Selected:     e.selection.Kind == SelectNode && e.selection.NodeID == n.ID,
			PortsVisible: e.PortsVisible(n.ID),
		}
		for _, side := range diagram.Sides() {
			v.Ports[side] = e.transform.ToScreen(diagram.AnchorPoint(n, side))
		}
		f.Nodes = append(f.Nodes, v)

		if src, ok := e.builder.Pending(); ok && src.NodeID == n.ID {
			f.Pending = true
			f.PendingFrom = src
			f.PendingAt = v.Ports[src.Side]
		}
	}

	segs := e.diagram.Segments(e.transform)
	f.Edges = make([]EdgeView, 0, len(segs))
	for _, s := range segs {
		f.Edges = append(f.Edges, EdgeView{
			Segment:  s,
			Selected: e.selection.Kind == SelectConnection && e.selection.ConnectionID == s.Connection.ID,
		})
	}
	return f
}
