package editor

import (
	"mindweaver/internal/diagram"
	"mindweaver/internal/viewport"
)

// DragSession is one node drag, from pointer-down on the node body to pointer-up.
// Moves only record the latest pointer position; the node is written at most once per
// animation frame by Flush.
type DragSession struct {
	nodeID     int
	offset     viewport.Point
	pending    viewport.Point
	hasPending bool
}

// startDrag fixes the grab offset with the transform in effect at pointer-down. Later
// positions are converted with whatever transform is live when they are flushed.
func startDrag(n diagram.Node, screen viewport.Point, t viewport.Transform) *DragSession {
	return &DragSession{
		nodeID: n.ID,
		offset: t.ToLogical(screen).Sub(n.Position()),
	}
}

func (s *DragSession) NodeID() int { return s.nodeID }

// Offset is the logical distance between the grab point and the node's top-left corner.
func (s *DragSession) Offset() viewport.Point { return s.offset }

func (s *DragSession) Update(screen viewport.Point) {
	s.pending = screen
	s.hasPending = true
}

func (s *DragSession) HasPending() bool { return s.hasPending }

// Flush writes the most recent pointer position, converted with the live transform.
func (s *DragSession) Flush(live viewport.Transform, d *diagram.Diagram) bool {
	if !s.hasPending {
		return false
	}
	s.hasPending = false
	pos := live.ToLogical(s.pending).Sub(s.offset)
	return d.MoveNode(s.nodeID, pos.X, pos.Y)
}

type panSession struct {
	last viewport.Point
}

// step returns the screen delta since the previous pointer position.
func (p *panSession) step(screen viewport.Point) (dx, dy float64) {
	dx, dy = screen.X-p.last.X, screen.Y-p.last.Y
	p.last = screen
	return dx, dy
}
