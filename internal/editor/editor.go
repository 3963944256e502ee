// Package editor owns the interactive state of a diagram: the viewport transform, the
// active gesture, the connection builder, hover and selection. All mutations happen
// synchronously in Handle or Tick, from a single goroutine.
package editor

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"mindweaver/internal/diagram"
	"mindweaver/internal/viewport"
)

type State int

const (
	StateIdle State = iota
	StateDraggingNode
	StatePanning
	StateConnecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraggingNode:
		return "dragging"
	case StatePanning:
		return "panning"
	case StateConnecting:
		return "connecting"
	}
	return "unknown"
}

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectNode
	SelectConnection
)

type Selection struct {
	Kind         SelectionKind
	NodeID       int
	ConnectionID string
}

type Options struct {
	Initial     viewport.Transform
	SpawnOrigin viewport.Point
	SpawnJitter float64
	// PortRadius and EdgeTolerance are hit distances in screen pixels.
	PortRadius    float64
	EdgeTolerance float64
	// NodeColor, NodeSize and ConnectionStyle apply to newly created items.
	NodeColor       diagram.NodeColor
	NodeSize        diagram.SizeClass
	ConnectionStyle diagram.Style
	Rand            *rand.Rand
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Initial:       viewport.Transform{Scale: 1, TranslateX: -5000, TranslateY: -5000},
		SpawnOrigin:   viewport.Point{X: 5000, Y: 5000},
		SpawnJitter:   200,
		PortRadius:      8,
		EdgeTolerance:   6,
		NodeColor:       diagram.ColorBlue,
		NodeSize:        diagram.DefaultSize,
		ConnectionStyle: diagram.DefaultStyle(),
	}
}

type Editor struct {
	diagram   *diagram.Diagram
	transform viewport.Transform
	opts      Options
	logger    *slog.Logger

	drag      *DragSession
	pan       *panSession
	builder   Builder
	hovered   int
	selection Selection
}

func New(opts Options) *Editor {
	if opts.Initial.Scale == 0 {
		opts.Initial.Scale = 1
	}
	if opts.ConnectionStyle == (diagram.Style{}) {
		opts.ConnectionStyle = diagram.DefaultStyle()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Editor{
		diagram:   diagram.New(),
		transform: opts.Initial,
		opts:      opts,
		logger:    logger,
	}
	e.diagram.Subscribe(e.onChange)
	return e
}

// Diagram exposes the model to the editor panel. Writes made through it keep the
// editor's selection, hover and gestures consistent.
func (e *Editor) Diagram() *diagram.Diagram { return e.diagram }

func (e *Editor) Transform() viewport.Transform { return e.transform }

func (e *Editor) State() State {
	switch {
	case e.drag != nil:
		return StateDraggingNode
	case e.pan != nil:
		return StatePanning
	case e.builder.pending:
		return StateConnecting
	}
	return StateIdle
}

// Drag returns the active drag session, if any.
func (e *Editor) Drag() (*DragSession, bool) { return e.drag, e.drag != nil }

// PendingSource returns the source endpoint while a connection is being built.
func (e *Editor) PendingSource() (diagram.Endpoint, bool) { return e.builder.Pending() }

func (e *Editor) Hovered() int { return e.hovered }

func (e *Editor) Selection() Selection { return e.selection }

// PortsVisible reports whether the node's ports are exposed: it is hovered or
// selected, or a connection is pending and any node may be the target.
func (e *Editor) PortsVisible(nodeID int) bool {
	if e.hovered == nodeID || e.builder.pending {
		return true
	}
	return e.selection.Kind == SelectNode && e.selection.NodeID == nodeID
}

func (e *Editor) Handle(ev Event) {
	switch ev.Type {
	case EventDown:
		e.pointerDown(ev)
	case EventMove:
		e.pointerMove(ev)
	case EventUp:
		e.pointerUp()
	case EventWheel:
		e.wheel(ev)
	case EventClick:
		e.click(ev)
	}
}

// NeedsFrame reports whether a drag position is waiting for the next animation frame.
func (e *Editor) NeedsFrame() bool {
	return e.drag != nil && e.drag.HasPending()
}

// Tick marks an animation frame boundary. It writes at most one node position.
func (e *Editor) Tick() bool {
	if e.drag == nil {
		return false
	}
	return e.drag.Flush(e.transform, e.diagram)
}

func (e *Editor) pointerDown(ev Event) {
	if st := e.State(); st != StateIdle {
		e.logger.Debug("gesture ignored", "state", st, "target", ev.Target.Kind)
		return
	}
	switch ev.Target.Kind {
	case TargetNode:
		n, ok := e.diagram.Node(ev.Target.NodeID)
		if !ok {
			return
		}
		e.drag = startDrag(n, ev.Screen, e.transform)
		e.logger.Debug("drag started", "node", n.ID, "offset_x", e.drag.Offset().X, "offset_y", e.drag.Offset().Y)
	case TargetBackground:
		e.pan = &panSession{last: ev.Screen}
		e.logger.Debug("pan started")
	}
}

func (e *Editor) pointerMove(ev Event) {
	switch {
	case e.drag != nil:
		e.drag.Update(ev.Screen)
	case e.pan != nil:
		dx, dy := e.pan.step(ev.Screen)
		e.transform.Pan(dx, dy)
	default:
		switch ev.Target.Kind {
		case TargetNode, TargetPort:
			e.hovered = ev.Target.NodeID
		default:
			e.hovered = 0
		}
	}
}

// pointerUp ends the active gesture. A drag's last pending position is written first.
func (e *Editor) pointerUp() {
	if e.drag != nil {
		e.drag.Flush(e.transform, e.diagram)
		e.logger.Debug("drag ended", "node", e.drag.nodeID)
		e.drag = nil
	}
	if e.pan != nil {
		e.pan = nil
		e.logger.Debug("pan ended")
	}
}

func (e *Editor) wheel(ev Event) {
	if e.pan != nil {
		return
	}
	e.transform.ZoomAt(ev.Screen, viewport.DirectionFromWheel(ev.DeltaY))
}

func (e *Editor) click(ev Event) {
	if e.drag != nil || e.pan != nil {
		return
	}
	switch ev.Target.Kind {
	case TargetPort:
		e.clickPort(ev.Target.endpoint())
	case TargetBackground:
		e.clickBackground()
	case TargetNode:
		// while connecting, a body click falls through to the canvas
		if e.builder.pending {
			e.clickBackground()
			return
		}
		if _, ok := e.diagram.Node(ev.Target.NodeID); ok {
			e.selection = Selection{Kind: SelectNode, NodeID: ev.Target.NodeID}
		}
	case TargetConnection:
		if e.builder.pending {
			return
		}
		if _, ok := e.diagram.Connection(ev.Target.ConnectionID); ok {
			e.selection = Selection{Kind: SelectConnection, ConnectionID: ev.Target.ConnectionID}
		}
	}
}

func (e *Editor) clickBackground() {
	if e.builder.Cancel() {
		e.hovered = 0
		e.logger.Debug("connection cancelled")
	}
	e.selection = Selection{}
}

func (e *Editor) clickPort(p diagram.Endpoint) {
	if _, ok := e.diagram.Node(p.NodeID); !ok {
		return
	}
	src, wasPending := e.builder.Pending()
	c, ok := e.builder.Click(p, e.diagram, e.opts.ConnectionStyle)
	switch {
	case !wasPending:
		e.logger.Debug("connection started", "node", p.NodeID, "side", p.Side)
	case ok:
		e.hovered = 0
		e.logger.Debug("connection created", "id", c.ID, "from", src.NodeID, "to", p.NodeID)
	case p.NodeID == src.NodeID:
		e.logger.Debug("self connection rejected", "node", p.NodeID)
	}
}

// CancelConnection drops a pending connection source.
func (e *Editor) CancelConnection() bool {
	return e.builder.Cancel()
}

// ClearSelection deselects without touching the model.
func (e *Editor) ClearSelection() { e.selection = Selection{} }

// SelectNode selects an existing node.
func (e *Editor) SelectNode(id int) bool {
	if _, ok := e.diagram.Node(id); !ok {
		return false
	}
	e.selection = Selection{Kind: SelectNode, NodeID: id}
	return true
}

// AddNode creates a node at a random offset around the spawn origin and selects it.
func (e *Editor) AddNode() diagram.Node {
	label := fmt.Sprintf("Element %d", e.diagram.NodeCount()+1)
	at := viewport.Point{
		X: e.opts.SpawnOrigin.X + e.jitter(),
		Y: e.opts.SpawnOrigin.Y + e.jitter(),
	}
	n := e.diagram.AddNode(label, at)
	if n.Color != e.opts.NodeColor || n.Size != e.opts.NodeSize {
		e.diagram.UpdateNode(n.ID, diagram.NodePatch{Color: &e.opts.NodeColor, Size: &e.opts.NodeSize})
		n, _ = e.diagram.Node(n.ID)
	}
	e.selection = Selection{Kind: SelectNode, NodeID: n.ID}
	e.logger.Debug("node added", "id", n.ID, "x", n.X, "y", n.Y)
	return n
}

func (e *Editor) jitter() float64 {
	f := rand.Float64
	if e.opts.Rand != nil {
		f = e.opts.Rand.Float64
	}
	return (f()*2 - 1) * e.opts.SpawnJitter
}

// DeleteSelection removes the selected node (with its connections) or connection.
func (e *Editor) DeleteSelection() bool {
	switch e.selection.Kind {
	case SelectNode:
		return e.diagram.RemoveNode(e.selection.NodeID)
	case SelectConnection:
		return e.diagram.RemoveConnection(e.selection.ConnectionID)
	}
	return false
}

// PanBy moves the viewport from the keyboard. It is refused during pointer gestures.
func (e *Editor) PanBy(dx, dy float64) bool {
	if e.drag != nil || e.pan != nil {
		return false
	}
	e.transform.Pan(dx, dy)
	return true
}

// ZoomAt zooms one step around a screen point. It is refused while panning.
func (e *Editor) ZoomAt(p viewport.Point, dir viewport.Direction) bool {
	if e.pan != nil {
		return false
	}
	e.transform.ZoomAt(p, dir)
	return true
}

// ResetView restores the initial transform. It is refused during pointer gestures.
func (e *Editor) ResetView() bool {
	if e.drag != nil || e.pan != nil {
		return false
	}
	e.transform = e.opts.Initial
	return true
}

// CenterOnSpawn keeps the scale and brings the spawn origin to the middle of the view.
func (e *Editor) CenterOnSpawn(view viewport.Size) {
	e.transform.CenterOn(e.opts.SpawnOrigin, view)
}

// FitAll zooms and pans so every node is visible.
func (e *Editor) FitAll(view viewport.Size, padding float64) bool {
	if e.drag != nil || e.pan != nil {
		return false
	}
	bounds, ok := e.diagram.Bounds()
	if !ok {
		return false
	}
	e.transform.Fit(bounds, view, padding)
	return true
}

// FocusSelection centers the selected node or connection midpoint.
func (e *Editor) FocusSelection(view viewport.Size) bool {
	if e.drag != nil || e.pan != nil {
		return false
	}
	switch e.selection.Kind {
	case SelectNode:
		n, ok := e.diagram.Node(e.selection.NodeID)
		if !ok {
			return false
		}
		r := n.Bounds()
		e.transform.CenterOn(viewport.Point{X: r.Min.X + r.Width()/2, Y: r.Min.Y + r.Height()/2}, view)
		return true
	case SelectConnection:
		for _, s := range e.diagram.Segments(e.transform) {
			if s.Connection.ID == e.selection.ConnectionID {
				mid := viewport.Point{X: (s.From.X + s.To.X) / 2, Y: (s.From.Y + s.To.Y) / 2}
				e.transform.CenterOn(e.transform.ToLogical(mid), view)
				return true
			}
		}
	}
	return false
}

// onChange prunes editor state that refers to removed nodes or connections.
func (e *Editor) onChange(c diagram.Change) {
	switch c.Kind {
	case diagram.NodeRemoved:
		if e.hovered == c.NodeID {
			e.hovered = 0
		}
		if e.selection.Kind == SelectNode && e.selection.NodeID == c.NodeID {
			e.selection = Selection{}
		}
		if src, ok := e.builder.Pending(); ok && src.NodeID == c.NodeID {
			e.builder.Cancel()
		}
		if e.drag != nil && e.drag.nodeID == c.NodeID {
			e.drag = nil
		}
		e.dropSelectedConnection(c.ConnectionIDs)
	case diagram.ConnectionRemoved, diagram.ConnectionsCleared:
		e.dropSelectedConnection(c.ConnectionIDs)
	}
}

func (e *Editor) dropSelectedConnection(ids []string) {
	if e.selection.Kind != SelectConnection {
		return
	}
	for _, id := range ids {
		if id == e.selection.ConnectionID {
			e.selection = Selection{}
			return
		}
	}
}
