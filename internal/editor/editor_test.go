package editor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindweaver/internal/diagram"
	"mindweaver/internal/viewport"
)

func newTestEditor() *Editor {
	opts := DefaultOptions()
	opts.Initial = viewport.Identity()
	opts.Rand = rand.New(rand.NewPCG(1, 2))
	return New(opts)
}

func pt(x, y float64) viewport.Point { return viewport.Point{X: x, Y: y} }

func nodeAt(e *Editor, x, y float64) diagram.Node {
	n := e.Diagram().AddNode("n", pt(x, y))
	return n
}

func countMoves(e *Editor) *int {
	n := 0
	e.Diagram().Subscribe(func(c diagram.Change) {
		if c.Kind == diagram.NodeMoved {
			n++
		}
	})
	return &n
}

func down(e *Editor, p viewport.Point, target Target) {
	e.Handle(Event{Type: EventDown, Screen: p, Target: target})
}

func move(e *Editor, p viewport.Point) {
	e.Handle(Event{Type: EventMove, Screen: p, Target: e.HitTest(p)})
}

func up(e *Editor, p viewport.Point) {
	e.Handle(Event{Type: EventUp, Screen: p})
}

func clickPort(e *Editor, id int, side diagram.Side) {
	e.Handle(Event{Type: EventClick, Target: Target{Kind: TargetPort, NodeID: id, Side: side}})
}

func TestDrag_PreservesGrabOffset(t *testing.T) {
	e := newTestEditor()
	n := nodeAt(e, 100, 100)

	down(e, pt(110, 105), Target{Kind: TargetNode, NodeID: n.ID})
	require.Equal(t, StateDraggingNode, e.State())

	s, ok := e.Drag()
	require.True(t, ok)
	assert.Equal(t, pt(10, 5), s.Offset())

	move(e, pt(200, 205))
	e.Tick()

	got, _ := e.Diagram().Node(n.ID)
	assert.Equal(t, 190.0, got.X)
	assert.Equal(t, 200.0, got.Y)
}

func TestDrag_OffsetUsesLogicalSpace(t *testing.T) {
	opts := DefaultOptions()
	opts.Initial = viewport.Transform{Scale: 2, TranslateX: -100, TranslateY: -50}
	e := New(opts)
	n := nodeAt(e, 100, 100)

	// logical (110, 105) on screen
	down(e, pt(120, 160), Target{Kind: TargetNode, NodeID: n.ID})
	// logical (200, 205)
	move(e, pt(300, 360))
	up(e, pt(300, 360))

	got, _ := e.Diagram().Node(n.ID)
	assert.InDelta(t, 190, got.X, 1e-9)
	assert.InDelta(t, 200, got.Y, 1e-9)
}

func TestDrag_FlushUsesLiveTransform(t *testing.T) {
	e := newTestEditor()
	n := nodeAt(e, 0, 0)

	down(e, pt(10, 10), Target{Kind: TargetNode, NodeID: n.ID})
	move(e, pt(110, 10))
	// zooming mid-drag leaves the origin fixed and scales everything else
	e.Handle(Event{Type: EventWheel, Screen: pt(0, 0), DeltaY: -1})
	require.InDelta(t, 1.1, e.Transform().Scale, 1e-9)
	require.Equal(t, StateDraggingNode, e.State())

	require.True(t, e.Tick())
	got, _ := e.Diagram().Node(n.ID)
	assert.InDelta(t, 110/1.1-10, got.X, 1e-9)
	assert.InDelta(t, 10/1.1-10, got.Y, 1e-9)

	move(e, pt(220, 110))
	up(e, pt(220, 110))
	got, _ = e.Diagram().Node(n.ID)
	assert.InDelta(t, 220/1.1-10, got.X, 1e-9)
	assert.InDelta(t, 110/1.1-10, got.Y, 1e-9)
}

func TestDrag_CoalescesMovesPerFrame(t *testing.T) {
	e := newTestEditor()
	n := nodeAt(e, 0, 0)
	moves := countMoves(e)

	down(e, pt(10, 10), Target{Kind: TargetNode, NodeID: n.ID})
	move(e, pt(20, 20))
	move(e, pt(30, 25))
	move(e, pt(45, 60))
	assert.Equal(t, 0, *moves)
	assert.True(t, e.NeedsFrame())

	assert.True(t, e.Tick())
	assert.Equal(t, 1, *moves)
	got, _ := e.Diagram().Node(n.ID)
	assert.Equal(t, pt(35, 50), got.Position())

	assert.False(t, e.Tick(), "nothing pending, nothing written")
	assert.Equal(t, 1, *moves)
}

func TestDrag_PointerUpFlushesFinalMove(t *testing.T) {
	e := newTestEditor()
	n := nodeAt(e, 0, 0)
	moves := countMoves(e)

	down(e, pt(0, 0), Target{Kind: TargetNode, NodeID: n.ID})
	move(e, pt(5, 5))
	move(e, pt(70, 80))
	up(e, pt(70, 80))

	assert.Equal(t, 1, *moves)
	got, _ := e.Diagram().Node(n.ID)
	assert.Equal(t, pt(70, 80), got.Position())
	assert.Equal(t, StateIdle, e.State())
	_, dragging := e.Drag()
	assert.False(t, dragging)
}

func TestDrag_RemovedNodeEndsGesture(t *testing.T) {
	e := newTestEditor()
	n := nodeAt(e, 0, 0)

	down(e, pt(5, 5), Target{Kind: TargetNode, NodeID: n.ID})
	move(e, pt(50, 50))
	e.Diagram().RemoveNode(n.ID)

	assert.Equal(t, StateIdle, e.State())
	assert.False(t, e.Tick())
}

func TestPan_MovesTranslationOneToOne(t *testing.T) {
	e := newTestEditor()
	e.transform.Scale = 3

	down(e, pt(100, 100), Target{Kind: TargetBackground})
	require.Equal(t, StatePanning, e.State())
	move(e, pt(110, 95))
	move(e, pt(130, 90))
	up(e, pt(130, 90))

	assert.Equal(t, viewport.Transform{Scale: 3, TranslateX: 30, TranslateY: -10}, e.Transform())
	assert.Equal(t, StateIdle, e.State())
}

func TestGestures_AreMutuallyExclusive(t *testing.T) {
	e := newTestEditor()
	n := nodeAt(e, 0, 0)

	down(e, pt(10, 10), Target{Kind: TargetNode, NodeID: n.ID})
	down(e, pt(500, 500), Target{Kind: TargetBackground})
	assert.Equal(t, StateDraggingNode, e.State())
	move(e, pt(20, 20))
	assert.Equal(t, viewport.Identity(), e.Transform(), "no pan while dragging")
	assert.False(t, e.PanBy(10, 10))
	up(e, pt(20, 20))

	down(e, pt(500, 500), Target{Kind: TargetBackground})
	down(e, pt(15, 15), Target{Kind: TargetNode, NodeID: n.ID})
	assert.Equal(t, StatePanning, e.State())
	_, dragging := e.Drag()
	assert.False(t, dragging)
	up(e, pt(500, 500))
}

func TestWheel_ZoomsAroundCursor(t *testing.T) {
	e := newTestEditor()
	p := pt(320, 240)
	before := e.Transform().ToLogical(p)

	e.Handle(Event{Type: EventWheel, Screen: p, DeltaY: -1})
	assert.InDelta(t, 1.1, e.Transform().Scale, 1e-9)
	e.Handle(Event{Type: EventWheel, Screen: p, DeltaY: 1})
	e.Handle(Event{Type: EventWheel, Screen: p, DeltaY: 1})

	after := e.Transform().ToLogical(p)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestBuilder_CreatesConnection(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)

	clickPort(e, a.ID, diagram.SideRight)
	require.Equal(t, StateConnecting, e.State())
	src, ok := e.PendingSource()
	require.True(t, ok)
	assert.Equal(t, diagram.Endpoint{NodeID: a.ID, Side: diagram.SideRight}, src)

	clickPort(e, b.ID, diagram.SideLeft)
	assert.Equal(t, StateIdle, e.State())

	conns := e.Diagram().Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, diagram.Endpoint{NodeID: a.ID, Side: diagram.SideRight}, conns[0].From)
	assert.Equal(t, diagram.Endpoint{NodeID: b.ID, Side: diagram.SideLeft}, conns[0].To)
	assert.Equal(t, diagram.DefaultStyle(), conns[0].Style)
}

func TestBuilder_SelfConnectionIsIgnored(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)

	clickPort(e, a.ID, diagram.SideRight)
	clickPort(e, a.ID, diagram.SideLeft)

	assert.Equal(t, 0, e.Diagram().ConnectionCount())
	assert.Equal(t, StateConnecting, e.State())
	src, _ := e.PendingSource()
	assert.Equal(t, diagram.Endpoint{NodeID: a.ID, Side: diagram.SideRight}, src)
}

func TestBuilder_BackgroundClickCancels(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)

	clickPort(e, a.ID, diagram.SideTop)
	e.Handle(Event{Type: EventClick, Screen: pt(2000, 2000), Target: Target{Kind: TargetBackground}})
	assert.Equal(t, StateIdle, e.State())

	// the next port click starts a fresh connection instead of completing the old one
	clickPort(e, b.ID, diagram.SideTop)
	assert.Equal(t, 0, e.Diagram().ConnectionCount())
	src, ok := e.PendingSource()
	require.True(t, ok)
	assert.Equal(t, b.ID, src.NodeID)

	assert.True(t, e.CancelConnection())
	assert.False(t, e.CancelConnection())
}

func TestBuilder_NodeBodyClickCancels(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)
	e.Handle(Event{Type: EventClick, Target: Target{Kind: TargetNode, NodeID: a.ID}})

	move(e, pt(10, 10))
	clickPort(e, a.ID, diagram.SideRight)
	require.Equal(t, StateConnecting, e.State())

	// while connecting, a body click behaves like a click on the canvas
	e.Handle(Event{Type: EventClick, Screen: pt(410, 10), Target: Target{Kind: TargetNode, NodeID: b.ID}})
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, Selection{}, e.Selection())
	assert.Equal(t, 0, e.Hovered())
	assert.Equal(t, 0, e.Diagram().ConnectionCount())
}

func TestBuilder_SourceRemovalCancels(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)

	clickPort(e, a.ID, diagram.SideBottom)
	e.Diagram().RemoveNode(a.ID)

	assert.Equal(t, StateIdle, e.State())
}

func TestBuilder_BlocksPointerGestures(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)

	clickPort(e, a.ID, diagram.SideRight)
	down(e, pt(410, 10), Target{Kind: TargetNode, NodeID: b.ID})
	assert.Equal(t, StateConnecting, e.State())
	down(e, pt(2000, 2000), Target{Kind: TargetBackground})
	assert.Equal(t, StateConnecting, e.State())
}

func TestPortsVisible(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)

	assert.False(t, e.PortsVisible(a.ID))

	move(e, pt(10, 10))
	assert.Equal(t, a.ID, e.Hovered())
	assert.True(t, e.PortsVisible(a.ID))
	assert.False(t, e.PortsVisible(b.ID))

	clickPort(e, a.ID, diagram.SideRight)
	move(e, pt(2000, 2000))
	assert.True(t, e.PortsVisible(a.ID))
	assert.True(t, e.PortsVisible(b.ID))

	// a selected node shows its ports without hover
	e.CancelConnection()
	move(e, pt(2000, 2000))
	require.True(t, e.SelectNode(b.ID))
	assert.False(t, e.PortsVisible(a.ID))
	assert.True(t, e.PortsVisible(b.ID))
	assert.Equal(t, TargetPort, e.HitTest(pt(400, 24)).Kind)
}

func TestOptions_NewItemAppearance(t *testing.T) {
	opts := DefaultOptions()
	opts.Initial = viewport.Identity()
	opts.NodeColor = diagram.ColorPink
	opts.NodeSize = diagram.SizeLarge
	opts.ConnectionStyle = diagram.Style{Color: "#ef4444", StrokeWidth: 3, LineStyle: diagram.LineDashed, Arrow: diagram.ArrowNone}
	e := New(opts)

	n := e.AddNode()
	assert.Equal(t, diagram.ColorPink, n.Color)
	assert.Equal(t, diagram.SizeLarge, n.Size)
	stored, _ := e.Diagram().Node(n.ID)
	assert.Equal(t, n, stored)

	b := nodeAt(e, 0, 0)
	clickPort(e, n.ID, diagram.SideBottom)
	clickPort(e, b.ID, diagram.SideTop)
	conns := e.Diagram().Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, opts.ConnectionStyle, conns[0].Style)
}

func TestSelection(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)
	c, _ := e.Diagram().AddConnection(diagram.Endpoint{NodeID: a.ID, Side: diagram.SideRight}, diagram.Endpoint{NodeID: b.ID, Side: diagram.SideLeft}, diagram.DefaultStyle())

	e.Handle(Event{Type: EventClick, Target: Target{Kind: TargetNode, NodeID: a.ID}})
	assert.Equal(t, Selection{Kind: SelectNode, NodeID: a.ID}, e.Selection())

	e.Handle(Event{Type: EventClick, Target: Target{Kind: TargetConnection, ConnectionID: c.ID}})
	assert.Equal(t, Selection{Kind: SelectConnection, ConnectionID: c.ID}, e.Selection())

	// removing a node prunes a selected connection that touched it
	e.Diagram().RemoveNode(b.ID)
	assert.Equal(t, Selection{}, e.Selection())

	e.Handle(Event{Type: EventClick, Target: Target{Kind: TargetNode, NodeID: a.ID}})
	assert.True(t, e.DeleteSelection())
	assert.Equal(t, Selection{}, e.Selection())
	assert.Equal(t, 0, e.Diagram().NodeCount())
	assert.False(t, e.DeleteSelection())
}

func TestAddNode(t *testing.T) {
	e := newTestEditor()

	first := e.AddNode()
	second := e.AddNode()

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Element 1", first.Label)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "Element 2", second.Label)
	for _, n := range []diagram.Node{first, second} {
		assert.InDelta(t, 5000, n.X, 200)
		assert.InDelta(t, 5000, n.Y, 200)
		assert.Equal(t, diagram.SizeMedium, n.Size)
		assert.Equal(t, diagram.ColorBlue, n.Color)
	}
	assert.Equal(t, Selection{Kind: SelectNode, NodeID: second.ID}, e.Selection())

	e.Diagram().RemoveNode(first.ID)
	e.Diagram().RemoveNode(second.ID)
	third := e.AddNode()
	assert.Equal(t, 3, third.ID)
}

func TestHitTest(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)
	c, _ := e.Diagram().AddConnection(diagram.Endpoint{NodeID: a.ID, Side: diagram.SideRight}, diagram.Endpoint{NodeID: b.ID, Side: diagram.SideLeft}, diagram.DefaultStyle())

	assert.Equal(t, Target{Kind: TargetNode, NodeID: a.ID}, e.HitTest(pt(144, 24)), "ports hidden until hover")
	assert.Equal(t, Target{Kind: TargetConnection, ConnectionID: c.ID}, e.HitTest(pt(270, 26)))
	assert.Equal(t, Target{Kind: TargetBackground}, e.HitTest(pt(270, 200)))

	move(e, pt(50, 20))
	assert.Equal(t, Target{Kind: TargetPort, NodeID: a.ID, Side: diagram.SideRight}, e.HitTest(pt(146, 25)))
	assert.Equal(t, Target{Kind: TargetPort, NodeID: a.ID, Side: diagram.SideTop}, e.HitTest(pt(72, 2)))
}

func TestHitTest_TopmostNodeWins(t *testing.T) {
	e := newTestEditor()
	nodeAt(e, 0, 0)
	top := nodeAt(e, 50, 10)

	assert.Equal(t, top.ID, e.HitTest(pt(60, 20)).NodeID)
}

func TestFrame(t *testing.T) {
	e := newTestEditor()
	a := nodeAt(e, 0, 0)
	b := nodeAt(e, 400, 0)
	c, _ := e.Diagram().AddConnection(diagram.Endpoint{NodeID: a.ID, Side: diagram.SideRight}, diagram.Endpoint{NodeID: b.ID, Side: diagram.SideLeft}, diagram.DefaultStyle())
	e.Handle(Event{Type: EventClick, Target: Target{Kind: TargetConnection, ConnectionID: c.ID}})
	clickPort(e, b.ID, diagram.SideBottom)

	f := e.Frame()
	assert.Equal(t, StateConnecting, f.State)
	require.Len(t, f.Nodes, 2)
	assert.True(t, f.Nodes[0].PortsVisible)
	assert.Equal(t, pt(144, 24), f.Nodes[0].Ports[diagram.SideRight])
	assert.Equal(t, viewport.Rect{Min: pt(400, 0), Max: pt(544, 48)}, f.Nodes[1].Rect)

	require.Len(t, f.Edges, 1)
	assert.True(t, f.Edges[0].Selected)
	assert.Equal(t, pt(144, 24), f.Edges[0].From)
	assert.Equal(t, pt(400, 24), f.Edges[0].To)

	assert.True(t, f.Pending)
	assert.Equal(t, pt(472, 48), f.PendingAt)
}

func TestFitAndFocus(t *testing.T) {
	e := newTestEditor()
	view := viewport.Size{Width: 800, Height: 600}
	assert.False(t, e.FitAll(view, 20))

	a := nodeAt(e, 1000, 1000)
	nodeAt(e, 3000, 2000)
	require.True(t, e.FitAll(view, 20))

	r, _ := e.Diagram().Bounds()
	lo := e.Transform().ToScreen(r.Min)
	hi := e.Transform().ToScreen(r.Max)
	assert.GreaterOrEqual(t, lo.X, 19.999)
	assert.LessOrEqual(t, hi.X, 780.001)
	assert.GreaterOrEqual(t, lo.Y, 0.0)
	assert.LessOrEqual(t, hi.Y, 600.0)

	require.True(t, e.SelectNode(a.ID))
	require.True(t, e.FocusSelection(view))
	center := e.Transform().ToScreen(pt(1072, 1024))
	assert.InDelta(t, 400, center.X, 1e-6)
	assert.InDelta(t, 300, center.Y, 1e-6)

	e.ResetView()
	assert.Equal(t, viewport.Identity(), e.Transform())
}
