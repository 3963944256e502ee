package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindweaver/internal/viewport"
)

func addNodes(d *Diagram, n int) []Node {
	out := make([]Node, n)
	for i := range out {
		out[i] = d.AddNode("n", viewport.Point{X: float64(i * 300), Y: 0})
	}
	return out
}

func TestDiagram_RemoveNodeCascades(t *testing.T) {
	d := New()
	nodes := addNodes(d, 3)

	_, ok := d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[1].ID, SideLeft}, DefaultStyle())
	require.True(t, ok)
	_, ok = d.AddConnection(Endpoint{nodes[1].ID, SideRight}, Endpoint{nodes[2].ID, SideLeft}, DefaultStyle())
	require.True(t, ok)

	require.True(t, d.RemoveNode(nodes[1].ID))

	assert.Equal(t, 0, d.ConnectionCount())
	assert.Equal(t, 2, d.NodeCount())
}

func TestDiagram_RemoveNodeNotifiesOnceWhenConsistent(t *testing.T) {
	d := New()
	nodes := addNodes(d, 2)
	c, ok := d.AddConnection(Endpoint{nodes[0].ID, SideBottom}, Endpoint{nodes[1].ID, SideTop}, DefaultStyle())
	require.True(t, ok)

	var changes []Change
	d.Subscribe(func(ch Change) {
		// Observers must never see an edge that points at the removed node.
		for _, conn := range d.Connections() {
			_, fromOK := d.Node(conn.From.NodeID)
			_, toOK := d.Node(conn.To.NodeID)
			assert.True(t, fromOK && toOK, "dangling connection %s", conn.ID)
		}
		changes = append(changes, ch)
	})

	d.RemoveNode(nodes[0].ID)

	require.Len(t, changes, 1)
	assert.Equal(t, NodeRemoved, changes[0].Kind)
	assert.Equal(t, nodes[0].ID, changes[0].NodeID)
	assert.Equal(t, []string{c.ID}, changes[0].ConnectionIDs)
}

func TestDiagram_IDsNeverReused(t *testing.T) {
	d := New()
	a := d.AddNode("a", viewport.Point{})
	b := d.AddNode("b", viewport.Point{})
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	d.RemoveNode(a.ID)
	c := d.AddNode("c", viewport.Point{})
	assert.Equal(t, 3, c.ID)

	d.RemoveNode(b.ID)
	d.RemoveNode(c.ID)
	require.Equal(t, 0, d.NodeCount())

	e := d.AddNode("e", viewport.Point{})
	assert.Equal(t, 4, e.ID)
}

func TestDiagram_AddConnectionRejects(t *testing.T) {
	d := New()
	nodes := addNodes(d, 2)

	_, ok := d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[0].ID, SideLeft}, DefaultStyle())
	assert.False(t, ok, "self loop")

	_, ok = d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{99, SideLeft}, DefaultStyle())
	assert.False(t, ok, "unknown node")

	_, ok = d.AddConnection(Endpoint{nodes[0].ID, Side(9)}, Endpoint{nodes[1].ID, SideLeft}, DefaultStyle())
	assert.False(t, ok, "invalid side")

	bad := DefaultStyle()
	bad.StrokeWidth = 7
	_, ok = d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[1].ID, SideLeft}, bad)
	assert.False(t, ok, "invalid stroke width")

	assert.Equal(t, 0, d.ConnectionCount())
}

func TestDiagram_ConnectionIDsUnique(t *testing.T) {
	d := New()
	nodes := addNodes(d, 2)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c, ok := d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[1].ID, SideLeft}, DefaultStyle())
		require.True(t, ok)
		require.NotEmpty(t, c.ID)
		require.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestDiagram_UpdateNode(t *testing.T) {
	d := New()
	n := d.AddNode("a", viewport.Point{})
	assert.Equal(t, SizeMedium, n.Size)
	assert.Equal(t, ColorBlue, n.Color)

	label := "renamed"
	color := ColorOrange
	size := SizeXLarge
	require.True(t, d.UpdateNode(n.ID, NodePatch{Label: &label, Color: &color, Size: &size}))

	got, _ := d.Node(n.ID)
	assert.Equal(t, "renamed", got.Label)
	assert.Equal(t, ColorOrange, got.Color)
	assert.Equal(t, SizeXLarge, got.Size)

	badSize := SizeClass(42)
	require.True(t, d.UpdateNode(n.ID, NodePatch{Size: &badSize}))
	got, _ = d.Node(n.ID)
	assert.Equal(t, SizeXLarge, got.Size)

	assert.False(t, d.UpdateNode(404, NodePatch{Label: &label}))
}

func TestDiagram_UpdateConnection(t *testing.T) {
	d := New()
	nodes := addNodes(d, 2)
	c, _ := d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[1].ID, SideLeft}, DefaultStyle())

	width := 4
	dashed := LineDashed
	circle := ArrowCircle
	color := "#ef4444"
	require.True(t, d.UpdateConnection(c.ID, ConnectionPatch{Color: &color, StrokeWidth: &width, LineStyle: &dashed, Arrow: &circle}))

	got, _ := d.Connection(c.ID)
	assert.Equal(t, Style{Color: "#ef4444", StrokeWidth: 4, LineStyle: LineDashed, Arrow: ArrowCircle}, got.Style)

	tooWide := 5
	d.UpdateConnection(c.ID, ConnectionPatch{StrokeWidth: &tooWide})
	got, _ = d.Connection(c.ID)
	assert.Equal(t, 4, got.Style.StrokeWidth)
}

func TestDiagram_RemoveNodeConnectionsKeepsNode(t *testing.T) {
	d := New()
	nodes := addNodes(d, 3)
	d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[1].ID, SideLeft}, DefaultStyle())
	d.AddConnection(Endpoint{nodes[2].ID, SideTop}, Endpoint{nodes[0].ID, SideBottom}, DefaultStyle())
	keep, _ := d.AddConnection(Endpoint{nodes[1].ID, SideRight}, Endpoint{nodes[2].ID, SideLeft}, DefaultStyle())

	assert.Equal(t, 2, d.RemoveNodeConnections(nodes[0].ID))
	assert.Equal(t, 3, d.NodeCount())
	require.Len(t, d.Connections(), 1)
	assert.Equal(t, keep.ID, d.Connections()[0].ID)
}

func TestDiagram_ClearConnections(t *testing.T) {
	d := New()
	nodes := addNodes(d, 2)
	d.AddConnection(Endpoint{nodes[0].ID, SideRight}, Endpoint{nodes[1].ID, SideLeft}, DefaultStyle())
	d.AddConnection(Endpoint{nodes[1].ID, SideRight}, Endpoint{nodes[0].ID, SideLeft}, DefaultStyle())

	assert.Equal(t, 2, d.ClearConnections())
	assert.Equal(t, 0, d.ConnectionCount())
	assert.Equal(t, 2, d.NodeCount())
}

func TestDiagram_SubscribeCancel(t *testing.T) {
	d := New()
	calls := 0
	cancel := d.Subscribe(func(Change) { calls++ })

	d.AddNode("a", viewport.Point{})
	cancel()
	d.AddNode("b", viewport.Point{})

	assert.Equal(t, 1, calls)
}

func TestDiagram_Bounds(t *testing.T) {
	d := New()
	_, ok := d.Bounds()
	assert.False(t, ok)

	d.AddNode("a", viewport.Point{X: 10, Y: 20})
	small := SizeSmall
	b := d.AddNode("b", viewport.Point{X: -100, Y: 200})
	d.UpdateNode(b.ID, NodePatch{Size: &small})

	r, ok := d.Bounds()
	require.True(t, ok)
	assert.Equal(t, viewport.Rect{Min: viewport.Point{X: -100, Y: 20}, Max: viewport.Point{X: 154, Y: 232}}, r)
}
