// Package diagram holds the node and connection model of the editor. A Diagram owns
// both stores so that removing a node and pruning its connections is one mutation.
package diagram

import "mindweaver/internal/viewport"

type ChangeKind int

const (
	NodeAdded ChangeKind = iota
	NodeUpdated
	NodeMoved
	NodeRemoved
	ConnectionAdded
	ConnectionUpdated
	ConnectionRemoved
	ConnectionsCleared
)

// Change is delivered to observers after a mutation has fully completed.
type Change struct {
	Kind          ChangeKind
	NodeID        int
	ConnectionIDs []string
}

type observer struct {
	id int
	fn func(Change)
}

type Diagram struct {
	nodes     *NodeStore
	conns     *ConnectionStore
	observers []observer
	nextObs   int
}

func New() *Diagram {
	return &Diagram{
		nodes: NewNodeStore(),
		conns: NewConnectionStore(),
	}
}

// Subscribe registers fn for every change. The returned func unregisters it.
func (d *Diagram) Subscribe(fn func(Change)) (cancel func()) {
	d.nextObs++
	id := d.nextObs
	d.observers = append(d.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range d.observers {
			if o.id == id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

func (d *Diagram) notify(c Change) {
	for _, o := range append([]observer(nil), d.observers...) {
		o.fn(c)
	}
}

func (d *Diagram) AddNode(label string, at viewport.Point) Node {
	n := d.nodes.Add(label, at)
	d.notify(Change{Kind: NodeAdded, NodeID: n.ID})
	return n
}

func (d *Diagram) UpdateNode(id int, p NodePatch) bool {
	if !d.nodes.Update(id, p) {
		return false
	}
	d.notify(Change{Kind: NodeUpdated, NodeID: id})
	return true
}

func (d *Diagram) MoveNode(id int, x, y float64) bool {
	if !d.nodes.Move(id, x, y) {
		return false
	}
	d.notify(Change{Kind: NodeMoved, NodeID: id})
	return true
}

// RemoveNode deletes the node and every connection touching it. Observers see a single
// change, after both stores are consistent.
func (d *Diagram) RemoveNode(id int) bool {
	if !d.nodes.Remove(id) {
		return false
	}
	removed := d.conns.RemoveIncident(id)
	d.notify(Change{Kind: NodeRemoved, NodeID: id, ConnectionIDs: removed})
	return true
}

// RemoveNodeConnections drops the node's connections and keeps the node.
func (d *Diagram) RemoveNodeConnections(id int) int {
	removed := d.conns.RemoveIncident(id)
	if len(removed) > 0 {
		d.notify(Change{Kind: ConnectionRemoved, NodeID: id, ConnectionIDs: removed})
	}
	return len(removed)
}

// AddConnection refuses self loops and endpoints on nodes that do not exist.
func (d *Diagram) AddConnection(from, to Endpoint, style Style) (Connection, bool) {
	if !d.nodes.Has(from.NodeID) || !d.nodes.Has(to.NodeID) {
		return Connection{}, false
	}
	c, ok := d.conns.Add(from, to, style)
	if !ok {
		return Connection{}, false
	}
	d.notify(Change{Kind: ConnectionAdded, ConnectionIDs: []string{c.ID}})
	return c, true
}

func (d *Diagram) UpdateConnection(id string, p ConnectionPatch) bool {
	if !d.conns.Update(id, p) {
		return false
	}
	d.notify(Change{Kind: ConnectionUpdated, ConnectionIDs: []string{id}})
	return true
}

func (d *Diagram) RemoveConnection(id string) bool {
	if !d.conns.Remove(id) {
		return false
	}
	d.notify(Change{Kind: ConnectionRemoved, ConnectionIDs: []string{id}})
	return true
}

// ClearConnections empties the connection store; nodes are untouched.
func (d *Diagram) ClearConnections() int {
	removed := d.conns.Clear()
	d.notify(Change{Kind: ConnectionsCleared, ConnectionIDs: removed})
	return len(removed)
}

func (d *Diagram) Node(id int) (Node, bool)                { return d.nodes.Get(id) }
func (d *Diagram) Nodes() []Node                           { return d.nodes.All() }
func (d *Diagram) NodeCount() int                          { return d.nodes.Len() }
func (d *Diagram) Connection(id string) (Connection, bool) { return d.conns.Get(id) }
func (d *Diagram) Connections() []Connection               { return d.conns.All() }
func (d *Diagram) ConnectionCount() int                    { return d.conns.Len() }

func (d *Diagram) Bounds() (viewport.Rect, bool) { return d.nodes.Bounds() }

// Segments projects every connection with the live transform.
func (d *Diagram) Segments(t viewport.Transform) []Segment {
	return Segments(d.nodes.nodes, d.conns.conns, t)
}
