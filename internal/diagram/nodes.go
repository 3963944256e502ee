package diagram

import "mindweaver/internal/viewport"

// NodeStore keeps nodes in creation order, which is also paint order.
type NodeStore struct {
	nodes  []Node
	lastID int
}

func NewNodeStore() *NodeStore {
	return &NodeStore{nodes: make([]Node, 0)}
}

// Add creates a node with the default size and color. Ids continue from the highest
// id ever issued, so they are never reused even after every node is deleted.
func (s *NodeStore) Add(label string, at viewport.Point) Node {
	s.lastID++
	node := Node{
		ID:    s.lastID,
		X:     at.X,
		Y:     at.Y,
		Label: label,
		Size:  DefaultSize,
		Color: ColorBlue,
	}
	s.nodes = append(s.nodes, node)
	return node
}

func (s *NodeStore) index(id int) int {
	for i, n := range s.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *NodeStore) Get(id int) (Node, bool) {
	if i := s.index(id); i >= 0 {
		return s.nodes[i], true
	}
	return Node{}, false
}

func (s *NodeStore) Has(id int) bool { return s.index(id) >= 0 }

// NodePatch carries the fields the editor panel may change. Nil fields are left alone.
type NodePatch struct {
	Label *string
	Color *NodeColor
	Size  *SizeClass
}

// Update applies p to the node. Invalid enum values are ignored. It reports whether
// the node exists.
func (s *NodeStore) Update(id int, p NodePatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	node := &s.nodes[i]
	if p.Label != nil {
		node.Label = *p.Label
	}
	if p.Color != nil && p.Color.Valid() {
		node.Color = *p.Color
	}
	if p.Size != nil && p.Size.Valid() {
		node.Size = *p.Size
	}
	return true
}

func (s *NodeStore) Move(id int, x, y float64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.nodes[i].X = x
	s.nodes[i].Y = y
	return true
}

// Remove deletes the node only. Use Diagram.RemoveNode to keep connections consistent.
func (s *NodeStore) Remove(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	return true
}

func (s *NodeStore) All() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s *NodeStore) Len() int { return len(s.nodes) }

// Bounds covers every node rectangle. ok is false when the store is empty.
func (s *NodeStore) Bounds() (r viewport.Rect, ok bool) {
	for i, n := range s.nodes {
		if i == 0 {
			r = n.Bounds()
			continue
		}
		r = r.Union(n.Bounds())
	}
	return r, len(s.nodes) > 0
}
