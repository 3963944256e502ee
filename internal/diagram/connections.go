package diagram

import "github.com/google/uuid"

// ConnectionStore keeps connections in creation order.
type ConnectionStore struct {
	conns []Connection
	newID func() string
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{
		conns: make([]Connection, 0),
		newID: uuid.NewString,
	}
}

// Add stores a connection. Self loops, invalid sides and invalid styles are refused.
func (s *ConnectionStore) Add(from, to Endpoint, style Style) (Connection, bool) {
	if from.NodeID == to.NodeID {
		return Connection{}, false
	}
	if !from.Side.Valid() || !to.Side.Valid() || !style.valid() {
		return Connection{}, false
	}
	conn := Connection{
		ID:    s.newID(),
		From:  from,
		To:    to,
		Style: style,
	}
	s.conns = append(s.conns, conn)
	return conn, true
}

func (s *ConnectionStore) index(id string) int {
	for i, c := range s.conns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *ConnectionStore) Get(id string) (Connection, bool) {
	if i := s.index(id); i >= 0 {
		return s.conns[i], true
	}
	return Connection{}, false
}

// ConnectionPatch carries the style fields the editor panel may change.
type ConnectionPatch struct {
	Color       *string
	StrokeWidth *int
	LineStyle   *LineStyle
	Arrow       *ArrowKind
}

// Update applies p, skipping out-of-range values. It reports whether the connection exists.
func (s *ConnectionStore) Update(id string, p ConnectionPatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	style := &s.conns[i].Style
	if p.Color != nil && *p.Color != "" {
		style.Color = *p.Color
	}
	if p.StrokeWidth != nil && validStrokeWidth(*p.StrokeWidth) {
		style.StrokeWidth = *p.StrokeWidth
	}
	if p.LineStyle != nil && p.LineStyle.Valid() {
		style.LineStyle = *p.LineStyle
	}
	if p.Arrow != nil && p.Arrow.Valid() {
		style.Arrow = *p.Arrow
	}
	return true
}

func (s *ConnectionStore) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.conns = append(s.conns[:i], s.conns[i+1:]...)
	return true
}

// RemoveIncident drops every connection with an end on nodeID and returns their ids.
func (s *ConnectionStore) RemoveIncident(nodeID int) []string {
	var removed []string
	kept := make([]Connection, 0, len(s.conns))
	for _, c := range s.conns {
		if c.Touches(nodeID) {
			removed = append(removed, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	s.conns = kept
	return removed
}

// Clear empties the store and returns the removed ids.
func (s *ConnectionStore) Clear() []string {
	removed := make([]string, 0, len(s.conns))
	for _, c := range s.conns {
		removed = append(removed, c.ID)
	}
	s.conns = make([]Connection, 0)
	return removed
}

func (s *ConnectionStore) All() []Connection {
	out := make([]Connection, len(s.conns))
	copy(out, s.conns)
	return out
}

func (s *ConnectionStore) Len() int { return len(s.conns) }
