package editor

import "mindweaver/internal/diagram"

// Builder is the two-click connection state machine: Idle, or Pending with a source port.
type Builder struct {
	source  diagram.Endpoint
	pending bool
}

func (b *Builder) Pending() (diagram.Endpoint, bool) {
	return b.source, b.pending
}

// Click feeds a port click. The first click records the source. A click on another
// node's port creates the connection with style and returns to Idle; a click on the
// source node itself is ignored and the builder stays pending.
func (b *Builder) Click(p diagram.Endpoint, d *diagram.Diagram, style diagram.Style) (diagram.Connection, bool) {
	if !b.pending {
		b.source = p
		b.pending = true
		return diagram.Connection{}, false
	}
	if p.NodeID == b.source.NodeID {
		return diagram.Connection{}, false
	}
	c, ok := d.AddConnection(b.source, p, style)
	b.Cancel()
	return c, ok
}

// Cancel discards a pending source. It reports whether anything was pending.
func (b *Builder) Cancel() bool {
	was := b.pending
	b.pending = false
	b.source = diagram.Endpoint{}
	return was
}
