package editor

import (
	"mindweaver/internal/diagram"
	"mindweaver/internal/viewport"
)

type EventType int

const (
	EventDown EventType = iota
	EventMove
	EventUp
	EventWheel
	EventClick
)

func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventWheel:
		return "wheel"
	case EventClick:
		return "click"
	}
	return "unknown"
}

type TargetKind int

const (
	TargetBackground TargetKind = iota
	TargetNode
	TargetPort
	TargetConnection
)

func (k TargetKind) String() string {
	switch k {
	case TargetBackground:
		return "background"
	case TargetNode:
		return "node"
	case TargetPort:
		return "port"
	case TargetConnection:
		return "connection"
	}
	return "unknown"
}

// Target is what lies under the pointer. NodeID and Side are set for node and port
// targets; ConnectionID for connection targets.
type Target struct {
	Kind         TargetKind
	NodeID       int
	Side         diagram.Side
	ConnectionID string
}

func (t Target) endpoint() diagram.Endpoint {
	return diagram.Endpoint{NodeID: t.NodeID, Side: t.Side}
}

// Event is a normalized pointer event in screen pixels.
type Event struct {
	Type   EventType
	Screen viewport.Point
	DeltaY float64
	Target Target
}
