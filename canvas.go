package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mindweaver/internal/editor"
	"mindweaver/internal/viewport"
)

// pointer turns terminal mouse reports into editor events. A cell stands for the
// screen pixel at its centre.
type pointer struct {
	cellW, cellH   float64
	pressed, moved bool
	pressX, pressY int
}

func (p pointer) screen(x, y int) viewport.Point {
	return viewport.Point{
		X: (float64(x) + 0.5) * p.cellW,
		Y: (float64(y) + 0.5) * p.cellH,
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	inCanvas := msg.Y >= 0 && msg.Y < m.canvasRows()
	at := m.mouse.screen(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		if inCanvas {
			m.ed.Handle(editor.Event{Type: editor.EventWheel, Screen: at, DeltaY: -1})
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		if inCanvas {
			m.ed.Handle(editor.Event{Type: editor.EventWheel, Screen: at, DeltaY: 1})
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inCanvas {
			return nil
		}
		m.mouse.pressed, m.mouse.moved = true, false
		m.mouse.pressX, m.mouse.pressY = msg.X, msg.Y
		m.ed.Handle(editor.Event{Type: editor.EventDown, Screen: at, Target: m.ed.HitTest(at)})

	case msg.Action == tea.MouseActionMotion:
		if !m.mouse.pressed && !m.config.Mouse.Hover {
			return nil
		}
		if m.mouse.pressed && (msg.X != m.mouse.pressX || msg.Y != m.mouse.pressY) {
			m.mouse.moved = true
		}
		m.ed.Handle(editor.Event{Type: editor.EventMove, Screen: at, Target: m.ed.HitTest(at)})

	case msg.Action == tea.MouseActionRelease:
		click := m.mouse.pressed && !m.mouse.moved && inCanvas
		m.mouse.pressed = false
		m.ed.Handle(editor.Event{Type: editor.EventUp, Screen: at})
		if click {
			m.ed.Handle(editor.Event{Type: editor.EventClick, Screen: at, Target: m.ed.HitTest(at)})
		}
	}
	return m.scheduleFrame()
}

// scheduleFrame requests one tick while a drag position is waiting to be written.
func (m *model) scheduleFrame() tea.Cmd {
	if m.frameScheduled || !m.ed.NeedsFrame() {
		return nil
	}
	m.frameScheduled = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *model) handleFrame() tea.Cmd {
	m.frameScheduled = false
	m.ed.Tick()
	return m.scheduleFrame()
}

func (m model) renderCanvas() string {
	return m.renderer.Render(m.ed.Frame(), max(m.width, 1), m.canvasRows())
}
