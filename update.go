package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mindweaver/internal/diagram"
	"mindweaver/internal/editor"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// the stock offset puts the spawn origin at the top-left corner
		if !m.centered {
			m.ed.CenterOnSpawn(m.viewSize())
			m.centered = true
		}
		return m, nil

	case frameMsg:
		return m, m.handleFrame()

	case tea.MouseMsg:
		// releases always go through so a gesture cannot outlive the button
		if (m.mode != ModeNormal || m.showHelp) && msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ModeEditing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeEditing:
		return m.handleEditingKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	m.errorMessage = ""
	m.successMessage = ""

	if m.handlePan(msg) || m.handleZoom(msg) {
		return m, nil
	}

	d := m.ed.Diagram()
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.config.Confirmations && d.NodeCount() > 0 {
			m.confirm(ConfirmQuit, 0)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Cancel):
		if !m.ed.CancelConnection() {
			m.ed.ClearSelection()
		}

	case key.Matches(msg, m.keys.AddNode):
		n := m.ed.AddNode()
		m.successMessage = fmt.Sprintf("Added %q", n.Label)

	case key.Matches(msg, m.keys.ClearEdges):
		if d.ConnectionCount() == 0 {
			m.errorMessage = "No connections to clear"
			return m, nil
		}
		if m.config.Confirmations {
			m.confirm(ConfirmClearConnections, 0)
			return m, nil
		}
		m.clearConnections()

	default:
		sel := m.ed.Selection()
		switch sel.Kind {
		case editor.SelectNode:
			return m.handleNodeKey(msg, sel.NodeID)
		case editor.SelectConnection:
			m.handleConnectionKey(msg, sel.ConnectionID)
		}
	}
	return m, nil
}

func (m model) handleNodeKey(msg tea.KeyMsg, id int) (tea.Model, tea.Cmd) {
	d := m.ed.Diagram()
	n, ok := d.Node(id)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.EditLabel):
		cmd := m.startEditing(n)
		return m, cmd

	case key.Matches(msg, m.keys.Color):
		next := n.Color.Next()
		d.UpdateNode(id, diagram.NodePatch{Color: &next})

	case key.Matches(msg, m.keys.Size):
		next := n.Size.Next()
		d.UpdateNode(id, diagram.NodePatch{Size: &next})

	case key.Matches(msg, m.keys.Delete):
		if m.config.Confirmations {
			m.confirm(ConfirmDeleteNode, id)
			return m, nil
		}
		m.deleteNode(id)

	case key.Matches(msg, m.keys.DeleteEdges):
		if incident(d, id) == 0 {
			m.errorMessage = "Node has no connections"
			return m, nil
		}
		if m.config.Confirmations {
			m.confirm(ConfirmDeleteNodeConnections, id)
			return m, nil
		}
		m.deleteNodeConnections(id)

	case key.Matches(msg, m.keys.Paste):
		text, err := m.readClipboard()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard error: %v", err)
			return m, nil
		}
		label := labelFromClipboard(text)
		if label == "" {
			m.errorMessage = "Clipboard is empty"
			return m, nil
		}
		d.UpdateNode(id, diagram.NodePatch{Label: &label})
		m.successMessage = "Pasted label"

	case key.Matches(msg, m.keys.Copy):
		if err := m.writeClipboard(n.Label); err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard error: %v", err)
			return m, nil
		}
		m.successMessage = "Copied label"
	}
	return m, nil
}

func (m *model) handleConnectionKey(msg tea.KeyMsg, id string) {
	d := m.ed.Diagram()
	c, ok := d.Connection(id)
	if !ok {
		return
	}
	style := c.Style

	switch {
	case key.Matches(msg, m.keys.Color):
		next := diagram.NextEdgeColor(style.Color)
		d.UpdateConnection(id, diagram.ConnectionPatch{Color: &next})

	case key.Matches(msg, m.keys.LineStyle):
		next := style.LineStyle.Next()
		d.UpdateConnection(id, diagram.ConnectionPatch{LineStyle: &next})

	case key.Matches(msg, m.keys.Arrow):
		next := style.Arrow.Next()
		d.UpdateConnection(id, diagram.ConnectionPatch{Arrow: &next})

	case key.Matches(msg, m.keys.Thicker), key.Matches(msg, m.keys.Thinner):
		w := style.StrokeWidth + 1
		if key.Matches(msg, m.keys.Thinner) {
			w = style.StrokeWidth - 1
		}
		if w < diagram.MinStrokeWidth || w > diagram.MaxStrokeWidth {
			m.errorMessage = fmt.Sprintf("Stroke width stays between %d and %d", diagram.MinStrokeWidth, diagram.MaxStrokeWidth)
			return
		}
		d.UpdateConnection(id, diagram.ConnectionPatch{StrokeWidth: &w})

	case key.Matches(msg, m.keys.Delete):
		d.RemoveConnection(id)
		m.successMessage = "Deleted connection"
	}
}

func (m *model) startEditing(n diagram.Node) tea.Cmd {
	m.mode = ModeEditing
	m.editNodeID = n.ID
	m.input.SetValue(n.Label)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		label := m.input.Value()
		if !m.ed.Diagram().UpdateNode(m.editNodeID, diagram.NodePatch{Label: &label}) {
			m.errorMessage = "Node no longer exists"
		}
		m.stopEditing()
		return m, nil
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) stopEditing() {
	m.mode = ModeNormal
	m.editNodeID = 0
	m.input.Blur()
	m.input.Reset()
}

func (m *model) confirm(action ConfirmAction, nodeID int) {
	m.mode = ModeConfirm
	m.confirmAction = action
	m.confirmNodeID = nodeID
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmDeleteNode:
			m.deleteNode(m.confirmNodeID)
		case ConfirmDeleteNodeConnections:
			m.deleteNodeConnections(m.confirmNodeID)
		case ConfirmClearConnections:
			m.clearConnections()
		case ConfirmQuit:
			return m, tea.Quit
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *model) deleteNode(id int) {
	before := m.ed.Diagram().ConnectionCount()
	if !m.ed.Diagram().RemoveNode(id) {
		return
	}
	removed := before - m.ed.Diagram().ConnectionCount()
	m.successMessage = fmt.Sprintf("Deleted node and %d connection(s)", removed)
}

func (m *model) deleteNodeConnections(id int) {
	n := m.ed.Diagram().RemoveNodeConnections(id)
	m.successMessage = fmt.Sprintf("Deleted %d connection(s)", n)
}

func (m *model) clearConnections() {
	n := m.ed.Diagram().ClearConnections()
	m.successMessage = fmt.Sprintf("Cleared %d connection(s)", n)
}

func incident(d *diagram.Diagram, nodeID int) int {
	n := 0
	for _, c := range d.Connections() {
		if c.Touches(nodeID) {
			n++
		}
	}
	return n
}
