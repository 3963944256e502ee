package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mindweaver/internal/editor"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")).Background(lipgloss.Color("#1f2937"))
	modeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#93c5fd")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Background(lipgloss.Color("#1f2937"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Background(lipgloss.Color("#1f2937"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}
	return m.renderCanvas() + "\n" + m.statusLine()
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		switch m.ed.State() {
		case editor.StateDraggingNode:
			return "DRAG"
		case editor.StatePanning:
			return "PAN"
		case editor.StateConnecting:
			return "CONNECT"
		}
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteNode:
		return "Delete this node and its connections? (y/n)"
	case ConfirmDeleteNodeConnections:
		return "Delete every connection of this node? (y/n)"
	case ConfirmClearConnections:
		return "Delete all connections? (y/n)"
	case ConfirmQuit:
		return "Quit? The diagram is not saved. (y/n)"
	}
	return ""
}

func (m model) selectionString() string {
	d := m.ed.Diagram()
	sel := m.ed.Selection()
	switch sel.Kind {
	case editor.SelectNode:
		if n, ok := d.Node(sel.NodeID); ok {
			return fmt.Sprintf("Node %d %q %s %s", n.ID, n.Label, n.Color, n.Size)
		}
	case editor.SelectConnection:
		if c, ok := d.Connection(sel.ConnectionID); ok {
			s := c.Style
			return fmt.Sprintf("Connection %d→%d %s %s w%d %s", c.From.NodeID, c.To.NodeID, s.LineStyle, s.Arrow, s.StrokeWidth, s.Color)
		}
	}
	return ""
}

func (m model) statusLine() string {
	var body string
	switch m.mode {
	case ModeEditing:
		body = m.input.View() + "  (enter: save, esc: cancel)"
	case ModeConfirm:
		body = m.confirmMessage()
	default:
		d := m.ed.Diagram()
		parts := []string{
			fmt.Sprintf("Zoom: %d%%", int(m.ed.Transform().Scale*100+0.5)),
			fmt.Sprintf("Nodes: %d", d.NodeCount()),
			fmt.Sprintf("Connections: %d", d.ConnectionCount()),
		}
		if src, ok := m.ed.PendingSource(); ok {
			parts = append(parts, fmt.Sprintf("Connecting from node %d %s (click a port, esc to cancel)", src.NodeID, src.Side))
		} else if s := m.selectionString(); s != "" {
			parts = append(parts, s)
		}
		body = strings.Join(parts, " | ")
	}

	line := modeStyle.Render(m.modeString()) + statusStyle.Render(" "+body)
	switch {
	case m.errorMessage != "":
		line += errorStyle.Render(" | " + m.errorMessage)
	case m.successMessage != "":
		line += successStyle.Render(" | " + m.successMessage)
	}
	if lipgloss.Width(line) > m.width {
		return ansi.Truncate(line, m.width, "…")
	}
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += statusStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}

func (m model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mindweaver"))
	b.WriteString("\n\n")
	b.WriteString("Mouse: drag nodes, drag the background to pan, wheel to zoom.\n")
	b.WriteString("Hover a node and click a port, then a port on another node, to connect them.\n")
	b.WriteString("Click a node or connection to select it.\n\n")
	h := m.help
	h.ShowAll = true
	b.WriteString(h.View(m.keys))
	b.WriteString("\n\n? or esc to close")
	return b.String()
}
