package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mindweaver/internal/viewport"
)

type keyMap struct {
	Left, Right, Up, Down key.Binding
	ZoomIn, ZoomOut       key.Binding
	ResetView, Fit, Focus key.Binding

	AddNode     key.Binding
	EditLabel   key.Binding
	Color       key.Binding
	Size        key.Binding
	Delete      key.Binding
	DeleteEdges key.Binding
	ClearEdges  key.Binding
	Paste       key.Binding
	Copy        key.Binding

	LineStyle key.Binding
	Arrow     key.Binding
	Thicker   key.Binding
	Thinner   key.Binding

	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("h", "left", "H", "shift+left"), key.WithHelp("h/←", "pan left")),
		Right: key.NewBinding(key.WithKeys("l", "right", "L", "shift+right"), key.WithHelp("l/→", "pan right")),
		Up:    key.NewBinding(key.WithKeys("k", "up", "K", "shift+up"), key.WithHelp("k/↑", "pan up")),
		Down:  key.NewBinding(key.WithKeys("j", "down", "J", "shift+down"), key.WithHelp("j/↓", "pan down")),

		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		ResetView: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Fit:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit all")),
		Focus:     key.NewBinding(key.WithKeys("."), key.WithHelp(".", "focus selection")),

		AddNode:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add node")),
		EditLabel:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit label")),
		Color:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle color")),
		Size:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle size")),
		Delete:      key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "delete")),
		DeleteEdges: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete node's connections")),
		ClearEdges:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all connections")),
		Paste:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste label")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy label")),

		LineStyle: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "solid/dashed")),
		Arrow:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle arrow")),
		Thicker:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "thicker")),
		Thinner:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "thinner")),

		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddNode, k.EditLabel, k.Delete, k.Fit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.ZoomIn, k.ZoomOut, k.ResetView, k.Fit, k.Focus},
		{k.AddNode, k.EditLabel, k.Color, k.Size, k.Delete, k.DeleteEdges, k.Paste, k.Copy},
		{k.LineStyle, k.Arrow, k.Thicker, k.Thinner, k.ClearEdges},
		{k.Cancel, k.Help, k.Quit},
	}
}

// handlePan moves the view opposite to the key so the content appears to scroll.
func (m *model) handlePan(msg tea.KeyMsg) bool {
	step := m.config.View.PanStep * float64(getMoveSpeed(msg.String()))
	switch {
	case key.Matches(msg, m.keys.Left):
		m.ed.PanBy(step, 0)
	case key.Matches(msg, m.keys.Right):
		m.ed.PanBy(-step, 0)
	case key.Matches(msg, m.keys.Up):
		m.ed.PanBy(0, step)
	case key.Matches(msg, m.keys.Down):
		m.ed.PanBy(0, -step)
	default:
		return false
	}
	return true
}

func getMoveSpeed(k string) int {
	switch k {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) handleZoom(msg tea.KeyMsg) bool {
	center := viewport.Point{X: m.viewSize().Width / 2, Y: m.viewSize().Height / 2}
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		m.ed.ZoomAt(center, viewport.ZoomIn)
	case key.Matches(msg, m.keys.ZoomOut):
		m.ed.ZoomAt(center, viewport.ZoomOut)
	case key.Matches(msg, m.keys.ResetView):
		if m.ed.ResetView() {
			m.ed.CenterOnSpawn(m.viewSize())
		}
	case key.Matches(msg, m.keys.Fit):
		if !m.ed.FitAll(m.viewSize(), fitPadding) {
			m.errorMessage = "Nothing to fit"
		}
	case key.Matches(msg, m.keys.Focus):
		if !m.ed.FocusSelection(m.viewSize()) {
			m.errorMessage = "Nothing selected"
		}
	default:
		return false
	}
	return true
}

// canvasRows excludes the status line.
func (m model) canvasRows() int {
	return max(m.height-statusHeight, 1)
}

func (m model) viewSize() viewport.Size {
	return viewport.Size{
		Width:  float64(max(m.width, 1)) * m.config.View.CellWidth,
		Height: float64(m.canvasRows()) * m.config.View.CellHeight,
	}
}
