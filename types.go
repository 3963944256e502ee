package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"mindweaver/internal/config"
	"mindweaver/internal/editor"
	"mindweaver/internal/render"
)

type model struct {
	width  int
	height int

	ed       *editor.Editor
	renderer *render.Renderer
	config   *config.Config
	logger   *slog.Logger

	mode           Mode
	showHelp       bool
	keys           keyMap
	help           help.Model
	input          textinput.Model
	editNodeID     int
	confirmAction  ConfirmAction
	confirmNodeID  int
	mouse          pointer
	frameScheduled bool
	centered       bool

	errorMessage   string
	successMessage string

	readClipboard  func() (string, error)
	writeClipboard func(string) error
}

type frameMsg struct{}

func newModel(cfg *config.Config, logger *slog.Logger) (model, error) {
	r, err := render.New(cfg.View.CellWidth, cfg.View.CellHeight)
	if err != nil {
		return model{}, err
	}

	input := textinput.New()
	input.Placeholder = "Label"
	input.CharLimit = 120
	input.Width = 40
	input.Prompt = "Label: "

	return model{
		ed:             editor.New(editorOptions(cfg, logger)),
		renderer:       r,
		config:         cfg,
		logger:         logger,
		keys:           defaultKeyMap(),
		help:           help.New(),
		input:          input,
		mouse:          pointer{cellW: cfg.View.CellWidth, cellH: cfg.View.CellHeight},
		readClipboard:  readClipboardText,
		writeClipboard: writeClipboardText,
	}, nil
}
