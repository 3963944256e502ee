package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"mindweaver/internal/config"
	"mindweaver/internal/editor"
	"mindweaver/internal/viewport"
)

// editorOptions maps the loaded configuration onto the editor. The initial pan keeps the
// stock translate(-5000,-5000) offset and applies the configured zoom on top of it.
func editorOptions(cfg *config.Config, logger *slog.Logger) editor.Options {
	opts := editor.DefaultOptions()
	opts.Initial = viewport.Transform{
		Scale:      cfg.View.InitialScale,
		TranslateX: opts.Initial.TranslateX,
		TranslateY: opts.Initial.TranslateY,
	}
	opts.SpawnOrigin = viewport.Point{X: cfg.Spawn.OriginX, Y: cfg.Spawn.OriginY}
	opts.SpawnJitter = cfg.Spawn.Jitter
	// clicks arrive as cell centres; a port on a cell corner must still be in reach
	opts.PortRadius = max(cfg.Hit.PortRadius, math.Hypot(cfg.View.CellWidth/2, cfg.View.CellHeight/2))
	opts.EdgeTolerance = cfg.Hit.EdgeTolerance
	// Load has validated both already
	opts.NodeColor, opts.NodeSize, _ = cfg.NodeAppearance()
	if style, err := cfg.ConnectionStyle(); err == nil {
		opts.ConnectionStyle = style
	}
	opts.Logger = logger
	return opts
}

// newLogger writes text logs to the configured file. The terminal belongs to the editor,
// so without a file everything is discarded.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.Log.File == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}
