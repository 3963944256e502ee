package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mindweaver/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mindweaver",
		Short: "Mindweaver - a terminal diagram editor",
		Long: `Mindweaver is an infinite-canvas diagram editor for the terminal.

Drag nodes with the mouse, pan the background, zoom with the wheel and
connect nodes port to port. Nothing is saved: the diagram lives for the
length of the session.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/"+config.FileName+")")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("no-confirm", false, "skip confirmation prompts")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func run(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("mindweaver needs an interactive terminal")
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	m, err := newModel(cfg, logger)
	if err != nil {
		return err
	}

	mouse := tea.WithMouseCellMotion()
	if cfg.Mouse.Hover {
		mouse = tea.WithMouseAllMotion()
	}
	logger.Info("starting", "version", Version, "config", cfg.FileUsed)

	p := tea.NewProgram(m, tea.WithAltScreen(), mouse)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program failed: %w", err)
	}
	return nil
}
