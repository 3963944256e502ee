package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mindweaver/internal/config"
)

var (
	keyColor   = color.New(color.FgCyan)
	valueColor = color.New(color.FgHiWhite)
	subtle     = color.New(color.FgHiBlack)
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.FileUsed != "" {
				subtle.Fprintf(out, "# from %s\n", cfg.FileUsed)
			} else {
				subtle.Fprintln(out, "# no config file, defaults and environment only")
			}
			for _, kv := range cfg.Settings() {
				keyColor.Fprintf(out, "%-20s", kv[0])
				valueColor.Fprintln(out, kv[1])
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mindweaver %s\n", Version)
		},
	}
}
