package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sivaram/calc-admin/internal/client"
	"github.com/sivaram/calc-admin/internal/logger"
	"github.com/sivaram/calc-admin/internal/screen"
	"github.com/sivaram/calc-admin/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive admin for nodes, formulars and calculations",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the UI; logs always go to the file.
	if err := logger.ToFile(logr, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	c := client.New(cfg.Client.BaseURL,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithLogger(logr),
	)
	screens := []screen.Screen{
		screen.NewNodes(c.Nodes, logr),
		screen.NewFormulars(c.Formulars, c.Nodes, logr),
		screen.NewCalculations(c.Calculations, c.Formulars, logr),
	}

	logr.Infof("Starting admin against %s", cfg.Client.BaseURL)
	p := tea.NewProgram(tui.New(cmd.Context(), screens...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logr.Errorf("Admin exited with error: %v", err)
		return err
	}
	return nil
}
