package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/soap4/internal/tui"
)

// version is set at build time via -ldflags
var version = "dev"

var (
	configFile string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "soap4",
	Short: "Terminal client for the soap4.me catalog",
	Long: `soap4 - terminal client for the soap4.me catalog

Without a command, opens the interactive browser: your series grouped
by watch state, their seasons and episodes, and catalog search.
Episodes play in mpv, vlc or the system default player.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowser,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/soap4/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("soap4 {{.Version}}\n")
}

func runBrowser(cmd *cobra.Command, _ []string) error {
	bridge := tui.NewBridge()
	defer bridge.Close()

	a, err := newApp(bridge, bridge)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.dispatcher, a.launcher, a.routes, a.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	bridge.Attach(p)

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}
