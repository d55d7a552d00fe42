package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmcdole/soap4/internal/adapter"
	"github.com/mmcdole/soap4/internal/page"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Render a catalog page or play an episode",
	Long: `Render the page at a route path and print its items with their paths.
An episode path resolves a stream and hands it to the player.

Examples:
  soap4 open                                      # start page
  soap4 open soap4me:series:42                    # seasons of a series
  soap4 open soap4me:series:42:season:7           # episodes of a season
  soap4 open soap4me:series:42:season:7:episode:1 --print-url`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpenCmd,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().Bool("print-url", false, "Print the stream URL instead of launching a player")
}

func runOpenCmd(cmd *cobra.Command, args []string) error {
	printURL, _ := cmd.Flags().GetBool("print-url")

	a, err := newApp(adapter.NewTerminalPrompt(), page.ConsoleNotifier{W: os.Stderr})
	if err != nil {
		return err
	}
	defer a.Close()

	path := a.routes.Start()
	if len(args) > 0 {
		path = args[0]
	}

	snap, err := a.navigate(cmd.Context(), path)
	if perr := printPage(snap); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}

	if snap.Playback == nil || printURL || jsonOutput {
		return nil
	}
	if err := a.launcher.Launch(snap.Playback); err != nil {
		return fmt.Errorf("failed to launch player: %w", err)
	}
	return nil
}
