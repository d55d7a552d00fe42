package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmcdole/soap4/internal/adapter"
	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/page"
)

var watchCmd = &cobra.Command{
	Use:   "watch <sid>",
	Short: "Add a series to your watch list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatchState(cmd, args[0], true)
	},
}

var unwatchCmd = &cobra.Command{
	Use:   "unwatch <sid>",
	Short: "Remove a series from your watch list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatchState(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(unwatchCmd)
}

func runWatchState(cmd *cobra.Command, sid string, watching bool) error {
	a, err := newApp(adapter.NewTerminalPrompt(), page.ConsoleNotifier{W: os.Stderr})
	if err != nil {
		return err
	}
	defer a.Close()

	sess, ok := a.sessions.Get()
	if !ok {
		return fmt.Errorf("%s: %w", domain.UserMessage(domain.ErrNoSession), domain.ErrNoSession)
	}

	if watching {
		err = a.commands.MarkWatching(cmd.Context(), sid, sess.Token)
	} else {
		err = a.commands.StopWatching(cmd.Context(), sid, sess.Token)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
	}

	verb := "Stopped watching"
	if watching {
		verb = "Watching"
	}
	fmt.Fprintf(os.Stdout, "%s series %s\n", verb, sid)
	return nil
}
