package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/soap4/internal/adapter"
	"github.com/mmcdole/soap4/internal/page"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to soap4.me and store the session",
	Args:  cobra.NoArgs,
	RunE:  runLoginCmd,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogoutCmd,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLoginCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(adapter.NewTerminalPrompt(), page.ConsoleNotifier{W: os.Stderr})
	if err != nil {
		return err
	}
	defer a.Close()

	// one attempt: a single dispatch, without following the redirect
	next, err := a.dispatcher.Dispatch(cmd.Context(), a.routes.Login(), page.NewRecorder())
	if err != nil {
		return err
	}
	if next != a.routes.Start() {
		return errors.New("login failed")
	}

	sess, _ := a.sessions.Get()
	fmt.Fprintf(os.Stdout, "Logged in, session valid until %s\n", time.UnixMilli(sess.ExpiresAtMillis).Format("2006-01-02 15:04"))
	return nil
}

func runLogoutCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(adapter.NewTerminalPrompt(), page.ConsoleNotifier{W: os.Stderr})
	if err != nil {
		return err
	}
	defer a.Close()

	_, err = a.dispatcher.Dispatch(cmd.Context(), a.routes.Logout(), page.NewRecorder())
	return err
}
