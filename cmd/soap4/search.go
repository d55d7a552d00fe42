package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/soap4/internal/adapter"
	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/page"
	"github.com/mmcdole/soap4/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search the catalog for series and episodes",
	Long: `Search the catalog for series and episodes.

With --local, the series already in your list are matched by fuzzy
title instead, without a remote search.

Examples:
  soap4 search house
  soap4 search "доктор хаус"
  soap4 search --local --all hous`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("local", false, "Match titles of the cached series list")
	searchCmd.Flags().Bool("all", false, "With --local, match every catalog series")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	local, _ := cmd.Flags().GetBool("local")
	all, _ := cmd.Flags().GetBool("all")

	a, err := newApp(adapter.NewTerminalPrompt(), page.ConsoleNotifier{W: os.Stderr})
	if err != nil {
		return err
	}
	defer a.Close()

	if !local {
		snap, err := a.navigate(cmd.Context(), a.routes.Search(query))
		if perr := printPage(snap); perr != nil {
			return perr
		}
		return err
	}

	if _, ok := a.sessions.Get(); !ok {
		return domain.ErrNoSession
	}
	scope := domain.ScopeMine
	if all {
		scope = domain.ScopeAll
	}
	idx, err := a.cache.GetSeriesIndex(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("search failed: %s: %w", domain.UserMessage(err), err)
	}

	matches := search.FilterSeries(query, idx.Ordered)
	snap := page.Snapshot{Meta: a.cfg.Meta(), Total: len(matches)}
	snap.Meta.Title = "Search: " + query
	for _, match := range matches {
		snap.Items = append(snap.Items, a.routes.SeriesItem(match.Series))
	}
	return printPage(snap)
}
