package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/soap4/internal/adapter"
	"github.com/mmcdole/soap4/internal/adapter/source/soap4me"
	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/library"
	"github.com/mmcdole/soap4/internal/playback"
	"github.com/mmcdole/soap4/internal/route"
	"github.com/mmcdole/soap4/internal/router"
	"github.com/mmcdole/soap4/internal/search"
	"github.com/mmcdole/soap4/internal/session"
	"github.com/mmcdole/soap4/internal/store"
)

// app holds the wired core for one command run
type app struct {
	cfg        *adapter.Config
	logger     *slog.Logger
	sessions   *session.Store
	client     *soap4me.Client
	cache      *library.Cache
	commands   *library.Commands
	routes     *route.Table
	dispatcher *router.Dispatcher
	launcher   *adapter.Launcher

	closers []io.Closer
}

// newApp loads configuration and wires every service. prompt and
// notifier are the interactive collaborators of the running front end.
func newApp(prompt domain.CredentialPrompt, notifier domain.Notifier) (*app, error) {
	cfg, err := adapter.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg}

	logger, logFile, err := adapter.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		a.closers = append(a.closers, logFile)
	}
	slog.SetDefault(logger)
	a.logger = logger
	logger.Info("starting soap4", "version", version)

	storePath, err := adapter.ExpandHome(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	db, err := store.Open(storePath)
	if err != nil {
		// keep working with a session that lasts for this run only
		logger.Warn("session store unavailable, using memory", "path", storePath, "error", err)
		if db, err = store.Open(""); err != nil {
			return nil, err
		}
	}
	a.closers = append(a.closers, db)

	a.sessions = session.NewStore(db.Bucket(cfg.Plugin.ID), logger)
	a.client = soap4me.NewClient(cfg.ClientConfig(), a.sessions, logger)
	a.cache = library.NewCache(a.client, logger)
	a.commands = library.NewCommands(a.client, a.cache, logger)
	a.routes = route.NewTable(cfg.Plugin.ID)
	a.launcher = adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	a.dispatcher = router.NewDispatcher(&router.Env{
		Sessions: a.sessions,
		Catalog:  a.cache,
		Auth:     a.client,
		Search:   search.NewService(a.client, a.cache, a.routes, logger),
		Streams:  playback.NewService(a.client, a.cache, a.commands, cfg, logger),
		Prompt:   prompt,
		Notifier: notifier,
		Settings: cfg,
		Routes:   a.routes,
		Meta:     cfg.Meta(),
		Logger:   logger,
	})
	return a, nil
}

// Close releases the session store and the log file
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
