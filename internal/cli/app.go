package cli

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/config"
	"github.com/devdeck-labs/devdeck/internal/fetch"
	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/devdeck-labs/devdeck/internal/logging"
	"github.com/devdeck-labs/devdeck/internal/store"
	"github.com/devdeck-labs/devdeck/internal/toggle"
	"go.uber.org/zap"
)

// app is the per-command context: resolved settings, logger and the shared
// store with the views built on it.
type app struct {
	settings config.Settings
	logger   *zap.Logger
	store    *store.Store
	history  *history.Store
}

type appOptions struct {
	// logToFile sends logs to the configured log file instead of stderr.
	logToFile bool
}

func newApp(opts appOptions) (*app, error) {
	settings := config.Current()

	kv, err := store.Open(settings.StoreFile)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	debug := verbose
	if on, err := toggle.Get(kv, toggle.DebugMode); err == nil && on {
		debug = true
	}
	logOpts := logging.Options{Debug: debug}
	if opts.logToFile {
		logOpts.File = settings.LogFile
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	kv.SetLogger(logger)

	return &app{
		settings: settings,
		logger:   logger,
		store:    kv,
		history:  history.New(kv),
	}, nil
}

func (a *app) fetcher() *fetch.Client {
	return fetch.New(
		fetch.WithGitHubBaseURL(a.settings.GitHubAPIURL),
		fetch.WithLinearBaseURL(a.settings.LinearAPIURL),
		fetch.WithTimeout(a.settings.HTTPTimeout),
	)
}

func (a *app) close() {
	_ = a.logger.Sync()
}
