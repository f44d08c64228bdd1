package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/engine"
	"github.com/verte-zerg/readpace/internal/identity"
	"github.com/verte-zerg/readpace/internal/logging"
	"github.com/verte-zerg/readpace/internal/store"
)

// app bundles what every data command needs.
type app struct {
	fileCfg config.FileConfig
	log     *zap.Logger
	store   *store.Store
	engine  *engine.Engine
}

// openApp loads env and config, opens the log and database, and resolves the
// user. Plain commands log to stderr unless a log file is configured; the
// TUI always logs to a file.
func openApp(plain bool) (*app, error) {
	if err := config.LoadEnv(config.DefaultEnvPath(), ".env"); err != nil {
		return nil, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg.ApplyEnv()

	logPath := config.DefaultLogPath()
	if plain {
		logPath = logging.Stderr
	}
	logPath = config.StringValue(fileCfg.Log.File, logPath)
	log, err := logging.New(config.StringValue(fileCfg.Log.Level, "info"), logPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	id := identity.Resolve(config.StringValue(fileCfg.User.ID, ""), true)
	return &app{
		fileCfg: fileCfg,
		log:     log,
		store:   st,
		engine:  engine.New(st, id, log),
	}, nil
}

func (a *app) Close() {
	if cerr := a.store.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
	if err := a.log.Sync(); err != nil {
		// Best-effort flush; stderr sync fails on some terminals.
		_ = err
	}
}
