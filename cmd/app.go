package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/vaultbak/vaultbak/internal/config"
	"github.com/vaultbak/vaultbak/internal/core"
	"github.com/vaultbak/vaultbak/internal/hosting"
	"github.com/vaultbak/vaultbak/internal/store"
)

const historyDBName = "history.db"

// newFlows assembles the production flow dependencies. The returned
// func closes the history store; it is safe to call when history could
// not be opened.
func newFlows() (*core.Flows, func(), error) {
	cfg, err := config.NewStore()
	if err != nil {
		return nil, nil, err
	}

	settings, err := config.LoadSettings(cfg.Dir())
	if err != nil {
		return nil, nil, err
	}

	history := openHistory(cfg.Dir())

	closeHistory := func() {
		if history != nil {
			_ = history.Close()
		}
	}

	var hist store.Store
	if history != nil {
		hist = history
	}

	return core.NewFlows(cfg, settings, hosting.NewProvisioner(), hist), closeHistory, nil
}

// openHistory opens the snapshot history database. History is optional
// bookkeeping, so failure only logs a warning.
func openHistory(dir string) *store.SQLiteStore {
	history, err := store.Open(filepath.Join(dir, historyDBName))
	if err != nil {
		slog.Warn("snapshot history unavailable", "error", err)
		return nil
	}

	return history
}
