// Package database provides the SQLite connection for the optional event
// history store.
//
// The simulation core itself holds no durable state; devices and their
// state live and die with the process. This package only backs the
// config-gated event history (history.enabled in config.yaml), which
// records published events for later inspection.
//
// # Usage
//
//	db, err := database.Open(database.Config{
//	    Path:        cfg.History.Path,
//	    WALMode:     cfg.History.WALMode,
//	    BusyTimeout: cfg.History.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// The history repository (internal/event) creates its own table on first
// use; there is no separate migration step.
package database
