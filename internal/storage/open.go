// internal/storage/open.go
package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/norruva/dpp-backend/internal/config"
	"github.com/norruva/dpp-backend/internal/database"
)

// Open connects the key-value backend selected by the configuration and
// makes sure its table exists.
func Open(ctx context.Context, cfg *config.Config) (KVStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		logrus.Warn("Using in-memory store, user data is lost on restart")
		return NewMemoryStore(), nil

	case config.StoreBackendSQLite:
		s, err := NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		logrus.WithField("path", cfg.Store.SQLitePath).Info("SQLite store opened")
		return s, nil

	case config.StoreBackendPostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, err
		}
		return NewGormStore(db), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
