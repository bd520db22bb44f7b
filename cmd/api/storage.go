package main

import (
	"fmt"
	"io"

	"github.com/oggyb/smsdev/internal/config"
	"github.com/oggyb/smsdev/internal/db/gormdb"
	"github.com/oggyb/smsdev/internal/domain/inbox"
	inboxBolt "github.com/oggyb/smsdev/internal/repository/bolt/inbox"
	inboxRepo "github.com/oggyb/smsdev/internal/repository/gorm/inbox"
)

// openInbox returns the configured inbox store and the resource to close
// on shutdown.
func openInbox(cfg *config.Config) (inbox.Repository, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StorageBolt:
		repo, err := inboxBolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil

	case config.StoragePostgres:
		db, err := gormdb.New(cfg.PostgresDSN(), cfg.App.Env == "development")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect db: %w", err)
		}
		return inboxRepo.NewRepository(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}
