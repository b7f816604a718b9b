package main

import (
	"context"

	"github.com/jaekwang-park/todo-chat-api/internal/config"
	"github.com/jaekwang-park/todo-chat-api/internal/repository"
)

func runMigrate(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.DB.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	db, err := repository.NewDB(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		return err
	}
	logger.Info("database migrated", "driver", cfg.DB.Driver)
	return nil
}
