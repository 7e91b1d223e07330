package main

import (
	"context"
	"time"

	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/config"
	"github.com/haedavja/hahahahgo/internal/logging"
	"github.com/haedavja/hahahahgo/internal/service"
	"github.com/haedavja/hahahahgo/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logging.Fatal("Missing or invalid card catalog", err, logging.Fields{
			"catalog_path": cfg.CatalogPath,
			"hint":         "provide a catalog.yaml with 'cards', 'enemies' and 'player' sections",
		})
	}

	db, err := storage.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": cfg.DatabasePath})
	}
	repo := storage.NewSQLiteRepository(db)

	// Background scanner: battles idle past their action deadline are
	// abandoned so they stop occupying the active list.
	service.StartTimeoutScanner(context.Background(), repo, 5*time.Second)

	router := newRouter(repo, cat, cfg)
	logging.Info("Server started", logging.Fields{"addr": cfg.ServerAddress})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
