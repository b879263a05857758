package main

import (
	"fmt"
	"log"

	"parsify/internal/config"
	"parsify/internal/handler"
	"parsify/internal/router"
	"parsify/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := store.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := store.NewDocumentRepo(db)

	docH := handler.NewDocumentHandler(repo, cfg.Processor.Default)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, docH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
