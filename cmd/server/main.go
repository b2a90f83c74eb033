package main

import (
	"fmt"
	"log"

	"repono/internal/config"
	"repono/internal/handler"
	"repono/internal/port"
	"repono/internal/presenter"
	"repono/internal/repository/postgres"
	"repono/internal/router"
	index "repono/internal/search/postgres"
	"repono/internal/service"
	s3storage "repono/internal/storage/s3"
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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories and the search index
	accountRepo := postgres.NewAccountRepo(db)
	userRepo := postgres.NewUserRepo(db)
	participantRepo := postgres.NewParticipantRepo(db)
	searchIndex := index.NewIndex(db)

	// Thumbnail store is optional; presenters fall back to null thumbnails.
	var thumbnails port.ThumbnailStorage
	if cfg.S3.Enabled() {
		thumbnails, err = s3storage.NewThumbnailStore(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize thumbnail store: %w", err)
		}
	}

	// Services
	workPresenters := presenter.DefaultWorkPresenters()
	authSvc := service.NewAuthService(userRepo, participantRepo, cfg.JWT)
	collectionSvc := service.NewCollectionService(searchIndex, workPresenters, thumbnails, cfg.API.PerPage)
	workSvc := service.NewWorkService(searchIndex, workPresenters, cfg.API.PerPage)

	// Handlers
	collectionH := handler.NewCollectionHandler(collectionSvc)
	workH := handler.NewWorkHandler(workSvc)
	sessionH := handler.NewSessionHandler(authSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, accountRepo, authSvc, collectionH, workH, sessionH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
