package main

import (
	"log/slog"

	"cinevault/proj/internal/api/tasks"
	"cinevault/proj/internal/clients/catalog"
	"cinevault/proj/internal/config"
	"cinevault/proj/internal/services"
	"cinevault/proj/internal/services/auth"
	"cinevault/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	catalog   *catalog.Client
	gate      *auth.PathPolicy
	validator *govalidator.Validate
	bgTasks   *tasks.BackgroundTasks
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	bgTasks := tasks.New(log, cfg.BgTasks.MaxWorkers, cfg.BgTasks.MaxQueueSize)
	catalogClient := catalog.New(
		log,
		cfg.Clients.Catalog.Addr,
		cfg.Clients.Catalog.ApiKey,
		cfg.Clients.Catalog.Timeout,
		cfg.Clients.Catalog.RetriesCount,
	)
	app := &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		services:  services.New(log, cfg, storage, bgTasks),
		catalog:   catalogClient,
		gate:      auth.NewPathPolicy(loginPath),
		bgTasks:   bgTasks,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	return app
}
