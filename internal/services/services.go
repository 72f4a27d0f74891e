package services

import (
	"log/slog"

	"cinevault/proj/internal/config"
	"cinevault/proj/internal/mails"
	"cinevault/proj/internal/services/auth"
	"cinevault/proj/internal/services/favorites"
	"cinevault/proj/internal/storage/postgres"
	dbmodels "cinevault/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth      *auth.AuthService
	Favorites *favorites.FavoritesService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	models := dbmodels.New(storage)
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	return &Services{
		Auth:      auth.New(log, models.User, mailer, taskExecutor, cfg.AppSecret, cfg.SessionTTL),
		Favorites: favorites.New(log, models.Favorite),
	}
}
