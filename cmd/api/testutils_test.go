package main

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"cinevault/proj/internal/config"
	"cinevault/proj/internal/domain/models"
	"cinevault/proj/internal/services"
	"cinevault/proj/internal/services/auth"
	"cinevault/proj/internal/services/favorites"
	"cinevault/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type memUserStorage struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newMemUserStorage() *memUserStorage {
	return &memUserStorage{users: make(map[string]*models.User)}
}

func (s *memUserStorage) Insert(_ context.Context, name, email string, passwordHash []byte) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, storage.ErrConflict
	}
	s.nextID++
	user := &models.User{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[email] = user
	return user, nil
}

func (s *memUserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

type favKey struct {
	userID  int64
	movieID string
}

type memFavoriteStorage struct {
	mu   sync.Mutex
	recs map[favKey]time.Time
}

func newMemFavoriteStorage() *memFavoriteStorage {
	return &memFavoriteStorage{recs: make(map[favKey]time.Time)}
}

func (s *memFavoriteStorage) Toggle(_ context.Context, userID int64, movieID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := favKey{userID, movieID}
	if _, ok := s.recs[key]; ok {
		delete(s.recs, key)
		return false, nil
	}
	s.recs[key] = time.Now()
	return true, nil
}

func (s *memFavoriteStorage) ListForUser(_ context.Context, userID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var movieIDs []string
	for k := range s.recs {
		if k.userID == userID {
			movieIDs = append(movieIDs, k.movieID)
		}
	}
	return movieIDs, nil
}

type noopMailer struct{}

func (noopMailer) Send(string, string, any) error { return nil }

type noopExecutor struct{}

func (noopExecutor) Add(func()) {}

func NewTestApplication(cfg *config.Config, t *testing.T) *Application {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{
			AppSecret:  "test-secret",
			SessionTTL: time.Hour,
		}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := auth.New(log, newMemUserStorage(), noopMailer{}, noopExecutor{}, cfg.AppSecret, cfg.SessionTTL)
	app := &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		gate:      auth.NewPathPolicy(loginPath),
		services: &services.Services{
			Auth:      authService,
			Favorites: favorites.New(log, newMemFavoriteStorage()),
		},
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	return app
}

func testSession(ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		UserID:    1,
		Email:     "test@gmail.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}
