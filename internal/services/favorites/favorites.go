package favorites

import (
	"context"
	"errors"
	"log/slog"

	"cinevault/proj/internal/storage"
)

// toggleRetries bounds how many times a toggle is retried after losing a
// race to a concurrent toggle for the same (user, movie) pair.
const toggleRetries = 5

type FavoriteStorage interface {
	Toggle(ctx context.Context, userID int64, movieID string) (bool, error)
	ListForUser(ctx context.Context, userID int64) ([]string, error)
}

type FavoritesService struct {
	log     *slog.Logger
	storage FavoriteStorage
}

func New(log *slog.Logger, storage FavoriteStorage) *FavoritesService {
	return &FavoritesService{
		log:     log,
		storage: storage,
	}
}

// Toggle flips membership of movieID in the user's favorites and reports the
// resulting state. It is a pure 2-state flip, not add/remove: two calls in a
// row always return to the starting state. A storage.ErrConflict means a
// concurrent toggle created the record first; retrying flips the now-present
// record instead of losing the call.
func (s *FavoritesService) Toggle(ctx context.Context, userID int64, movieID string) (bool, error) {
	const op = "favorites.FavoritesService.Toggle"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	if movieID == "" {
		return false, ErrMissingMovieID
	}
	var err error
	for attempt := 1; attempt <= toggleRetries; attempt++ {
		var isFavorite bool
		isFavorite, err = s.storage.Toggle(ctx, userID, movieID)
		if err == nil {
			return isFavorite, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			break
		}
		log.Debug("toggle lost a race, retrying", "attempt", attempt)
	}
	log.Error(err.Error())
	return false, err
}

func (s *FavoritesService) List(ctx context.Context, userID int64) ([]string, error) {
	const op = "favorites.FavoritesService.List"
	log := s.log.With("op", op, "user_id", userID)
	movieIDs, err := s.storage.ListForUser(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movieIDs, nil
}
