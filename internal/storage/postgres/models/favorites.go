package models

import (
	"context"

	"cinevault/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

type FavoriteModel struct {
	DB *postgres.Storage
}

// Toggle flips membership of (userID, movieID) in a single statement, so the
// check-then-act never spans two round trips. The delete arm wins when a
// record exists; otherwise the insert arm runs. When two first-toggles race,
// the unique index on (user_id, movie_id) turns the losing insert into
// storage.ErrConflict, which the service layer resolves by retrying.
func (m *FavoriteModel) Toggle(ctx context.Context, userID int64, movieID string) (bool, error) {
	ctx, cancel := m.DB.QueryCtx(ctx)
	defer cancel()
	var inserted bool
	err := m.DB.Conn.QueryRow(
		ctx,
		`WITH removed AS (
			DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2 RETURNING id
		), added AS (
			INSERT INTO favorites (user_id, movie_id)
			SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM removed)
			RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM added)`,
		userID,
		movieID,
	).Scan(&inserted)
	if err != nil {
		return false, postgres.MapError(err)
	}
	return inserted, nil
}

func (m *FavoriteModel) ListForUser(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := m.DB.QueryCtx(ctx)
	defer cancel()
	rows, err := m.DB.Conn.Query(ctx, "SELECT movie_id FROM favorites WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	movieIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return movieIDs, nil
}
