package models

import (
	"context"
	"errors"

	"cinevault/proj/internal/domain/models"
	"cinevault/proj/internal/storage"
	"cinevault/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

type UserModel struct {
	DB *postgres.Storage
}

// Insert creates a user record. Email uniqueness is enforced by the unique
// index on users.email, surfacing as storage.ErrConflict.
func (m *UserModel) Insert(ctx context.Context, name, email string, passwordHash []byte) (*models.User, error) {
	ctx, cancel := m.DB.QueryCtx(ctx)
	defer cancel()
	rows, _ := m.DB.Conn.Query(
		ctx,
		"INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING *",
		name,
		email,
		passwordHash,
	)
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return &user, nil
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := m.DB.QueryCtx(ctx)
	defer cancel()
	rows, err := m.DB.Conn.Query(
		ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1",
		email,
	)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, postgres.MapError(err)
	}
	return &user, nil
}
