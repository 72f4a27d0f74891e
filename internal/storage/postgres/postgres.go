package postgres

import (
	"context"
	"errors"
	"time"

	"cinevault/proj/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	Conn         *pgxpool.Pool
	QueryTimeout time.Duration
}

const ErrConflictCode = "23505"

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime, queryTimeout time.Duration) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pool.Config().MaxConns = int32(maxConns)
	pool.Config().MaxConnIdleTime = maxConnIdleTime
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return &Storage{Conn: pool, QueryTimeout: queryTimeout}, nil
}

// QueryCtx bounds a single store call so a slow database surfaces as
// storage.ErrUnavailable instead of a hung request.
func (s *Storage) QueryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.QueryTimeout)
}

// MapError converts low-level pgx failures into storage sentinels.
func MapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == ErrConflictCode {
		return storage.ErrConflict
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return storage.ErrUnavailable
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return storage.ErrUnavailable
	}
	return err
}
