package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"cinevault/proj/internal/domain/models"
	"cinevault/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserStorage struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newStubUserStorage() *stubUserStorage {
	return &stubUserStorage{users: make(map[string]*models.User)}
}

func (s *stubUserStorage) Insert(_ context.Context, name, email string, passwordHash []byte) (*models.User, error) {
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

func (s *stubUserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

type stubMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *stubMailer) Send(recipient string, _ string, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, recipient)
	return nil
}

// inlineExecutor runs tasks synchronously so tests can assert on side
// effects without a worker pool.
type inlineExecutor struct{}

func (inlineExecutor) Add(task func()) { task() }

func newTestService(t *testing.T) (*AuthService, *stubUserStorage, *stubMailer) {
	t.Helper()
	users := newStubUserStorage()
	mailer := &stubMailer{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(log, users, mailer, inlineExecutor{}, "test-secret", time.Hour)
	return svc, users, mailer
}

func TestRegister(t *testing.T) {
	svc, users, mailer := newTestService(t)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := svc.Register(ctx, "Alice", "A@X.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email, "email must be stored lowercase")
		assert.NotEqual(t, []byte("pw123456"), user.PasswordHash, "stored hash must never equal the plaintext")
		assert.Equal(t, []string{"a@x.com"}, mailer.sent)
	})
	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "Alice Again", "a@x.com", "pw123456")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
	t.Run("duplicate email different case", func(t *testing.T) {
		_, err := svc.Register(ctx, "Alice Shouting", "A@X.COM", "pw123456")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Register(ctx, "Bob", "", "pw123456")
		assert.ErrorIs(t, err, ErrMissingCredentials)
		_, err = svc.Register(ctx, "Bob", "b@x.com", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
	t.Run("name is trimmed", func(t *testing.T) {
		user, err := svc.Register(ctx, "  Carol  ", "c@x.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, "Carol", user.Name)
	})
	assert.Len(t, users.users, 2)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := svc.Authenticate(ctx, "a@x.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", session.Email)
		assert.True(t, session.Valid())
		assert.WithinDuration(t, session.IssuedAt.Add(time.Hour), session.ExpiresAt, time.Second)
	})
	t.Run("case-insensitive email", func(t *testing.T) {
		session, err := svc.Authenticate(ctx, "A@X.Com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", session.Email)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("unknown email yields the same error as a bad password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@x.com", "pw123456")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "pw123456")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestTokens(t *testing.T) {
	svc, _, _ := newTestService(t)
	now := time.Now()
	session := &models.Session{
		UserID:    42,
		Email:     "a@x.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	t.Run("roundtrip", func(t *testing.T) {
		token, err := svc.NewToken(session)
		require.NoError(t, err)
		parsed, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, session.UserID, parsed.UserID)
		assert.Equal(t, session.Email, parsed.Email)
		assert.WithinDuration(t, session.ExpiresAt, parsed.ExpiresAt, time.Second)
	})
	t.Run("expired", func(t *testing.T) {
		expired := &models.Session{
			UserID:    42,
			Email:     "a@x.com",
			IssuedAt:  now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(-time.Hour),
		}
		token, err := svc.NewToken(expired)
		require.NoError(t, err)
		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("wrong secret", func(t *testing.T) {
		other := New(svc.log, nil, nil, inlineExecutor{}, "other-secret", time.Hour)
		token, err := other.NewToken(session)
		require.NoError(t, err)
		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
