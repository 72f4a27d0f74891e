package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cinevault/proj/internal/domain/models"
	"cinevault/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// hashCost is tuned so a single verification takes on the order of 100ms.
const hashCost = 12

// dummyHash is compared against when the email is unknown, so that branch
// costs the same as a real password mismatch.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

type UserStorage interface {
	Insert(ctx context.Context, name, email string, passwordHash []byte) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	storage      UserStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	secret       []byte
	sessionTTL   time.Duration
}

func New(
	log *slog.Logger,
	storage UserStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		secret:       []byte(secret),
		sessionTTL:   sessionTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AuthService) sendWelcomeEmail(user *models.User) {
	a.log.Info("sending welcome email", "email", user.Email)
	err := a.mailer.Send(user.Email, "user_welcome.html", map[string]any{
		"name": user.Name,
	})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}

func (a *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "auth.AuthService.Register"
	log := a.log.With("op", op, "email", email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		log.Error("Error hashing password", "errMsg", err.Error())
		return nil, err
	}
	user, err := a.storage.Insert(ctx, strings.TrimSpace(name), normalizeEmail(email), passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already registered")
			return nil, ErrDuplicateEmail
		}
		log.Error(err.Error())
		return nil, err
	}
	a.taskExecutor.Add(func() { a.sendWelcomeEmail(user) })
	return user, nil
}

// Authenticate verifies credentials and returns a fresh session. Unknown
// email and wrong password collapse into ErrInvalidCredentials so responses
// never reveal whether an email is registered.
func (a *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "auth.AuthService.Authenticate"
	log := a.log.With("op", op, "email", email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	user, err := a.storage.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			log.Info("unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, ErrInvalidCredentials
	}
	now := time.Now()
	return &models.Session{
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(a.sessionTTL),
	}, nil
}

func (a *AuthService) NewToken(session *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   session.UserID,
		"email": session.Email,
		"iat":   session.IssuedAt.Unix(),
		"exp":   session.ExpiresAt.Unix(),
	})
	return token.SignedString(a.secret)
}

// VerifyToken is pure computation: signature plus expiry, no storage access.
func (a *AuthService) VerifyToken(tokenStr string) (*models.Session, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)
	return &models.Session{
		UserID:    int64(uid),
		Email:     email,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
