package main

import (
	"context"
	"net/http"
	"strings"

	"cinevault/proj/internal/domain/models"
	"cinevault/proj/internal/services/auth"
)

type CtxKey string

const CtxKeySession CtxKey = "session"

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil && err != http.ErrAbortHandler {
				app.Http.ServerError(w, r, err.(error), "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Authenticate resolves the session token (Bearer header or cookie) into a
// Session value on the request context. An absent, invalid or expired token
// leaves the session nil; enforcement belongs to the gate, not here.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session *models.Session

		var token string
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			const bearerLength = len("Bearer ")
			if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < bearerLength+1 {
				app.log.Warn("Invalid auth header", "header", authHeader)
				app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Bearer <token>'")
				return
			}
			token = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := r.Cookie(sessionCookieName); err == nil {
			token = cookie.Value
		}
		if token != "" {
			parsed, err := app.services.Auth.VerifyToken(token)
			if err != nil {
				app.log.Warn("Invalid or expired session token", "path", r.URL.Path)
			} else {
				session = parsed
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeySession, session))
		next.ServeHTTP(w, r)
	})
}

// AuthorizeGate runs before any protected handler and redirects
// unauthenticated access to the login path. Public and bypassed paths pass
// through untouched.
func (app *Application) AuthorizeGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		if app.gate.Authorize(r.URL.Path, session) == auth.Redirect {
			app.log.Info("unauthenticated access to protected path", "path", r.URL.Path)
			http.Redirect(w, r, app.gate.LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		if !session.Valid() {
			app.Http.Unauthorized(w, r, "You must be signed in to manage favorites")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(CtxKeySession).(*models.Session)
	return session
}
