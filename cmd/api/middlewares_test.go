package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinevault/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(nil, t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeySession, testSession(time.Hour)))
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeySession, (*models.Session)(nil)))
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("expired session", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeySession, testSession(-time.Hour)))
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestAuthorizeGate(t *testing.T) {
	app := NewTestApplication(nil, t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("public path without session", func(t *testing.T) {
		for _, path := range []string{"/", "/login", "/register", "/movies", "/movies/tt0111161"} {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, path, nil)
			app.AuthorizeGate(next).ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusOK, recorder.Code, "path %s should be public", path)
		}
	})
	t.Run("protected path without session redirects to login", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		app.AuthorizeGate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, loginPath, recorder.Header().Get("Location"))
	})
	t.Run("protected path with session", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeySession, testSession(time.Hour)))
		app.AuthorizeGate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	app := NewTestApplication(nil, t)
	capture := func(dst **models.Session) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*dst = sessionFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}
	t.Run("valid bearer token", func(t *testing.T) {
		token, err := app.services.Auth.NewToken(testSession(time.Hour))
		require.NoError(t, err)
		var got *models.Session
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		app.Authenticate(capture(&got)).ServeHTTP(recorder, request)
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.UserID)
		assert.Equal(t, "test@gmail.com", got.Email)
	})
	t.Run("session cookie", func(t *testing.T) {
		token, err := app.services.Auth.NewToken(testSession(time.Hour))
		require.NoError(t, err)
		var got *models.Session
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
		app.Authenticate(capture(&got)).ServeHTTP(recorder, request)
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.UserID)
	})
	t.Run("expired token leaves session nil", func(t *testing.T) {
		token, err := app.services.Auth.NewToken(testSession(-time.Hour))
		require.NoError(t, err)
		var got *models.Session
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		app.Authenticate(capture(&got)).ServeHTTP(recorder, request)
		assert.Nil(t, got)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("malformed header", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
		request.Header.Set("Authorization", "Token abc")
		app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("no token", func(t *testing.T) {
		var got *models.Session
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/movies", nil)
		app.Authenticate(capture(&got)).ServeHTTP(recorder, request)
		assert.Nil(t, got)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
