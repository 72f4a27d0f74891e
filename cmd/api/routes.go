package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const loginPath = "/login"

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.Authenticate)
	router.Use(app.AuthorizeGate)
	router.Get("/healthcheck", app.healthcheck)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.register)
		r.Post("/login", app.login)
		r.Post("/logout", app.logout)
	})
	router.Route("/movies", func(r chi.Router) {
		r.Get("/popular", app.getPopularMovies)
		r.Get("/search", app.searchMovies)
		r.Get("/{id}", app.getMovie)
	})
	router.Route("/favorites", func(r chi.Router) {
		r.Use(app.requireAuthenticatedUser)
		r.Get("/", app.listFavorites)
		r.Post("/", app.toggleFavorite)
	})
	return router
}
