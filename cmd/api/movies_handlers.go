package main

import (
	"errors"
	"net/http"
	"strconv"

	"cinevault/proj/internal/clients/catalog"

	"github.com/go-chi/chi/v5"
)

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	movie, err := app.catalog.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found")
		default:
			app.Http.ServerError(w, r, err, "Failed to fetch movie details")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	result, err := app.catalog.Search(r.Context(), query, pageParam(r))
	if err != nil {
		app.Http.ServerError(w, r, err, "Failed to search movies")
		return
	}
	app.Http.Ok(w, r, envelop{"results": result.Movies, "totalResults": result.TotalResults}, "")
}

func (app *Application) getPopularMovies(w http.ResponseWriter, r *http.Request) {
	result, err := app.catalog.Popular(r.Context(), pageParam(r))
	if err != nil {
		app.Http.ServerError(w, r, err, "Failed to fetch popular movies")
		return
	}
	app.Http.Ok(w, r, envelop{"results": result.Movies, "totalResults": result.TotalResults}, "")
}
