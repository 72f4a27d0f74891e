package main

import (
	"errors"
	"net/http"

	"cinevault/proj/internal/services/favorites"
)

type toggleFavoriteInput struct {
	MovieID string `json:"movieId"`
}

// toggleFavorite flips the movie's membership in the caller's favorites. The
// user is always the session user; the body carries only the movie id.
func (app *Application) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	var input toggleFavoriteInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	isFavorite, err := app.services.Favorites.Toggle(r.Context(), session.UserID, input.MovieID)
	if err != nil {
		if errors.Is(err, favorites.ErrMissingMovieID) {
			app.Http.BadRequest(w, r, "Movie ID is required")
			return
		}
		app.Http.ServerError(w, r, err, "Failed to manage favorites")
		return
	}
	msg := "Removed from favorites"
	if isFavorite {
		msg = "Added to favorites"
	}
	app.Http.Ok(w, r, envelop{"isFavorite": isFavorite}, msg)
}

func (app *Application) listFavorites(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	movieIDs, err := app.services.Favorites.List(r.Context(), session.UserID)
	if err != nil {
		app.Http.ServerError(w, r, err, "Failed to fetch favorites")
		return
	}
	if movieIDs == nil {
		movieIDs = []string{}
	}
	app.Http.Ok(w, r, envelop{"favorites": movieIDs}, "")
}
