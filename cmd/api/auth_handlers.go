package main

import (
	"errors"
	"net/http"
	"time"

	"cinevault/proj/internal/lib/validator"
	"cinevault/proj/internal/services/auth"
)

const sessionCookieName = "session"

type registerInput struct {
	Name     string `json:"name" schema:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" schema:"email" validate:"required,email"`
	Password string `json:"password" schema:"password" validate:"required,max=72"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	var err error
	if isFormRequest(r) {
		err = app.readForm(r, &input)
	} else {
		err = app.readJSON(w, r, &input)
	}
	if err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	user, err := app.services.Auth.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, auth.ErrDuplicateEmail):
			app.Http.Conflict(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"user_id": user.ID}, "User registered")
}

type loginInput struct {
	Email    string `json:"email" schema:"email" validate:"required,email"`
	Password string `json:"password" schema:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	var err error
	if isFormRequest(r) {
		err = app.readForm(r, &input)
	} else {
		err = app.readJSON(w, r, &input)
	}
	if err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	session, err := app.services.Auth.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			app.Http.Unauthorized(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	token, err := app.services.Auth.NewToken(session)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	app.Http.Ok(w, r, envelop{"access_token": token}, "")
}

// logout clears the session cookie. The token itself stays valid until it
// expires; invalidation is client-side only.
func (app *Application) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	app.Http.Ok(w, r, nil, "Signed out")
}
