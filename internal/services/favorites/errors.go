package favorites

import "errors"

var ErrMissingMovieID = errors.New("movie id is required")
