package catalog

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrUpstream      = errors.New("catalog provider request failed")
)
