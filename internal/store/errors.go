package store

import "errors"

// Sentinel errors returned by the store layer. Services translate these
// into domain errors with HTTP status codes.
var (
	ErrMangaNotFound   = errors.New("manga not found")
	ErrDuplicateManga  = errors.New("manga already exists")
	ErrSessionNotFound = errors.New("session not found")
	ErrProfileNotFound = errors.New("profile not found")
)
