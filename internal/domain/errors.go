package domain

import "errors"

var (
	// ErrQuizNotFound indicates the requested quiz ID has no record.
	ErrQuizNotFound = errors.New("quiz not found")
)
