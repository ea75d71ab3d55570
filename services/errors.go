// Package services implements the gallery's moderation, rating and access rules.
package services

import "errors"

var (
	ErrUnauthorized  = errors.New("could not validate credentials")
	ErrForbidden     = errors.New("not authorized")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("email already registered")
	ErrInvalidStatus = errors.New("invalid component status")
)
