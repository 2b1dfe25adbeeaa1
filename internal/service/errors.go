package service

import (
	"errors"

	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrUnauthorized       = errors.New("unauthorized")
	ErrItemReferenced     = errors.New("item is referenced by bookings")
	ErrItemUnavailable    = errors.New("item is not available")
	ErrAdditionalDriver   = errors.New("additional driver details must be given exactly when the option is selected")
	ErrPayLaterNotAllowed = errors.New("supplier does not accept pay later bookings")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidRecompute   = errors.New("price can only be recomputed towards a non-terminal status")
)

// exitWithError logs a failed method exit. Missing records and refused callers are
// outcomes of the request, not faults, and log as rejections.
func exitWithError(method string, err error, args ...any) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
		logger.ExitMethodRejected(method, err, args...)
		return
	}
	logger.ExitMethodWithError(method, err, args...)
}
