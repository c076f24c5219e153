package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy surfaced by the registry, ledger and coordinator.
// Controllers translate these to HTTP status codes; wrap with %w so
// errors.Is keeps working through context added along the way.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
	ErrPersistence       = errors.New("persistence failure")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func invalidTransitionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

// persistErr wraps driver-level failures; gorm's not-found is mapped to the
// taxonomy instead of leaking through as a storage error.
func persistErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("%s", op)
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
