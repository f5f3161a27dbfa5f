package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/rcoffee/database"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNoCapacity         = errors.New("no table available for the requested date, time and party size")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountPending     = errors.New("Account Pending: your cashier account is waiting for approval")
	ErrEmailInUse         = errors.New("email already registered")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrConflict           = errors.New("record was modified by another request, reload and try again")
)

// storeErr converts repository errors into service errors, naming the
// record that was being touched.
func storeErr(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%s %w", what, ErrNotFound)
	case errors.Is(err, database.ErrStale):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func invalidTransition(kind string, from, to interface{}) error {
	return fmt.Errorf("%w: %s cannot move from %v to %v", ErrInvalidTransition, kind, from, to)
}
