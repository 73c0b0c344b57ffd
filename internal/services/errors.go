package services

import "errors"

// Sentinels for precondition failures. Handlers are total: when one of
// these is returned the state was left untouched.
var (
	ErrNotFound         = errors.New("record not found")
	ErrFairModeDisabled = errors.New("fair mode is not active")
	ErrAlreadyResolved  = errors.New("report is not pending")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrBadCredentials   = errors.New("invalid email or password")
)
