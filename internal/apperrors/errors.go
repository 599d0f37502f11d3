package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Ledger validation errors. They wrap ErrValidation so callers can match
// either the specific failure or the broad class with errors.Is.
var (
	// ErrInvalidAmount indicates a payment amount that is zero or negative.
	ErrInvalidAmount = fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	// ErrInvalidDate indicates a missing date.
	ErrInvalidDate = fmt.Errorf("%w: date is missing or invalid", ErrValidation)
	// ErrUnknownItem indicates a reference to an account line item that does not exist.
	ErrUnknownItem = fmt.Errorf("%w: account item not found", ErrValidation)
)
