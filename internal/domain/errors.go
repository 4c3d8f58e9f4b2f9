package domain

import "errors"

var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidMobile = errors.New("invalid mobile number")
	ErrInvalidAmount = errors.New("invalid amount")
)

// IsValidation reports whether err is one of the field validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidMobile) ||
		errors.Is(err, ErrInvalidAmount)
}
