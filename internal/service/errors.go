package service

import "errors"

// Sentinel errors shared across the store services. Handlers map these onto
// HTTP status codes; messages surfaced to users are wrapped around them at
// the call site.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrValidation      = errors.New("validation failed")
	ErrCartItemPending = errors.New("cart item is pending review")
	ErrEmptyCart       = errors.New("cart is empty")
)
