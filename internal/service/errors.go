package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrMissingFields      = errors.New("missing required fields")
	ErrNoShippingAddress  = errors.New("user or shipping address not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be positive")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrForbidden          = errors.New("not authorized")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTooManyImages      = errors.New("too many images")
	ErrRecoveryMailFailed = errors.New("failed to send email")
)
