package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("password is incorrect")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNoToken            = errors.New("no token provided")
	ErrNotAdmin           = errors.New("user does not have admin access")
	ErrForbidden          = errors.New("access denied")
	ErrOfferNotFound      = errors.New("offer not found")
)
