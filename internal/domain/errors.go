package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrUnknownRole        = errors.New("unknown user role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCustomerNotFound   = errors.New("customer phone not found")
)
