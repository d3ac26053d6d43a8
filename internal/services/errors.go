package services

import (
	"errors"

	"lascala/internal/repos"
)

var (
	ErrNotFound       = repos.ErrNotFound
	ErrBadCreds       = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidListing = errors.New("invalid listing")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownSize    = errors.New("size not offered for this product")
	ErrOutOfStock     = errors.New("out of stock")
)
