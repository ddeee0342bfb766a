package services

import (
	"errors"

	"github.com/terraincognita07/ruralhealth/internal/storage"
)

var (
	ErrNotFound           = storage.ErrNotFound
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrAdminDeleteDenied  = errors.New("admin accounts cannot be deleted")
)
