package services

import "errors"

var (
	ErrTenantNotFound         = errors.New("tenant not found")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrUsernameTaken          = errors.New("username already in use")
	ErrProductNotFound        = errors.New("product not found")
	ErrProductExists          = errors.New("product already exists")
	ErrInventoryNotAdjusted   = errors.New("record saved but inventory was not adjusted")
	ErrTransportNotConfigured = errors.New("email transport is not configured")
	ErrStorageNotConfigured   = errors.New("object storage is not configured")
)
