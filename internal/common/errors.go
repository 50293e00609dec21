// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Upload validation errors, checked in this order.
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing type")
	ErrMissingData     = errors.New("missing data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrInvalidData     = errors.New("invalid data")

	// Registration errors.
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrAlreadyExists   = errors.New("already exist")

	// Thumbnail job errors.
	ErrMissingFileID = errors.New("missing fileId")
	ErrMissingUserID = errors.New("missing userId")
	ErrFileNotFound  = errors.New("file not found")
)
