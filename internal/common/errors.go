// Package common defines shared constants and sentinel errors used across
// the edora server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Entity-specific not-found errors. All of them match ErrorNotFound.
	ErrSubjectNotFound          = fmt.Errorf("subject %w", ErrorNotFound)
	ErrThemeNotFound            = fmt.Errorf("theme %w", ErrorNotFound)
	ErrSubjectReferenceNotFound = fmt.Errorf("referenced subject %w", ErrorNotFound)

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrBadCredentials = errors.New("incorrect username or password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
