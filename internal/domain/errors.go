package domain

import (
	"errors"
	"strings"
)

var (
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrInvalidConnection    = errors.New("invalid connection")
	ErrMissingConfiguration = errors.New("missing configuration")
)

// MissingConfigurationError lists required configuration keys that were
// absent or empty.
type MissingConfigurationError struct {
	Keys []string
}

func (e *MissingConfigurationError) Error() string {
	return ErrMissingConfiguration.Error() + ": " + strings.Join(e.Keys, ", ")
}

func (e *MissingConfigurationError) Is(target error) bool {
	return target == ErrMissingConfiguration
}
