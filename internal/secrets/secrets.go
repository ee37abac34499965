// Package secrets fetches the shared origin-verify secret.
//
// Every lookup goes to the backing store; nothing is cached between calls.
// All failures surface as ErrSecretUnavailable so callers can fail closed
// without telling "not found" apart from "network down".
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// ErrSecretUnavailable wraps every lookup failure.
var ErrSecretUnavailable = errors.New("secret unavailable")

func unavailable(id string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrSecretUnavailable, id, cause)
}

// Static serves a fixed value. Local development only.
type Static struct {
	value string
}

// NewStatic returns a lookup that always answers with value.
func NewStatic(value string) *Static {
	return &Static{value: value}
}

// Fetch returns the configured value, or ErrSecretUnavailable when it is empty.
func (s *Static) Fetch(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", unavailable(id, err)
	}
	if s.value == "" {
		return "", unavailable(id, errors.New("empty secret value"))
	}
	return s.value, nil
}
