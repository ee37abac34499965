package ports

import "context"

//go:generate mockgen -source=secrets.go -destination=../mocks/secrets-mocks.go -package=mocks SecretLookup

// SecretLookup retrieves the current value of a named secret.
// Implementations must not cache and must report every failure as an error.
type SecretLookup interface {
	Fetch(ctx context.Context, id string) (string, error)
}
