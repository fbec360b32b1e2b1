package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken is returned when a token is missing, malformed or rejected by the provider
	ErrInvalidToken = errors.New("invalid token")
	// ErrProviderUnavailable is returned when the identity provider cannot be reached
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Identity is a verified token subject
type Identity struct {
	Subject string
	Email   string
	Claims  map[string]interface{}
}

// Verifier decodes a bearer token into its verified subject
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierFunc adapts a plain function to Verifier
type VerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}
