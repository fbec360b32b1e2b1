package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseVerifier checks Firebase Auth ID tokens
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) || auth.IsIDTokenRevoked(err) {
			return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	email, _ := decoded.Claims["email"].(string)
	return Identity{
		Subject: decoded.UID,
		Email:   email,
		Claims:  decoded.Claims,
	}, nil
}
