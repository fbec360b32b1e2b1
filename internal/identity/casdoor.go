package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// CasdoorVerifier checks Casdoor-issued JWTs locally against the configured certificate
type CasdoorVerifier struct {
	client *casdoorsdk.Client
}

func NewCasdoorVerifier(cfg CasdoorConfig) *CasdoorVerifier {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)
	return &CasdoorVerifier{client: client}
}

func (v *CasdoorVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims, err := v.client.ParseJwtToken(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID := claims.Id
	if userID == "" {
		return Identity{}, fmt.Errorf("%w: missing user id claim", ErrInvalidToken)
	}

	return Identity{
		Subject: userID,
		Email:   claims.User.Email,
		Claims: map[string]interface{}{
			"name":         claims.User.Name,
			"display_name": claims.User.DisplayName,
			"type":         claims.User.Type,
			"owner":        claims.User.Owner,
		},
	}, nil
}
