package pkg

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"

	"github.com/SAP-F-2025/nova-scholar-service/internal/config"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
)

// NewVerifier builds the token verifier for the configured provider
func NewVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (identity.Verifier, error) {
	switch cfg.Auth.Provider {
	case config.AuthFirebase:
		if app == nil {
			return nil, fmt.Errorf("firebase auth requires a firebase app")
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
		}
		return identity.NewFirebaseVerifier(client), nil

	case config.AuthCasdoor:
		return identity.NewCasdoorVerifier(cfg.Casdoor), nil

	case config.AuthStatic:
		v, err := StaticVerifier(cfg.Auth.StaticTokens)
		if err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}
}

// StaticVerifier parses "token:uid:email" entries; email may be omitted
func StaticVerifier(entries []string) (*identity.StaticVerifier, error) {
	v := identity.NewStaticVerifier()
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid static token entry %q", entry)
		}
		email := ""
		if len(parts) == 3 {
			email = parts[2]
		}
		v.Add(parts[0], parts[1], email)
	}
	return v, nil
}
