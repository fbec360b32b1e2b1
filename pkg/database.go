package pkg

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/SAP-F-2025/nova-scholar-service/internal/config"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store/firestoredb"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store/postgres"
)

// NewFirebaseApp initialises the Firebase app shared by Firestore and Auth.
// Without a credentials file it falls back to Application Default Credentials.
func NewFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.Store.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Store.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.Store.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.Store.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return app, nil
}

// InitStore opens the configured document store backend. app is only
// required for the firestore backend.
func InitStore(ctx context.Context, cfg *config.Config, app *firebase.App) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreFirestore:
		if app == nil {
			return nil, fmt.Errorf("firestore backend requires a firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to firestore: %w", err)
		}
		return firestoredb.New(client), nil

	case config.StorePostgres:
		s, err := postgres.Open(cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.StoreMemory:
		return store.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
