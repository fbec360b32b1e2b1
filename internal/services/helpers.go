package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
)

// authenticate verifies token and returns its subject
func authenticate(ctx context.Context, verifier identity.Verifier, token string) (identity.Identity, error) {
	if token == "" {
		return identity.Identity{}, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	id, err := verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrProviderUnavailable) {
			return identity.Identity{}, fmt.Errorf("%w: %v", ErrExternalService, err)
		}
		return identity.Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if id.Subject == "" {
		return identity.Identity{}, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}
	return id, nil
}

// authorizeSubject verifies token and requires its subject to equal subjectID
func authorizeSubject(ctx context.Context, verifier identity.Verifier, token, subjectID string) (identity.Identity, error) {
	id, err := authenticate(ctx, verifier, token)
	if err != nil {
		return id, err
	}
	if id.Subject != subjectID {
		return id, fmt.Errorf("%w: token subject does not match", ErrUnauthorized)
	}
	return id, nil
}

func validate(v *validator.Validator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}

// publish sends an event and logs a failure; it never fails the caller
func publish(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		logger.Warn("Failed to publish event", "type", eventType, "error", err)
	}
}
