package identity

import (
	"context"
	"sync"
)

// StaticVerifier resolves tokens from a fixed table. Used by tests and
// local runs with AUTH_PROVIDER=static.
type StaticVerifier struct {
	mu     sync.RWMutex
	tokens map[string]Identity
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{tokens: make(map[string]Identity)}
}

// Add registers token as belonging to subject
func (v *StaticVerifier) Add(token, subject, email string) *StaticVerifier {
	v.mu.Lock()
	v.tokens[token] = Identity{Subject: subject, Email: email, Claims: map[string]interface{}{"email": email}}
	v.mu.Unlock()
	return v
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	v.mu.RLock()
	id, ok := v.tokens[token]
	v.mu.RUnlock()
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
