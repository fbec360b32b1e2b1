package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQuotaExceeded is returned once a caller has used up its window
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// Limiter is a fixed-window counter per caller kept in Redis. A nil Redis
// client disables limiting.
type Limiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		limit:  int64(limit),
		window: window,
		prefix: "ai:quota:",
		now:    time.Now,
	}
}

func (l *Limiter) key(caller string) string {
	bucket := l.now().Unix() / int64(l.window/time.Second)
	return fmt.Sprintf("%s%s:%d", l.prefix, caller, bucket)
}

// Allow consumes one call for caller. It returns ErrQuotaExceeded when the
// window is full, or a wrapped redis error when the counter is unreachable.
func (l *Limiter) Allow(ctx context.Context, caller string) error {
	if l == nil || l.redis == nil || l.limit <= 0 || l.window < time.Second {
		return nil
	}
	if caller == "" {
		caller = "anonymous"
	}

	key := l.key(caller)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment quota counter: %w", err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set quota expiry: %w", err)
		}
	}
	if count > l.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Limited wraps a Generator so every call first consumes quota for the
// caller found in ctx. An unreachable counter lets the call through.
type Limited struct {
	next    Generator
	limiter *Limiter
	logger  *slog.Logger
}

func NewLimited(next Generator, limiter *Limiter, logger *slog.Logger) *Limited {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limited{next: next, limiter: limiter, logger: logger}
}

type callerKey struct{}

// WithCaller tags ctx with the identifier quota is charged to
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the identifier set by WithCaller
func CallerFrom(ctx context.Context) string {
	caller, _ := ctx.Value(callerKey{}).(string)
	return caller
}

func (g *Limited) Generate(ctx context.Context, model, prompt string) (string, error) {
	if err := g.limiter.Allow(ctx, CallerFrom(ctx)); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return "", err
		}
		g.logger.Warn("Quota check failed, allowing call", "caller", CallerFrom(ctx), "error", err)
	}
	return g.next.Generate(ctx, model, prompt)
}
