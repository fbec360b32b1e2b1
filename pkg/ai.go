package pkg

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/config"
)

// NewGenerator builds the Gemini generator, quota-limited when redis is
// available. Without an API key every call fails and callers serve fallbacks.
func NewGenerator(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) (ai.Generator, error) {
	if cfg.AI.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, AI features will serve fallback content")
		return ai.Unconfigured{}, nil
	}

	gemini, err := ai.NewGeminiGenerator(ctx, cfg.AI.APIKey)
	if err != nil {
		return nil, err
	}
	if redisClient == nil {
		return gemini, nil
	}

	limiter := ai.NewLimiter(redisClient, cfg.AI.RateLimit, cfg.AI.RateLimitWindow)
	logger.Info("AI quota enabled", "limit", cfg.AI.RateLimit, "window", cfg.AI.RateLimitWindow)
	return ai.NewLimited(gemini, limiter, logger), nil
}
