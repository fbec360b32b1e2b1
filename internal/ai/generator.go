package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

var (
	// ErrEmptyResponse is returned when the model answers with no text
	ErrEmptyResponse = errors.New("empty model response")
	// ErrNotConfigured is returned by a Generator built without credentials
	ErrNotConfigured = errors.New("generative service not configured")
)

// Generator produces text for a prompt with the named model
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func(ctx context.Context, model, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Unconfigured is the Generator used when no API key is set. Every call
// fails, so callers take their fallback path.
type Unconfigured struct{}

func (Unconfigured) Generate(ctx context.Context, model, prompt string) (string, error) {
	return "", ErrNotConfigured
}
