package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"excel-analytics-api/config"
)

var ErrEmptyResponse = errors.New("model returned no text")

// Generator is the part of genai.Models the summarizer calls.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	logger  *zap.Logger
	gen     Generator
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, logger *zap.Logger, cfg config.AI) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	logger.Info("gemini summarizer ready", zap.String("model", cfg.Model))

	return NewGeminiWithGenerator(logger, client.Models, cfg.Model, cfg.Timeout), nil
}

func NewGeminiWithGenerator(logger *zap.Logger, gen Generator, model string, timeout time.Duration) *Gemini {
	return &Gemini{logger: logger, gen: gen, model: model, timeout: timeout}
}

func (g *Gemini) Summarize(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.gen.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Info("gemini summary received",
		zap.String("model", g.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Duration("took", time.Since(start)),
	)

	return text, nil
}

// Unavailable stands in when no API key is configured.
type Unavailable struct{}

var ErrNotConfigured = errors.New("ai summarizer is not configured")

func (Unavailable) Summarize(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
