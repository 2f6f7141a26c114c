// Package gemini implements proposal text generation using Google's Gemini
// API. It is the alternate backend behind the generation.Generator
// interface, selected with llm.provider=gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/proposalforge/proposalforge/internal/config"
	"github.com/proposalforge/proposalforge/internal/domain"
	"github.com/proposalforge/proposalforge/internal/generation"
)

// Generator implements the generation.Generator interface using the Gemini
// API.
type Generator struct {
	logger          *slog.Logger
	client          *genai.Client
	model           string
	maxOutputTokens int32
	temperature     float32
}

// NewGenerator creates a new instance of Generator with the provided
// dependencies. The Gemini API key and model name are required.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:          logger,
		client:          client,
		model:           cfg.Model,
		maxOutputTokens: int32(cfg.MaxOutputTokens),
		temperature:     float32(cfg.Temperature),
	}, nil
}

// GenerateProposal sends the proposal instruction to the Gemini API and
// returns the generated text, trimmed. Content blocked by safety filters
// is reported as generation.ErrContentBlocked and is not retryable.
func (g *Generator) GenerateProposal(ctx context.Context, req *domain.ProposalRequest) (string, error) {
	userPrompt := generation.ProposalUserPrompt(req)

	g.logger.InfoContext(ctx, "requesting proposal text",
		"model", g.model,
		"proposal_type", req.Type,
		"prompt_length", len(userPrompt))

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(
			generation.ProposalSystemPrompt(req.Type), genai.RoleUser),
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), genConfig)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	proposal := strings.TrimSpace(text.String())
	if proposal == "" {
		return "", fmt.Errorf("%w: empty completion text", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "proposal text generated",
		"model", g.model,
		"proposal_length", len(proposal))

	return proposal, nil
}
