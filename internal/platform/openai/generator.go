// Package openai implements proposal text generation using the OpenAI
// chat-completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/proposalforge/proposalforge/internal/config"
	"github.com/proposalforge/proposalforge/internal/domain"
	"github.com/proposalforge/proposalforge/internal/generation"
)

// Generator implements the generation.Generator interface using the
// official openai-go SDK.
type Generator struct {
	logger          *slog.Logger
	client          openai.Client
	model           string
	maxOutputTokens int64
	temperature     float64
}

// NewGenerator creates a Generator from the LLM configuration. The API key
// and model name are required.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	// The SDK's built-in retries are disabled: the application-level retry
	// wrapper owns the backoff policy.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Generator{
		logger:          logger,
		client:          openai.NewClient(opts...),
		model:           cfg.Model,
		maxOutputTokens: int64(cfg.MaxOutputTokens),
		temperature:     cfg.Temperature,
	}, nil
}

// GenerateProposal sends the two-part proposal instruction to the
// chat-completions API and returns the first completion's text, trimmed.
func (g *Generator) GenerateProposal(ctx context.Context, req *domain.ProposalRequest) (string, error) {
	systemPrompt := generation.ProposalSystemPrompt(req.Type)
	userPrompt := generation.ProposalUserPrompt(req)

	g.logger.InfoContext(ctx, "requesting proposal text",
		"model", g.model,
		"proposal_type", req.Type,
		"prompt_length", len(userPrompt))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(g.maxOutputTokens),
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "chat completion call failed", "error", err)
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completions returned", generation.ErrInvalidResponse)
	}

	proposal := strings.TrimSpace(resp.Choices[0].Message.Content)
	if proposal == "" {
		return "", fmt.Errorf("%w: empty completion content", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "proposal text generated",
		"model", g.model,
		"proposal_length", len(proposal))

	return proposal, nil
}
