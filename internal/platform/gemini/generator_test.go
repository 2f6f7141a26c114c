package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalforge/proposalforge/internal/config"
	"github.com/proposalforge/proposalforge/internal/generation"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:        "gemini",
		Model:           "gemini-2.0-flash",
		GeminiAPIKey:    "gm-test",
		MaxOutputTokens: 500,
		Temperature:     0.7,
	}
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		gen, err := NewGenerator(context.Background(), logger, testLLMConfig())
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(context.Background(), nil, testLLMConfig())
		assert.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Parallel()

		cfg := testLLMConfig()
		cfg.GeminiAPIKey = ""
		_, err := NewGenerator(context.Background(), logger, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing model", func(t *testing.T) {
		t.Parallel()

		cfg := testLLMConfig()
		cfg.Model = ""
		_, err := NewGenerator(context.Background(), logger, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}
