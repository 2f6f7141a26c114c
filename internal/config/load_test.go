package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearSecretEnv pins every secret-bearing variable to empty so results do
// not depend on the host environment. Individual tests then set what they
// need via t.Setenv.
func clearSecretEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"OPENAI_API_KEY",
		"GEMINI_API_KEY",
		"HUGGINGFACE_API_TOKEN",
		"PROPOSAL_LLM_OPENAI_API_KEY",
		"PROPOSAL_LLM_GEMINI_API_KEY",
		"PROPOSAL_IMAGE_API_TOKEN",
		"PROPOSAL_LLM_PROVIDER",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadWithDefaultsAndSecrets(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, 500, cfg.LLM.MaxOutputTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, "hf-test", cfg.Image.APIToken)
	assert.Equal(t, "stabilityai/stable-diffusion-2-1", cfg.Image.Model)
	assert.Equal(t, "static/images", cfg.Image.OutputDir)
	assert.Equal(t, 50, cfg.Image.InferenceSteps)
	assert.InDelta(t, 7.5, cfg.Image.GuidanceScale, 0.0001)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 4, cfg.Retry.FloorSeconds)
	assert.Equal(t, 10, cfg.Retry.CapSeconds)
}

func TestLoadMissingTextSecretFails(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-test")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAIAPIKey")
}

func TestLoadMissingImageSecretFails(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIToken")
}

func TestLoadGeminiProviderRequiresGeminiKey(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("PROPOSAL_LLM_PROVIDER", "gemini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-test")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeminiAPIKey")

	t.Setenv("GEMINI_API_KEY", "gm-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gm-test", cfg.LLM.GeminiAPIKey)
}

func TestLoadModelDefaultFollowsProvider(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("PROPOSAL_LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model,
		"gemini provider must not default to an OpenAI model name")

	t.Setenv("PROPOSAL_LLM_MODEL", "gemini-2.5-pro")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model, "explicit model wins over the provider default")
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-test")
	t.Setenv("PROPOSAL_SERVER_PORT", "8080")
	t.Setenv("PROPOSAL_RETRY_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}
