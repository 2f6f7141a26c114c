package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file and environment
// variables, with environment variables taking precedence. Variables use
// the PROPOSAL_ prefix (e.g. PROPOSAL_SERVER_PORT); the provider secrets
// additionally bind to their conventional unprefixed names so deployments
// can keep using OPENAI_API_KEY, GEMINI_API_KEY and HUGGINGFACE_API_TOKEN.
//
// A missing required secret is reported as an error here, which callers
// must treat as fatal at startup.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables and defaults apply.
	}

	v.SetEnvPrefix("PROPOSAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindSecretEnvs(v)

	// The model default depends on the active provider, so it is resolved
	// only after the config file and environment have been read.
	v.SetDefault("llm.model", defaultModelFor(v.GetString("llm.provider")))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_output_tokens", 500)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("image.model", "stabilityai/stable-diffusion-2-1")
	v.SetDefault("image.base_url", "https://api-inference.huggingface.co")
	v.SetDefault("image.output_dir", "static/images")
	v.SetDefault("image.inference_steps", 50)
	v.SetDefault("image.guidance_scale", 7.5)

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.floor_seconds", 4)
	v.SetDefault("retry.cap_seconds", 10)
}

// defaultModelFor pairs the default model with the active provider so
// switching llm.provider without setting llm.model does not send an OpenAI
// model name to the Gemini API.
func defaultModelFor(provider string) string {
	if provider == "gemini" {
		return "gemini-2.0-flash"
	}
	return "gpt-3.5-turbo"
}

// bindSecretEnvs wires the secret keys to both the prefixed and the
// conventional unprefixed environment variable names. The first name with
// a value wins.
func bindSecretEnvs(v *viper.Viper) {
	// BindEnv only errors on an empty key, which cannot happen here.
	_ = v.BindEnv("llm.openai_api_key", "PROPOSAL_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini_api_key", "PROPOSAL_LLM_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("image.api_token", "PROPOSAL_IMAGE_API_TOKEN", "HUGGINGFACE_API_TOKEN")
}
