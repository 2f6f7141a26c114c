package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Image  ImageConfig  `mapstructure:"image"  validate:"required"`
	Retry  RetryConfig  `mapstructure:"retry"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains the text-generation settings. Exactly one provider is
// active; its API key is required at startup.
type LLMConfig struct {
	Provider        string  `mapstructure:"provider"          validate:"required,oneof=openai gemini"`
	Model           string  `mapstructure:"model"             validate:"required"`
	BaseURL         string  `mapstructure:"base_url"          validate:"omitempty,url"`
	OpenAIAPIKey    string  `mapstructure:"openai_api_key"    validate:"required_if=Provider openai"`
	GeminiAPIKey    string  `mapstructure:"gemini_api_key"    validate:"required_if=Provider gemini"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" validate:"required,gt=0"`
	Temperature     float64 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
}

// ImageConfig contains the text-to-image settings, including where
// generated images are written.
type ImageConfig struct {
	APIToken       string  `mapstructure:"api_token"       validate:"required"`
	Model          string  `mapstructure:"model"           validate:"required"`
	BaseURL        string  `mapstructure:"base_url"        validate:"required,url"`
	OutputDir      string  `mapstructure:"output_dir"      validate:"required"`
	InferenceSteps int     `mapstructure:"inference_steps" validate:"required,gt=0"`
	GuidanceScale  float64 `mapstructure:"guidance_scale"  validate:"required,gt=0"`
}

// RetryConfig contains the outbound-call retry settings.
type RetryConfig struct {
	MaxAttempts  int `mapstructure:"max_attempts"  validate:"required,gte=1"`
	FloorSeconds int `mapstructure:"floor_seconds" validate:"required,gte=1"`
	CapSeconds   int `mapstructure:"cap_seconds"   validate:"required,gtefield=FloorSeconds"`
}
