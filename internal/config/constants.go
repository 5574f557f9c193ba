package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3000
	defaultEnv        = "development"

	defaultTweetsBaseURL     = "https://api.twitterapi.io"
	defaultTweetsMinInterval = 5000
	defaultTweetsCacheTTL    = 3600
	defaultTweetsTimeout     = 30

	defaultAIProvider = ProviderGemini
	defaultAITimeout  = 120

	defaultGalleryLimit   = 60
	defaultGalleryTTLDays = 30
)

// Supported AI provider types.
const (
	ProviderGemini           = "gemini"
	ProviderOpenAI           = "openai"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderAnthropic        = "anthropic"
)

// Environment variables that override the YAML file.
const (
	EnvTweetsAPIKey      = "TWITTERAPI_IO_KEY"
	EnvTweetsMinInterval = "TWITTERAPI_IO_MIN_INTERVAL_MS"
	EnvTweetsBaseURL     = "TWITTERAPI_IO_BASE_URL"
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvAIAPIKey          = "AI_API_KEY"
	EnvAIProvider        = "AI_PROVIDER"
	EnvAIModel           = "AI_MODEL"
	EnvAIEndpoint        = "AI_ENDPOINT"
	EnvPort              = "PORT"
	EnvRedisURL          = "REDIS_URL"
	EnvLogDir            = "BASEDCASTER_LOG_DIR"
	EnvAppEnv            = "APP_ENV"
)
