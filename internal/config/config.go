package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config file, then applies environment overrides.
// A missing file is not an error: deployments may configure everything through the environment.
func Load(configPath string) (*AppConfig, error) {
	return load(configPath, os.LookupEnv)
}

func load(configPath string, lookup func(string) (string, bool)) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.Tweets = normalizeTweetsConfig(cfg.Tweets)
	cfg.AI = normalizeAIConfig(cfg.AI)
	cfg.Gallery = normalizeGalleryConfig(cfg.Gallery)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	switch cfg.AI.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOpenAICompatible, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("unknown ai.provider %q", cfg.AI.Provider)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Tweets: TweetsConfig{
			BaseURL:         defaultTweetsBaseURL,
			MinIntervalMS:   defaultTweetsMinInterval,
			CacheTTLSeconds: defaultTweetsCacheTTL,
			TimeoutSeconds:  defaultTweetsTimeout,
		},
		AI: AIConfig{
			Provider:       defaultAIProvider,
			TimeoutSeconds: defaultAITimeout,
		},
		Gallery: GalleryConfig{
			Limit:   defaultGalleryLimit,
			TTLDays: defaultGalleryTTLDays,
		},
	}
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v, ok := get(EnvAppEnv); ok {
		cfg.Env = v
	}
	if v, ok := get(EnvRedisURL); ok {
		cfg.RedisURL = v
	}
	if v, ok := get(EnvLogDir); ok {
		cfg.Paths.Logs = v
	}

	if v, ok := get(EnvTweetsAPIKey); ok {
		cfg.Tweets.APIKey = v
	}
	if v, ok := get(EnvTweetsBaseURL); ok {
		cfg.Tweets.BaseURL = v
	}
	if v, ok := get(EnvTweetsMinInterval); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTweetsMinInterval, v, err)
		}
		cfg.Tweets.MinIntervalMS = ms
	}

	if v, ok := get(EnvGeminiAPIKey); ok {
		cfg.AI.APIKey = v
	}
	if v, ok := get(EnvAIAPIKey); ok {
		cfg.AI.APIKey = v
	}
	if v, ok := get(EnvAIProvider); ok {
		cfg.AI.Provider = v
	}
	if v, ok := get(EnvAIModel); ok {
		cfg.AI.Model = v
	}
	if v, ok := get(EnvAIEndpoint); ok {
		cfg.AI.Endpoint = v
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// LogDir returns the configured log directory, or "" to let nativelog search for one.
func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.Paths.Logs)
}
