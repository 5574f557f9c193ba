package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	RedisURL       string             `yaml:"redis_url"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	Tweets         TweetsConfig       `yaml:"tweets"`
	AI             AIConfig           `yaml:"ai"`
	Gallery        GalleryConfig      `yaml:"gallery"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// TweetsConfig configures the twitterapi.io client.
type TweetsConfig struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	MinIntervalMS   int    `yaml:"min_interval_ms"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// MinInterval is the wait between the first and second page request.
func (c TweetsConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMS) * time.Millisecond
}

func (c TweetsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c TweetsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AIConfig selects the generative model used by every AI-backed stage.
type AIConfig struct {
	Provider       string `yaml:"provider"`
	APIKey         string `yaml:"api_key"`
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Enabled reports whether an API key is configured.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type GalleryConfig struct {
	Limit   int `yaml:"limit"`
	TTLDays int `yaml:"ttl_days"`
}

func (c GalleryConfig) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}
