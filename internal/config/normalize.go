package config

import "strings"

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if o := strings.TrimSpace(origin); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	env = strings.ToLower(strings.TrimSpace(env))
	if env == "" {
		return defaultEnv
	}
	return env
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	if t == "openaicompatible" {
		return ProviderOpenAICompatible
	}
	return t
}

func normalizeTweetsConfig(cfg TweetsConfig) TweetsConfig {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTweetsBaseURL
	}
	if cfg.MinIntervalMS < 0 {
		cfg.MinIntervalMS = defaultTweetsMinInterval
	}
	if cfg.CacheTTLSeconds < 0 {
		cfg.CacheTTLSeconds = 0
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTweetsTimeout
	}
	return cfg
}

func normalizeAIConfig(cfg AIConfig) AIConfig {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.Provider = normalizeProviderType(cfg.Provider)
	if cfg.Provider == "" {
		cfg.Provider = defaultAIProvider
	}
	if cfg.Model == "" {
		cfg.Model = defaultModelFor(cfg.Provider)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultAITimeout
	}
	return cfg
}

func normalizeGalleryConfig(cfg GalleryConfig) GalleryConfig {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultGalleryLimit
	}
	if cfg.TTLDays <= 0 {
		cfg.TTLDays = defaultGalleryTTLDays
	}
	return cfg
}

func defaultModelFor(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderAnthropic:
		return "claude-haiku-4-5-20251001"
	default:
		return "gpt-4o-mini"
	}
}
