package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnvFiles loads .env style files into the process environment.
// Variables already set in the environment win over file values.
func LoadEnvFiles(logger *zap.Logger, files ...string) []string {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if logger != nil {
				logger.Warn("failed to load env file", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger != nil && len(loaded) > 0 {
		logger.Debug("loaded env files", zap.Strings("files", loaded))
	}
	return loaded
}
