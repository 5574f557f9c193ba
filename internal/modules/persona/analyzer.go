package persona

import (
	"context"
	"math"
	"strings"

	"github.com/basedcaster/core/internal/modules/processing/ai"
	"github.com/basedcaster/core/internal/modules/tweets"
)

const analysisMaxOutputTokens = 512

// Analyze asks the model to score a user's tweets.
// Any failure yields an empty RawAnalysis with the reason attached.
func (s *Service) Analyze(ctx context.Context, list []tweets.Tweet, username string) (out ai.Outcome[RawAnalysis]) {
	defer func() { s.observe("analysis", out.Status) }()

	text, err := s.generate(ctx, ai.Request{
		Prompt:          buildAnalysisPrompt(username, list),
		JSONMode:        true,
		MaxOutputTokens: analysisMaxOutputTokens,
	})
	if err != nil {
		s.logDegraded("analysis", ai.StatusOf(err), err)
		return ai.Failed[RawAnalysis](err)
	}

	var raw RawAnalysis
	if err := ai.DecodeJSON(text, &raw); err != nil {
		s.logDegraded("analysis", ai.StatusOf(err), err)
		return ai.Failed[RawAnalysis](err)
	}
	return ai.Succeeded(raw)
}

// Normalize applies defaults and clamps the score into [0, MaxScore].
func Normalize(raw RawAnalysis) Profile {
	var score float64
	if raw.Score != nil {
		score = float64(*raw.Score)
	}
	return Profile{
		Score:            ClampScore(score),
		Personality:      orDefault(raw.Personality, DefaultPersonality),
		Emoji:            orDefault(raw.Emoji, DefaultEmoji),
		BasedDescription: orDefault(raw.BasedDescription, DefaultDescription),
	}
}

// ClampScore rounds half up and clamps into [0, MaxScore]. NaN counts as 0.
func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	rounded := math.Floor(v + 0.5)
	switch {
	case rounded < 0:
		return 0
	case rounded > MaxScore:
		return MaxScore
	default:
		return int(rounded)
	}
}

func orDefault(v, fallback string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return fallback
}
