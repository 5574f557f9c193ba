package persona

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/basedcaster/core/internal/modules/processing/ai"
)

const (
	svgDataURIPrefix      = "data:image/svg+xml;charset=utf-8,"
	posterMaxOutputTokens = 8192
)

var errEmptySVG = errors.New("AI response has no svg")

// SynthesizePoster asks the model for an SVG poster and returns it as a data URI.
// Any failure yields "" with the reason attached.
func (s *Service) SynthesizePoster(ctx context.Context, req PosterRequest) (out ai.Outcome[string]) {
	defer func() { s.observe("poster", out.Status) }()

	req.Username = strings.TrimPrefix(strings.TrimSpace(req.Username), "@")
	req.Personality = orDefault(req.Personality, DefaultPersonality)
	req.Emoji = orDefault(req.Emoji, DefaultEmoji)

	text, err := s.generate(ctx, ai.Request{
		Prompt:          buildPosterPrompt(req),
		JSONMode:        true,
		MaxOutputTokens: posterMaxOutputTokens,
	})
	if err != nil {
		s.logDegraded("poster", ai.StatusOf(err), err)
		return ai.Failed[string](err)
	}

	var parsed struct {
		SVG string `json:"svg"`
	}
	if err := ai.DecodeJSON(text, &parsed); err != nil {
		s.logDegraded("poster", ai.StatusOf(err), err)
		return ai.Failed[string](err)
	}

	svg := strings.TrimSpace(parsed.SVG)
	if svg == "" {
		s.logDegraded("poster", ai.StatusEmpty, errEmptySVG)
		return ai.Degraded[string](ai.StatusEmpty, errEmptySVG)
	}
	return ai.Succeeded(SVGDataURI(svg))
}

// SVGDataURI wraps SVG markup as a percent-encoded data URI.
func SVGDataURI(svg string) string {
	return svgDataURIPrefix + encodeURIComponent(svg)
}

// uriComponentUnescaper restores the characters JavaScript's encodeURIComponent
// leaves alone but url.QueryEscape escapes.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
