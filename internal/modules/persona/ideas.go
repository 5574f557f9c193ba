package persona

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/basedcaster/core/internal/modules/processing/ai"
	"golang.org/x/sync/errgroup"
)

const listMaxOutputTokens = 2048

var errNoItems = errors.New("AI response has no items")

// GenerateList asks the model for a titled list. Degraded outcomes still
// carry an empty, non-nil slice.
func (s *Service) GenerateList(ctx context.Context, promptBody string) (out ai.Outcome[[]SuggestionItem]) {
	defer func() { s.observe("ideas", out.Status) }()

	text, err := s.generate(ctx, ai.Request{
		Prompt:          buildListPrompt(promptBody),
		JSONMode:        true,
		MaxOutputTokens: listMaxOutputTokens,
	})
	if err != nil {
		return s.listFailed(ai.StatusOf(err), err)
	}

	var parsed struct {
		Items *[]SuggestionItem `json:"items"`
	}
	if err := ai.DecodeJSON(text, &parsed); err != nil {
		return s.listFailed(ai.StatusOf(err), err)
	}
	if parsed.Items == nil {
		return s.listFailed(ai.StatusEmpty, errNoItems)
	}
	return ai.Succeeded(cleanItems(*parsed.Items))
}

// GenerateIdeas builds the category's prompt for personality and generates the list.
func (s *Service) GenerateIdeas(ctx context.Context, category Category, personality string) (ai.Outcome[[]SuggestionItem], error) {
	prompt, ok := buildIdeaPrompt(category, orDefault(personality, DefaultPersonality))
	if !ok {
		return ai.Outcome[[]SuggestionItem]{}, fmt.Errorf("unknown idea category %q", category)
	}
	return s.GenerateList(ctx, prompt), nil
}

// GenerateAllIdeas generates every category concurrently. Each category degrades on its own.
func (s *Service) GenerateAllIdeas(ctx context.Context, personality string) map[Category]ai.Outcome[[]SuggestionItem] {
	results := make([]ai.Outcome[[]SuggestionItem], len(Categories))

	var g errgroup.Group
	for i, category := range Categories {
		g.Go(func() error {
			outcome, err := s.GenerateIdeas(ctx, category, personality)
			if err != nil {
				return err
			}
			results[i] = outcome
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[Category]ai.Outcome[[]SuggestionItem], len(Categories))
	for i, category := range Categories {
		out[category] = results[i]
	}
	return out
}

func (s *Service) listFailed(status ai.Status, reason error) ai.Outcome[[]SuggestionItem] {
	s.logDegraded("ideas", status, reason)
	outcome := ai.Degraded[[]SuggestionItem](status, reason)
	outcome.Value = []SuggestionItem{}
	return outcome
}

func cleanItems(items []SuggestionItem) []SuggestionItem {
	out := make([]SuggestionItem, 0, len(items))
	for _, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			continue
		}
		item.Subtitle = strings.TrimSpace(item.Subtitle)
		item.Reason = strings.TrimSpace(item.Reason)
		out = append(out, item)
	}
	return out
}
