package persona

import (
	"context"
	"strings"

	"github.com/basedcaster/core/internal/modules/processing/ai"
	"github.com/basedcaster/core/internal/modules/tweets"
	"go.uber.org/zap"
)

// TweetSource loads the tweets an analysis is based on.
type TweetSource interface {
	Fetch(ctx context.Context, username string, desired int) ([]tweets.Tweet, error)
}

// Service runs the analysis pipeline. A nil generator means AI is not
// configured; every AI-backed stage then reports ai.StatusDisabled.
type Service struct {
	tweets   TweetSource
	gen      ai.Generator
	logger   *zap.Logger
	observer StageObserver
}

// StageObserver is told how each AI-backed stage finished.
type StageObserver interface {
	ObserveStage(stage, status string)
}

func NewService(src TweetSource, gen ai.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{tweets: src, gen: gen, logger: logger}
}

// AnalyzeUser fetches tweets, scores them, and draws a poster from the normalized profile.
// Only tweet fetching can fail; AI stages degrade to defaults.
func (s *Service) AnalyzeUser(ctx context.Context, username string) (*AnalysisResult, error) {
	username = strings.TrimSpace(username)
	list, err := s.tweets.Fetch(ctx, username, tweets.DefaultDesiredCount)
	if err != nil {
		return nil, err
	}

	analysis := s.Analyze(ctx, list, username)
	profile := Normalize(analysis.Value)

	poster := s.SynthesizePoster(ctx, PosterRequest{
		Username:    username,
		Score:       profile.Score,
		Personality: profile.Personality,
		Emoji:       profile.Emoji,
	})

	s.logger.Info("user analyzed",
		zap.String("username", username),
		zap.Int("tweets", len(list)),
		zap.Int("score", profile.Score),
		zap.String("analysis", string(analysis.Status)),
		zap.String("poster", string(poster.Status)),
	)

	return &AnalysisResult{
		Profile:        profile,
		ImageDataURL:   poster.Value,
		Tweets:         list,
		AnalysisStatus: analysis.Status,
		PosterStatus:   poster.Status,
	}, nil
}

func (s *Service) SetObserver(o StageObserver) { s.observer = o }

func (s *Service) observe(stage string, status ai.Status) {
	if s.observer != nil {
		s.observer.ObserveStage(stage, string(status))
	}
}

func (s *Service) generate(ctx context.Context, req ai.Request) (string, error) {
	if s.gen == nil {
		return "", ai.ErrDisabled
	}
	return s.gen.Generate(ctx, req)
}

func (s *Service) logDegraded(stage string, status ai.Status, reason error) {
	if status == ai.StatusDisabled {
		s.logger.Debug("AI stage skipped", zap.String("stage", stage), zap.Error(reason))
		return
	}
	s.logger.Warn("AI stage degraded",
		zap.String("stage", stage),
		zap.String("status", string(status)),
		zap.Error(reason),
	)
}
