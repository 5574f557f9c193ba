package gallery

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service applies the gallery rules on top of a Store: newest first,
// capped at limit, createdAt unique within a device.
type Service struct {
	store  Store
	limit  int
	now    func() time.Time
	logger *zap.Logger

	mu sync.Mutex
}

type Option func(*Service)

func WithLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, limit: DefaultLimit, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save prepends a poster to the device's gallery and returns the stored entry.
func (s *Service) Save(ctx context.Context, device, username, imageDataURL string) (Entry, error) {
	imageDataURL = strings.TrimSpace(imageDataURL)
	if imageDataURL == "" {
		return Entry{}, ErrImageRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Username:     strings.TrimPrefix(strings.TrimSpace(username), "@"),
		ImageDataURL: imageDataURL,
		CreatedAt:    s.now().UnixMilli(),
	}
	existing, err := s.store.List(ctx, device)
	if err != nil {
		return Entry{}, err
	}
	if len(existing) > 0 && existing[0].CreatedAt >= entry.CreatedAt {
		entry.CreatedAt = existing[0].CreatedAt + 1
	}

	if err := s.store.Push(ctx, device, entry, s.limit); err != nil {
		return Entry{}, err
	}
	s.logger.Debug("gallery entry saved",
		zap.String("device", device),
		zap.String("username", entry.Username),
		zap.Int64("createdAt", entry.CreatedAt),
	)
	return entry, nil
}

func (s *Service) List(ctx context.Context, device string) ([]Entry, error) {
	return s.store.List(ctx, device)
}

func (s *Service) Remove(ctx context.Context, device string, createdAt int64) error {
	removed, err := s.store.Remove(ctx, device, createdAt)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, device string) error {
	return s.store.Clear(ctx, device)
}
