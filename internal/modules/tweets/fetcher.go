package tweets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	appcfg "github.com/basedcaster/core/internal/config"
	"go.uber.org/zap"
)

// DefaultDesiredCount is how many tweets an analysis asks for.
const DefaultDesiredCount = 30

const (
	lastTweetsPath         = "/twitter/user/last_tweets"
	fallbackFailureMessage = "Failed to fetch tweets."
)

var (
	ErrUsernameRequired = errors.New("twitter username is required")
	ErrAPIKeyMissing    = errors.New("twitter API key is not configured")
)

// Fetcher pulls a user's latest tweets, one or two pages at a time.
type Fetcher struct {
	cfg    appcfg.TweetsConfig
	client *http.Client
	cache  PageCache
	wait   func(ctx context.Context, d time.Duration) error
	logger *zap.Logger
}

type Option func(*Fetcher)

func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithCache enables the per-page response cache.
func WithCache(cache PageCache) Option {
	return func(f *Fetcher) { f.cache = cache }
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// WithWaiter replaces the pause taken before the second page request.
func WithWaiter(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) { f.wait = wait }
}

func NewFetcher(cfg appcfg.TweetsConfig, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		wait:   sleepContext,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns up to desired tweets for username, newest first.
//
// Only a blank username or a missing API key are reported as errors. Every
// other failure is logged and yields an empty slice, so callers must treat
// "no tweets" as a normal result.
func (f *Fetcher) Fetch(ctx context.Context, username string, desired int) ([]Tweet, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if strings.TrimSpace(f.cfg.APIKey) == "" {
		return nil, ErrAPIKeyMissing
	}
	if desired <= 0 {
		desired = DefaultDesiredCount
	}

	tweets, err := f.fetch(ctx, username, desired)
	if err != nil {
		f.logger.Error("fetch tweets failed", zap.String("username", username), zap.Error(err))
		return []Tweet{}, nil
	}
	return tweets, nil
}

func (f *Fetcher) fetch(ctx context.Context, username string, desired int) ([]Tweet, error) {
	page1, err := f.page(ctx, username, 1, true)
	if err != nil {
		return nil, err
	}
	if desired <= len(page1) || len(page1) == 0 {
		return truncate(page1, desired), nil
	}

	page2, hit := f.cached(ctx, username, 2)
	if !hit {
		interval := f.cfg.MinInterval()
		f.logger.Info("waiting before next page",
			zap.Duration("interval", interval),
			zap.Int("page", 2),
		)
		if err := f.wait(ctx, interval); err != nil {
			return nil, fmt.Errorf("wait before page 2: %w", err)
		}
		page2, err = f.page(ctx, username, 2, false)
		if err != nil {
			return nil, err
		}
	}

	combined := make([]Tweet, 0, len(page1)+len(page2))
	combined = append(combined, page1...)
	combined = append(combined, page2...)
	f.logger.Info("combined tweets",
		zap.Int("count", len(combined)),
		zap.Int("returning", min(desired, len(combined))),
	)
	return truncate(combined, desired), nil
}

// page returns one page, consulting the cache first when lookup is set.
func (f *Fetcher) page(ctx context.Context, username string, page int, lookup bool) ([]Tweet, error) {
	if lookup {
		if tweets, hit := f.cached(ctx, username, page); hit {
			return tweets, nil
		}
	}
	tweets, err := f.request(ctx, username, page)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		if err := f.cache.SetPage(ctx, username, page, tweets); err != nil {
			f.logger.Warn("cache tweets page failed", zap.Int("page", page), zap.Error(err))
		}
	}
	return tweets, nil
}

func (f *Fetcher) cached(ctx context.Context, username string, page int) ([]Tweet, bool) {
	if f.cache == nil {
		return nil, false
	}
	tweets, hit, err := f.cache.GetPage(ctx, username, page)
	if err != nil {
		f.logger.Warn("read cached tweets page failed", zap.Int("page", page), zap.Error(err))
		return nil, false
	}
	if hit {
		f.logger.Debug("tweets page cache hit", zap.Int("page", page), zap.Int("count", len(tweets)))
	}
	return tweets, hit
}

func (f *Fetcher) request(ctx context.Context, username string, page int) ([]Tweet, error) {
	query := neturl.Values{}
	query.Set("userName", username)
	query.Set("page", strconv.Itoa(page))
	url := strings.TrimRight(f.cfg.BaseURL, "/") + lastTweetsPath + "?" + query.Encode()

	f.logger.Info("fetching tweets", zap.Int("page", page), zap.String("url", url))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", f.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	f.logger.Info("tweets response", zap.Int("page", page), zap.Int("status", resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var payload lastTweetsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode tweets page %d: %w", page, err)
	}
	tweets := payload.Tweets
	if tweets == nil {
		tweets = []Tweet{}
	}
	f.logger.Info("tweets page loaded", zap.Int("page", page), zap.Int("count", len(tweets)))
	return tweets, nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	return fallbackFailureMessage
}

func truncate(tweets []Tweet, n int) []Tweet {
	if len(tweets) > n {
		return tweets[:n]
	}
	return tweets
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
