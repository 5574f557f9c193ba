package tweets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	appcfg "github.com/basedcaster/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTweetsAPI struct {
	t      *testing.T
	mu     sync.Mutex
	pages  map[int][]Tweet
	status int
	body   string
	calls  []int
}

func (api *fakeTweetsAPI) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/twitter/user/last_tweets" {
		api.t.Errorf("unexpected path %s", r.URL.Path)
	}
	if got := r.Header.Get("X-API-Key"); got != "tweets-key" {
		api.t.Errorf("unexpected api key %q", got)
	}
	if got := r.URL.Query().Get("userName"); got != "alice" {
		api.t.Errorf("unexpected userName %q", got)
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	api.mu.Lock()
	api.calls = append(api.calls, page)
	api.mu.Unlock()

	if api.status != 0 {
		w.WriteHeader(api.status)
		_, _ = w.Write([]byte(api.body))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"tweets": api.pages[page]})
}

func (api *fakeTweetsAPI) Calls() []int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]int(nil), api.calls...)
}

type recordingWaiter struct {
	waits []time.Duration
}

func (w *recordingWaiter) wait(_ context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)
	return nil
}

func makeTweets(prefix string, n int) []Tweet {
	out := make([]Tweet, n)
	for i := range out {
		out[i] = Tweet{ID: fmt.Sprintf("%s-%d", prefix, i), Text: fmt.Sprintf("%s tweet %d", prefix, i)}
	}
	return out
}

func newTestFetcher(t *testing.T, api *fakeTweetsAPI, opts ...Option) (*Fetcher, *recordingWaiter) {
	t.Helper()
	api.t = t
	server := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(server.Close)

	waiter := &recordingWaiter{}
	cfg := appcfg.TweetsConfig{
		APIKey:         "tweets-key",
		BaseURL:        server.URL,
		MinIntervalMS:  5000,
		TimeoutSeconds: 5,
	}
	opts = append([]Option{WithWaiter(waiter.wait)}, opts...)
	return NewFetcher(cfg, opts...), waiter
}

func TestFetchRejectsBlankUsernameBeforeNetwork(t *testing.T) {
	api := &fakeTweetsAPI{}
	f, waiter := newTestFetcher(t, api)

	for _, username := range []string{"", "   ", "\t\n"} {
		tweets, err := f.Fetch(context.Background(), username, 30)
		assert.ErrorIs(t, err, ErrUsernameRequired)
		assert.Nil(t, tweets)
	}
	assert.Empty(t, api.Calls())
	assert.Empty(t, waiter.waits)
}

func TestFetchRequiresAPIKey(t *testing.T) {
	f := NewFetcher(appcfg.TweetsConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := f.Fetch(context.Background(), "alice", 30)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestFetchSinglePageWhenEnough(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{1: makeTweets("p1", 20)}}
	f, waiter := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "alice", 15)
	require.NoError(t, err)

	assert.Len(t, tweets, 15)
	assert.Equal(t, "p1-0", tweets[0].ID)
	assert.Equal(t, []int{1}, api.Calls())
	assert.Empty(t, waiter.waits)
}

func TestFetchExactCountDoesNotFetchSecondPage(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{1: makeTweets("p1", 30)}}
	f, waiter := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "alice", 30)
	require.NoError(t, err)

	assert.Len(t, tweets, 30)
	assert.Equal(t, []int{1}, api.Calls())
	assert.Empty(t, waiter.waits)
}

func TestFetchEmptyFirstPageStops(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{}}
	f, waiter := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "alice", 30)
	require.NoError(t, err)

	assert.NotNil(t, tweets)
	assert.Empty(t, tweets)
	assert.Equal(t, []int{1}, api.Calls())
	assert.Empty(t, waiter.waits)
}

func TestFetchSecondPageAfterInterval(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{
		1: makeTweets("p1", 20),
		2: makeTweets("p2", 20),
	}}
	f, waiter := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "alice", 30)
	require.NoError(t, err)

	require.Len(t, tweets, 30)
	assert.Equal(t, "p1-0", tweets[0].ID)
	assert.Equal(t, "p1-19", tweets[19].ID)
	assert.Equal(t, "p2-0", tweets[20].ID)
	assert.Equal(t, "p2-9", tweets[29].ID)
	assert.Equal(t, []int{1, 2}, api.Calls())
	assert.Equal(t, []time.Duration{5 * time.Second}, waiter.waits)
}

func TestFetchSecondPageShortReturnsEverything(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{
		1: makeTweets("p1", 20),
		2: makeTweets("p2", 3),
	}}
	f, _ := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "alice", 30)
	require.NoError(t, err)
	assert.Len(t, tweets, 23)
}

func TestFetchAbsorbsUpstreamErrors(t *testing.T) {
	api := &fakeTweetsAPI{status: http.StatusTooManyRequests, body: `{"message":"slow down"}`}
	f, _ := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "alice", 30)
	require.NoError(t, err)
	assert.NotNil(t, tweets)
	assert.Empty(t, tweets)
}

func TestFetchAbsorbsSecondPageFailure(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{1: makeTweets("p1", 5)}}
	f, waiter := newTestFetcher(t, api, WithWaiter(func(context.Context, time.Duration) error {
		return context.Canceled
	}))

	tweets, err := f.Fetch(context.Background(), "alice", 30)
	require.NoError(t, err)
	assert.Empty(t, tweets)
	assert.Equal(t, []int{1}, api.Calls())
	assert.Empty(t, waiter.waits)
}

func TestFetchTrimsUsername(t *testing.T) {
	api := &fakeTweetsAPI{pages: map[int][]Tweet{1: makeTweets("p1", 2)}}
	f, _ := newTestFetcher(t, api)

	tweets, err := f.Fetch(context.Background(), "  alice ", 1)
	require.NoError(t, err)
	assert.Len(t, tweets, 1)
}

func TestRequestErrorMessage(t *testing.T) {
	api := &fakeTweetsAPI{status: http.StatusUnauthorized, body: `{"message":"invalid api key"}`}
	f, _ := newTestFetcher(t, api)

	_, err := f.request(context.Background(), "alice", 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid api key", apiErr.Error())

	api.body = "<html>bad gateway</html>"
	_, err = f.request(context.Background(), "alice", 1)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to fetch tweets.", apiErr.Message)
}

func TestTweetCreatedAcceptsBothSpellings(t *testing.T) {
	var tweets []Tweet
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"1","text":"a","created_at":"Mon Jan 01"},
		{"id":"2","text":"b","createdAt":"Tue Jan 02"},
		{"text":"c"}
	]`), &tweets))

	assert.Equal(t, "Mon Jan 01", tweets[0].Created())
	assert.Equal(t, "Tue Jan 02", tweets[1].Created())
	assert.Equal(t, "", tweets[2].Created())
}

func TestSleepContextHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), 0))
}
