package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/basedcaster/core/internal/modules/tweets"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func postJSON(t *testing.T, r http.Handler, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestAnalyzeHandler(t *testing.T) {
	gen := &stubGenerator{
		analysis: `{"score":777,"personality":"Builder","emoji":"🛠️","basedDescription":"Ships onchain."}`,
		poster:   `{"svg":"<svg/>"}`,
	}
	src := &stubTweets{tweets: thirtyTweets()}
	r := newTestRouter(NewService(src, gen, nil))

	code, body := postJSON(t, r, "/api/analyze", `{"username":"  @alice "}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "alice", body["username"])

	result, ok := body["result"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 777, result["score"])
	assert.Equal(t, "Builder", result["personality"])
	assert.Equal(t, "data:image/svg+xml;charset=utf-8,%3Csvg%2F%3E", result["imageDataUrl"])
	assert.Len(t, result["tweets"], 30)
}

func TestAnalyzeHandlerFailures(t *testing.T) {
	cases := []struct {
		name string
		src  *stubTweets
		body string
		want string
	}{
		{"blank username", &stubTweets{}, `{"username":"  "}`, "Please enter a Twitter username."},
		{"only at sign", &stubTweets{}, `{"username":"@"}`, "Please enter a Twitter username."},
		{"missing key", &stubTweets{err: tweets.ErrAPIKeyMissing}, `{"username":"alice"}`, "Twitter API key is not configured."},
		{"empty body", &stubTweets{}, ``, "Please enter a Twitter username."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(NewService(tc.src, nil, nil))
			code, body := postJSON(t, r, "/api/analyze", tc.body)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tc.want, body["error"])
		})
	}
}

func TestAnalyzeHandlerRejectsMalformedJSON(t *testing.T) {
	r := newTestRouter(NewService(&stubTweets{}, nil, nil))
	code, _ := postJSON(t, r, "/api/analyze", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPosterHandler(t *testing.T) {
	gen := &stubGenerator{poster: `{"svg":"<svg/>"}`}
	r := newTestRouter(NewService(nil, gen, nil))

	code, body := postJSON(t, r, "/api/poster", `{"username":"@alice","score":1200.4,"personality":"Degen","emoji":"🐸"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "data:image/svg+xml;charset=utf-8,%3Csvg%2F%3E", body["imageDataUrl"])
	assert.Contains(t, gen.Requests()[0].Prompt, "Degen • Based Score: 1000/1000")
}

func TestPosterHandlerFailure(t *testing.T) {
	r := newTestRouter(NewService(nil, &stubGenerator{poster: `{"svg":""}`}, nil))

	code, body := postJSON(t, r, "/api/poster", `{"username":"alice"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Failed to generate image.", body["error"])
}

func TestIdeasHandler(t *testing.T) {
	gen := &stubGenerator{list: `{"items":[{"title":"DEGEN","reason":"tips"}]}`}
	r := newTestRouter(NewService(nil, gen, nil))

	code, body := postJSON(t, r, "/api/ideas/memecoins", `{"personality":"Degen"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, []interface{}{map[string]interface{}{"title": "DEGEN", "reason": "tips"}}, body["items"])

	code, _ = postJSON(t, r, "/api/ideas/stocks", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestIdeasHandlerWithoutAI(t *testing.T) {
	r := newTestRouter(NewService(nil, nil, nil))

	code, body := postJSON(t, r, "/api/ideas/playlist", `{}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "disabled", body["status"])
	assert.Equal(t, []interface{}{}, body["items"])
}

func TestAllIdeasHandler(t *testing.T) {
	gen := &stubGenerator{list: `{"items":[{"title":"x"}]}`}
	r := newTestRouter(NewService(nil, gen, nil))

	code, body := postJSON(t, r, "/api/ideas", `{"personality":"Builder"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	for _, category := range Categories {
		assert.Len(t, body[string(category)], 1, "category %s", category)
	}
}
