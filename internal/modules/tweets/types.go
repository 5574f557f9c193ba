package tweets

// Tweet is one post as returned by twitterapi.io. The upstream has used both
// created_at and createdAt for the timestamp, so both are kept.
type Tweet struct {
	ID           string `json:"id,omitempty"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at,omitempty"`
	CreatedAtAlt string `json:"createdAt,omitempty"`
}

// Created returns whichever timestamp field the upstream filled in.
func (t Tweet) Created() string {
	if t.CreatedAt != "" {
		return t.CreatedAt
	}
	return t.CreatedAtAlt
}

type lastTweetsResponse struct {
	Tweets  []Tweet `json:"tweets"`
	Message string  `json:"message"`
}

// APIError is a non-2xx answer from the tweets API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }
