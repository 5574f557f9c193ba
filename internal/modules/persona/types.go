package persona

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/basedcaster/core/internal/modules/processing/ai"
	"github.com/basedcaster/core/internal/modules/tweets"
)

const (
	DefaultPersonality = "Explorer"
	DefaultEmoji       = "🤔"
	DefaultDescription = "Based presence unclear."

	MaxScore = 1000
)

// RawAnalysis is the model's analysis as decoded, before defaults are applied.
type RawAnalysis struct {
	Score            *Score `json:"score"`
	Personality      string `json:"personality"`
	Emoji            string `json:"emoji"`
	BasedDescription string `json:"basedDescription"`
}

// Score accepts a JSON number or a numeric string.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return nil
		}
		*s = Score(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Score(v)
	return nil
}

// Profile is a normalized analysis: every field is usable as-is.
type Profile struct {
	Score            int    `json:"score"`
	Personality      string `json:"personality"`
	Emoji            string `json:"emoji"`
	BasedDescription string `json:"basedDescription"`
}

// AnalysisResult is what analyzing a user produces.
type AnalysisResult struct {
	Profile
	ImageDataURL   string         `json:"imageDataUrl"`
	Tweets         []tweets.Tweet `json:"tweets"`
	AnalysisStatus ai.Status      `json:"analysisStatus"`
	PosterStatus   ai.Status      `json:"posterStatus"`
}

// PosterRequest holds the fields a poster is drawn from.
type PosterRequest struct {
	Username    string
	Score       int
	Personality string
	Emoji       string
}

// SuggestionItem is one entry of an idea list.
type SuggestionItem struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Category names one of the idea lists.
type Category string

const (
	CategoryMemecoins Category = "memecoins"
	CategoryNFTs      Category = "nfts"
	CategoryPlaylist  Category = "playlist"
)

// Categories lists every idea category in display order.
var Categories = []Category{CategoryMemecoins, CategoryNFTs, CategoryPlaylist}

func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type analyzeDTO struct {
	Username string `json:"username"`
}

type posterDTO struct {
	Username    string  `json:"username"`
	Score       float64 `json:"score"`
	Personality string  `json:"personality"`
	Emoji       string  `json:"emoji"`
}

type ideasDTO struct {
	Personality string `json:"personality"`
}
