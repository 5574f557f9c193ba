package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is reported when a model response holds no {...} span.
var ErrNoJSON = errors.New("no JSON object in AI response")

// DecodeJSON decodes a JSON object out of raw model text.
//
// A response produced in JSON mode decodes as-is. Anything else falls back to
// the substring between the first '{' and the last '}'.
func DecodeJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "{") && json.Unmarshal([]byte(cleaned), out) == nil {
		return nil
	}

	span, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return fmt.Errorf("decode AI JSON: %w", err)
	}
	return nil
}

// ExtractJSONObject returns raw[first '{' : last '}'+1].
func ExtractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return raw[start : end+1], nil
}

// StatusOf maps a stage error to the degraded status it reports.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrDisabled):
		return StatusDisabled
	case errors.Is(err, ErrNoJSON):
		return StatusNoJSON
	case errors.Is(err, ErrEmptyResponse):
		return StatusEmpty
	default:
		return StatusFailed
	}
}
