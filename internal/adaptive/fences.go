package adaptive

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyJSON marks a response that contained no parseable object at all.
var ErrEmptyJSON = errors.New("Empty JSON")

// StripFences removes the markdown code-block wrapper LLMs often put around
// JSON output. When triple-backtick fences are present the first fenced block
// wins, with an optional leading "json" language tag stripped. Text without
// fences is returned trimmed. No further repair is attempted.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.Contains(text, "```") {
		parts := strings.Split(text, "```")
		if len(parts) > 1 {
			text = parts[1]
		}
		text = strings.TrimSpace(text)
		if strings.HasPrefix(strings.ToLower(text), "json") {
			text = text[len("json"):]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

// ParseJSONObject fence-strips raw text and decodes it as a single JSON
// object.
func ParseJSONObject(raw string) (map[string]any, error) {
	text := StripFences(raw)
	if text == "" {
		return nil, ErrEmptyJSON
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(obj) == 0 {
		return nil, ErrEmptyJSON
	}
	return obj, nil
}
