package adaptive

import "strings"

// Variant is the generated content object for one category. The inner shape
// varies per category (the prompt catalog defines it), so the raw LLM JSON is
// kept verbatim and only stamped with bookkeeping keys: "category" always,
// "error" on failure, "audio_url" after enrichment.
type Variant map[string]any

func FailedVariant(cat Category, msg string) Variant {
	return Variant{
		"error":    msg,
		"category": string(cat),
	}
}

// Failed reports whether the variant carries the error sentinel. A variant
// is successful iff it has no "error" key, regardless of inner content.
func (v Variant) Failed() bool {
	_, ok := v["error"]
	return ok
}

func (v Variant) Passage() string {
	s, _ := v["passage"].(string)
	return strings.TrimSpace(s)
}

func (v Variant) AudioURL() string {
	s, _ := v["audio_url"].(string)
	return s
}

// GenerationStats summarizes one dispatcher batch.
type GenerationStats struct {
	Total   int        `json:"total"`
	Success int        `json:"success"`
	Failed  []Category `json:"failed"`
}

// Aggregate is the full set of nine variants plus batch statistics. It is
// handed off to the persistence layer as an opaque envelope once complete.
type Aggregate struct {
	AdaptiveVersions map[Category]Variant `json:"adaptive_versions"`
	GenerationStats  GenerationStats      `json:"generation_stats"`
}

// GenerationRequest is the immutable input to the fan-out dispatcher.
type GenerationRequest struct {
	Topic       string `json:"topic"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}
