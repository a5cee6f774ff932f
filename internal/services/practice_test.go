package services

import (
	"testing"

	"gorm.io/datatypes"
)

func TestFeedbackScript(t *testing.T) {
	analysis := map[string]any{
		"strengths":  []any{"Clear opening sentence.", "Good pacing."},
		"next_steps": []any{"Try pausing at commas."},
		"scores":     map[string]any{"fluency": 80},
	}
	got := feedbackScript(analysis)
	want := "Clear opening sentence. Good pacing. Try pausing at commas."
	if got != want {
		t.Fatalf("feedbackScript = %q, want %q", got, want)
	}

	if feedbackScript(map[string]any{"scores": map[string]any{}}) != "" {
		t.Fatal("expected empty script when nothing to say")
	}
}

func TestIsNeurodivergent(t *testing.T) {
	cases := map[string]bool{
		"adhd":         true,
		"autism":       true,
		"intellectual": true,
		"ADHD":         true,
		"dyslexia":     false,
		"stammering":   false,
		"":             false,
	}
	for in, want := range cases {
		if got := isNeurodivergent(in); got != want {
			t.Errorf("isNeurodivergent(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAccessibilityFromSnapshot(t *testing.T) {
	raw := datatypes.JSON([]byte(`{"captions_always_on":true,"aac_enabled":true}`))
	p := accessibilityFromSnapshot(raw)
	if !p.CaptionsAlwaysOn || !p.AACEnabled {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.ReducedMotion || p.HighContrast {
		t.Fatalf("unset toggles should stay false, got %+v", p)
	}

	if p := accessibilityFromSnapshot(nil); p.CaptionsAlwaysOn {
		t.Fatal("nil snapshot must decode to zero profile")
	}
}

func TestExtensionForMime(t *testing.T) {
	cases := map[string]string{
		"audio/wav":  ".wav",
		"audio/ogg":  ".ogg",
		"audio/webm": ".webm",
		"audio/mp4":  ".m4a",
		"audio/mpeg": ".mp3",
		"":           ".mp3",
	}
	for in, want := range cases {
		if got := extensionForMime(in); got != want {
			t.Errorf("extensionForMime(%q) = %q, want %q", in, got, want)
		}
	}
}
