package adaptive

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAdaptForStudentShortCircuit(t *testing.T) {
	t.Parallel()
	tg := &fakeTextGen{generate: func(_ context.Context, _, _ string, _ float64) (string, error) {
		return `{"adapted_passage":"should never be used"}`, nil
	}}
	a := NewAdapter(testLogger(t), tg)

	for _, tc := range []struct{ dt, ls string }{
		{"none", "none"},
		{"", ""},
		{"None", ""},
		{"", "NONE"},
	} {
		got := a.AdaptForStudent(context.Background(), "X", tc.dt, tc.ls)
		if got != "X" {
			t.Fatalf("short-circuit (%q,%q): expected original text, got %q", tc.dt, tc.ls, got)
		}
	}
	if tg.calls.Load() != 0 {
		t.Fatalf("short-circuit must make zero capability calls, got %d", tg.calls.Load())
	}
}

func TestAdaptForStudentSuccess(t *testing.T) {
	t.Parallel()
	tg := &fakeTextGen{generate: func(_ context.Context, _, user string, temp float64) (string, error) {
		if temp != adaptationTemperature {
			t.Errorf("expected adaptation temperature %v, got %v", adaptationTemperature, temp)
		}
		if !strings.Contains(user, "DYSLEXIA RULES") {
			t.Errorf("dyslexia profile should select the dyslexia rule block")
		}
		return "```json\n{\"adapted_passage\":\"Short words. Clear lines.\"}\n```", nil
	}}
	a := NewAdapter(testLogger(t), tg)

	got := a.AdaptForStudent(context.Background(), "A long dense paragraph.", "dyslexia", "visual")
	if got != "Short words. Clear lines." {
		t.Fatalf("unexpected adapted text: %q", got)
	}
}

func TestAdaptForStudentStammeringAliasesToSpeech(t *testing.T) {
	t.Parallel()
	if ResolveCategory("stammering") != CategorySpeech {
		t.Fatalf("stammering must route to speech")
	}
	if ResolveCategory("Stammering") != ResolveCategory("SPEECH") {
		t.Fatalf("alias routing must be case-insensitive")
	}

	_, stammerUser := BuildAdaptationPrompt("text", "stammering", "none")
	_, speechUser := BuildAdaptationPrompt("text", "speech", "none")
	if !strings.Contains(stammerUser, "SPEECH / STAMMERING RULES") ||
		!strings.Contains(speechUser, "SPEECH / STAMMERING RULES") {
		t.Fatalf("both spellings must select the speech rule block")
	}
}

func TestAdaptForStudentFailureFallsBackToOriginal(t *testing.T) {
	t.Parallel()
	base := "The mitochondria is the powerhouse of the cell."

	for name, gen := range map[string]func(context.Context, string, string, float64) (string, error){
		"capability error": func(_ context.Context, _, _ string, _ float64) (string, error) {
			return "", errors.New("upstream 503")
		},
		"malformed json": func(_ context.Context, _, _ string, _ float64) (string, error) {
			return "I could not produce JSON, sorry.", nil
		},
		"empty adapted_passage": func(_ context.Context, _, _ string, _ float64) (string, error) {
			return `{"adapted_passage":"  "}`, nil
		},
		"missing adapted_passage": func(_ context.Context, _, _ string, _ float64) (string, error) {
			return `{"something_else":"x"}`, nil
		},
	} {
		a := NewAdapter(testLogger(t), &fakeTextGen{generate: gen})
		if got := a.AdaptForStudent(context.Background(), base, "adhd", "auditory"); got != base {
			t.Fatalf("%s: expected original text back, got %q", name, got)
		}
	}
}

func TestLearningStyleAddendumSelection(t *testing.T) {
	t.Parallel()
	for style, fragment := range map[string]string{
		"visual":          "visual metaphors",
		"auditory":        "conversational and rhythmic",
		"kinesthetic":     "physical sensations",
		"reading_writing": "textual analysis",
	} {
		if got := learningStyleAddendum(style); !strings.Contains(got, fragment) {
			t.Fatalf("style %q: expected addendum containing %q, got %q", style, fragment, got)
		}
	}
	if got := learningStyleAddendum("interpretive_dance"); got != "" {
		t.Fatalf("unrecognized style must contribute an empty addendum, got %q", got)
	}
}
