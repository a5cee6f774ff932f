package adaptive

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

type fakeTextGen struct {
	calls    atomic.Int64
	generate func(ctx context.Context, system, user string, temperature float64) (string, error)
}

func (f *fakeTextGen) GenerateText(ctx context.Context, system, user string, temperature float64) (string, error) {
	f.calls.Add(1)
	return f.generate(ctx, system, user, temperature)
}

// categoryFromPrompt recovers which category a generation prompt targets, so
// fakes can behave differently per category.
func categoryFromPrompt(user string) Category {
	markers := map[string]Category{
		"ADHD-optimized":                       CategoryADHD,
		"Autism-Spectrum-optimized":            CategoryAutism,
		"Dyslexia-optimized":                   CategoryDyslexia,
		"Visual-Impairment-optimized":          CategoryVisual,
		"Hearing-Impairment-optimized":         CategoryHearing,
		"Intellectual-Disability-optimized":    CategoryIntellectual,
		"Speech/Stammering-optimized":          CategorySpeech,
		"Motor/Physical-Disability-optimized":  CategoryMotor,
		"General Inclusive study material for": CategoryGeneral,
	}
	for marker, cat := range markers {
		if strings.Contains(user, marker) {
			return cat
		}
	}
	return ""
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func successPayload(cat Category) string {
	return fmt.Sprintf(`{"title":"Lesson for %s","passage":"A passage about photosynthesis long enough to matter.","key_concepts":["light","energy"],"summary":"Plants make food.","questions":["q1","q2"]}`, cat)
}

func TestGenerateAllVersionsCategoryCompleteness(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(testLogger(t), &fakeTextGen{
		generate: func(_ context.Context, _, user string, _ float64) (string, error) {
			return successPayload(categoryFromPrompt(user)), nil
		},
	}, nil)

	agg, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{
		Topic: "Photosynthesis", Grade: "5", Description: "basic plant biology",
	})
	if err != nil {
		t.Fatalf("GenerateAllVersions: %v", err)
	}
	if len(agg.AdaptiveVersions) != 9 {
		t.Fatalf("expected 9 variants, got %d", len(agg.AdaptiveVersions))
	}
	for _, cat := range AllCategories {
		v, ok := agg.AdaptiveVersions[cat]
		if !ok {
			t.Fatalf("missing category %q in aggregate", cat)
		}
		if got := v["category"]; got != string(cat) {
			t.Fatalf("category %q stamped as %v", cat, got)
		}
	}
	if agg.GenerationStats.Total != 9 || agg.GenerationStats.Success != 9 {
		t.Fatalf("unexpected stats: %+v", agg.GenerationStats)
	}
	if len(agg.GenerationStats.Failed) != 0 {
		t.Fatalf("expected no failures, got %v", agg.GenerationStats.Failed)
	}
}

func TestGenerateAllVersionsPartialFailure(t *testing.T) {
	t.Parallel()
	failing := map[Category]bool{CategoryMotor: true, CategorySpeech: true}
	gen := NewGenerator(testLogger(t), &fakeTextGen{
		generate: func(_ context.Context, _, user string, _ float64) (string, error) {
			cat := categoryFromPrompt(user)
			if failing[cat] {
				return "", errors.New("upstream timeout")
			}
			return successPayload(cat), nil
		},
	}, nil)

	agg, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{
		Topic: "Photosynthesis", Grade: "5", Description: "basic plant biology",
	})
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}

	stats := agg.GenerationStats
	if stats.Total != 9 || stats.Success != 7 || len(stats.Failed) != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	gotFailed := map[Category]bool{}
	for _, cat := range stats.Failed {
		gotFailed[cat] = true
	}
	if !gotFailed[CategoryMotor] || !gotFailed[CategorySpeech] {
		t.Fatalf("expected motor and speech to fail, got %v", stats.Failed)
	}

	for cat := range failing {
		v := agg.AdaptiveVersions[cat]
		if !v.Failed() {
			t.Fatalf("variant %q should carry the error sentinel", cat)
		}
		if _, hasPassage := v["passage"]; hasPassage {
			t.Fatalf("failed variant %q must not carry a passage", cat)
		}
		if v["category"] != string(cat) {
			t.Fatalf("failed variant %q lost its category stamp: %v", cat, v["category"])
		}
	}
}

func TestGenerateAllVersionsFailureIsolation(t *testing.T) {
	t.Parallel()
	run := func(dyslexiaFails bool) *Aggregate {
		gen := NewGenerator(testLogger(t), &fakeTextGen{
			generate: func(_ context.Context, _, user string, _ float64) (string, error) {
				cat := categoryFromPrompt(user)
				if dyslexiaFails && cat == CategoryDyslexia {
					return "", errors.New("connection reset")
				}
				return successPayload(cat), nil
			},
		}, nil)
		agg, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{
			Topic: "Fractions", Grade: "4", Description: "halves and quarters",
		})
		if err != nil {
			t.Fatalf("GenerateAllVersions: %v", err)
		}
		return agg
	}

	clean := run(false)
	broken := run(true)
	for _, cat := range AllCategories {
		if cat == CategoryDyslexia {
			continue
		}
		if !reflect.DeepEqual(clean.AdaptiveVersions[cat], broken.AdaptiveVersions[cat]) {
			t.Fatalf("category %q was affected by a sibling failure", cat)
		}
	}
	if !broken.AdaptiveVersions[CategoryDyslexia].Failed() {
		t.Fatalf("dyslexia variant should have failed")
	}
}

func TestGenerateAllVersionsMalformedJSON(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(testLogger(t), &fakeTextGen{
		generate: func(_ context.Context, _, user string, _ float64) (string, error) {
			if categoryFromPrompt(user) == CategoryADHD {
				return "Sure! Here is your lesson: it has no JSON at all.", nil
			}
			return successPayload(categoryFromPrompt(user)), nil
		},
	}, nil)

	agg, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{
		Topic: "Gravity", Grade: "6", Description: "forces",
	})
	if err != nil {
		t.Fatalf("GenerateAllVersions: %v", err)
	}
	v := agg.AdaptiveVersions[CategoryADHD]
	if !v.Failed() {
		t.Fatalf("malformed JSON must degrade to a failed variant")
	}
}

func TestGenerateAllVersionsEmptyResponse(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(testLogger(t), &fakeTextGen{
		generate: func(_ context.Context, _, user string, _ float64) (string, error) {
			if categoryFromPrompt(user) == CategoryGeneral {
				return "   ", nil
			}
			return successPayload(categoryFromPrompt(user)), nil
		},
	}, nil)

	agg, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{
		Topic: "Rivers", Grade: "3", Description: "",
	})
	if err != nil {
		t.Fatalf("GenerateAllVersions: %v", err)
	}
	v := agg.AdaptiveVersions[CategoryGeneral]
	if got, _ := v["error"].(string); got != ErrEmptyJSON.Error() {
		t.Fatalf("expected %q error, got %q", ErrEmptyJSON.Error(), got)
	}
}

func TestGenerateAllVersionsEmptyTopic(t *testing.T) {
	t.Parallel()
	tg := &fakeTextGen{generate: func(_ context.Context, _, _ string, _ float64) (string, error) {
		return successPayload(CategoryGeneral), nil
	}}
	gen := NewGenerator(testLogger(t), tg, nil)
	if _, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{Topic: "  "}); err == nil {
		t.Fatalf("empty topic must be a pre-dispatch hard error")
	}
	if tg.calls.Load() != 0 {
		t.Fatalf("invalid request must not reach the capability, got %d calls", tg.calls.Load())
	}
}

func TestGenerateAllVersionsTotalFailure(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(testLogger(t), &fakeTextGen{
		generate: func(_ context.Context, _, _ string, _ float64) (string, error) {
			return "", errors.New("service unavailable")
		},
	}, nil)
	_, err := gen.GenerateAllVersions(context.Background(), GenerationRequest{Topic: "Clouds"})
	if !errors.Is(err, ErrAllCategoriesFailed) {
		t.Fatalf("expected ErrAllCategoriesFailed, got %v", err)
	}
}

func TestSnippetKeepsRunesIntact(t *testing.T) {
	t.Parallel()
	raw := strings.Repeat("★", rawSnippetLimit)
	got := snippet(raw)
	if !utf8.ValidString(got) {
		t.Fatal("snippet emitted invalid UTF-8")
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long input should be elided, got %q", got)
	}
	if short := snippet("  plain  "); short != "plain" {
		t.Fatalf("snippet(short) = %q, want %q", short, "plain")
	}
}
