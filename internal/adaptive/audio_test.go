package adaptive

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

type fakeSynth struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, text)
	return []byte("mp3-bytes"), nil
}

type fakeStore struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (f *fakeStore) UploadAudio(_ context.Context, key string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func buildAggregate(passages map[Category]string) *Aggregate {
	agg := &Aggregate{AdaptiveVersions: map[Category]Variant{}, GenerationStats: GenerationStats{Total: 9}}
	for _, cat := range AllCategories {
		p, ok := passages[cat]
		if !ok {
			agg.AdaptiveVersions[cat] = FailedVariant(cat, "upstream timeout")
			agg.GenerationStats.Failed = append(agg.GenerationStats.Failed, cat)
			continue
		}
		agg.AdaptiveVersions[cat] = Variant{"category": string(cat), "passage": p}
		agg.GenerationStats.Success++
	}
	return agg
}

func TestEnrichWithAudioHearingAlwaysSkipped(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("The water cycle moves water around the planet. ", 4)
	agg := buildAggregate(map[Category]string{
		CategoryHearing: long,
		CategoryGeneral: long,
	})
	synth := &fakeSynth{}
	e := NewEnricher(testLogger(t), synth, &fakeStore{})

	// Empty skip set: the hearing exclusion must hold regardless.
	e.EnrichWithAudio(context.Background(), agg, map[Category]bool{})

	if url := agg.AdaptiveVersions[CategoryHearing].AudioURL(); url != "" {
		t.Fatalf("hearing variant must never get audio_url, got %q", url)
	}
	if url := agg.AdaptiveVersions[CategoryGeneral].AudioURL(); url == "" {
		t.Fatalf("general variant should have been enriched")
	}
	for _, txt := range synth.texts {
		if txt == "" {
			t.Fatalf("synthesized empty text")
		}
	}
	if len(synth.texts) != 1 {
		t.Fatalf("expected exactly one synthesis call, got %d", len(synth.texts))
	}
}

func TestEnrichWithAudioShortPassageSkipped(t *testing.T) {
	t.Parallel()
	agg := buildAggregate(map[Category]string{
		CategoryADHD:    "Too short.",
		CategoryGeneral: strings.Repeat("Plants turn sunlight into food through photosynthesis. ", 2),
	})
	synth := &fakeSynth{}
	e := NewEnricher(testLogger(t), synth, &fakeStore{})
	e.EnrichWithAudio(context.Background(), agg, DefaultSkipCategories())

	if url := agg.AdaptiveVersions[CategoryADHD].AudioURL(); url != "" {
		t.Fatalf("near-empty passage should not be synthesized")
	}
	if len(synth.texts) != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", len(synth.texts))
	}
}

func TestEnrichWithAudioTruncatesToCeiling(t *testing.T) {
	t.Parallel()
	agg := buildAggregate(map[Category]string{
		CategoryGeneral: strings.Repeat("a", maxSynthesisLength+500),
	})
	synth := &fakeSynth{}
	e := NewEnricher(testLogger(t), synth, &fakeStore{})
	e.EnrichWithAudio(context.Background(), agg, DefaultSkipCategories())

	if len(synth.texts) != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", len(synth.texts))
	}
	if got := len(synth.texts[0]); got != maxSynthesisLength {
		t.Fatalf("expected passage truncated to %d chars, got %d", maxSynthesisLength, got)
	}
}

func TestEnrichWithAudioTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()
	// One ASCII byte up front so the ceiling lands mid-rune in the é run.
	agg := buildAggregate(map[Category]string{
		CategoryGeneral: "a" + strings.Repeat("é", maxSynthesisLength),
	})
	synth := &fakeSynth{}
	e := NewEnricher(testLogger(t), synth, &fakeStore{})
	e.EnrichWithAudio(context.Background(), agg, DefaultSkipCategories())

	if len(synth.texts) != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", len(synth.texts))
	}
	got := synth.texts[0]
	if len(got) > maxSynthesisLength {
		t.Fatalf("truncated passage is %d bytes, ceiling is %d", len(got), maxSynthesisLength)
	}
	if !utf8.ValidString(got) {
		t.Fatal("synthesizer received invalid UTF-8")
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"aéé", 2, "a"},
		{"aéé", 3, "aé"},
		{"ééé", 1, ""},
		{"", 4, ""},
	}
	for _, tc := range cases {
		got := truncateRunes(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateRunes(%q, %d) produced invalid UTF-8", tc.in, tc.max)
		}
	}
}

func TestEnrichWithAudioFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("Volcanoes form where magma reaches the surface. ", 3)
	agg := buildAggregate(map[Category]string{CategoryGeneral: long, CategoryADHD: long})
	before := agg.GenerationStats

	e := NewEnricher(testLogger(t), &fakeSynth{err: errors.New("tts quota exceeded")}, &fakeStore{})
	e.EnrichWithAudio(context.Background(), agg, DefaultSkipCategories())

	for _, cat := range AllCategories {
		if url := agg.AdaptiveVersions[cat].AudioURL(); url != "" {
			t.Fatalf("no variant should carry audio_url after total synth failure")
		}
	}
	if agg.GenerationStats.Success != before.Success || len(agg.GenerationStats.Failed) != len(before.Failed) {
		t.Fatalf("enrichment failures must not touch generation_stats")
	}
}

func TestEnrichWithAudioFailedVariantsIgnored(t *testing.T) {
	t.Parallel()
	agg := buildAggregate(map[Category]string{}) // every variant failed
	synth := &fakeSynth{}
	e := NewEnricher(testLogger(t), synth, &fakeStore{})
	e.EnrichWithAudio(context.Background(), agg, DefaultSkipCategories())
	if len(synth.texts) != 0 {
		t.Fatalf("failed variants must never be synthesized, got %d calls", len(synth.texts))
	}
}
